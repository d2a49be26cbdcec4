package http

import (
	_ "embed"
	"net/http"
	"strings"
)

//go:embed static/index.html
var indexPage string

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := strings.ReplaceAll(indexPage, "{{CHATBOT_NAME}}", s.cfg.ChatbotName)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

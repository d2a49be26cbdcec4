package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/internal/service/chat"
	"github.com/astralab/astrax/pkg/log"
)

// Server is the HTTP surface: chat, webhook ingestion, history browsing
// and health. It implements srv.Service.
type Server struct {
	cfg      *config.AppConfig
	messages core.MessageLog
	chatSvc  *chat.Service
	srv      *http.Server
}

func NewServer(cfg *config.AppConfig, messages core.MessageLog, chatSvc *chat.Service) *Server {
	s := &Server{
		cfg:      cfg,
		messages: messages,
		chatSvc:  chatSvc,
	}
	s.srv = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.Routes(),
	}
	return s
}

// Routes builds the mux. Exposed separately so tests can drive the
// handlers without binding a socket.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /webhook/uptime-kuma", s.handleUptimeKuma)
	mux.HandleFunc("POST /webhook/generic", s.handleGeneric)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /data", s.handleData)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

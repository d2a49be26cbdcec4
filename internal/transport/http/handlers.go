package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/internal/normalize"
	"github.com/astralab/astrax/internal/service/chat"
	"github.com/astralab/astrax/pkg/log"
)

type chatRequest struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	text := req.Text
	if text == "" {
		text = req.Message
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "'text' field is required")
		return
	}

	reply, err := s.chatSvc.Handle(r.Context(), chat.Inbound{
		Role:       core.RoleUser,
		Source:     "web-chat",
		Channel:    "chat",
		Text:       text,
		PromptRole: core.RoleUser,
	})
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleUptimeKuma(w http.ResponseWriter, r *http.Request) {
	payload, raw, ok := readWebhookPayload(w, r)
	if !ok {
		return
	}

	_, err := s.chatSvc.Handle(r.Context(), chat.Inbound{
		Role:       core.RoleEvent,
		Source:     "uptime-kuma",
		Channel:    "monitoring",
		Text:       normalize.FormatUptime(payload),
		RawPayload: raw,
		PromptRole: core.RoleSystem,
	})
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

func (s *Server) handleGeneric(w http.ResponseWriter, r *http.Request) {
	payload, raw, ok := readWebhookPayload(w, r)
	if !ok {
		return
	}

	_, err := s.chatSvc.Handle(r.Context(), chat.Inbound{
		Role:       core.RoleEvent,
		Source:     "generic-webhook",
		Channel:    "generic",
		Text:       normalize.FormatGeneric(payload),
		RawPayload: raw,
		PromptRole: core.RoleSystem,
	})
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	after := r.URL.Query().Get("after")

	var (
		msgs []core.Message
		err  error
	)
	if after != "" {
		since, perr := parseTimestamp(after)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'after' timestamp")
			return
		}
		msgs, err = s.messages.Since(r.Context(), since)
	} else {
		msgs, err = s.messages.Tail(r.Context(), 50)
	}
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("history query failed")
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}

	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	start, err1 := parseTimestamp(r.URL.Query().Get("start"))
	end, err2 := parseTimestamp(r.URL.Query().Get("end"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Invalid timestamps")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "'end' must be after 'start'")
		return
	}

	msgs, err := s.messages.Between(r.Context(), start, end)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("data query failed")
		writeError(w, http.StatusInternalServerError, "failed to read messages")
		return
	}

	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readWebhookPayload inflates and decodes a webhook body. It writes the
// 400 response itself when the payload is malformed.
func readWebhookPayload(w http.ResponseWriter, r *http.Request) (map[string]any, json.RawMessage, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return nil, nil, false
	}

	body = normalize.Decompress(body)

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, nil, false
	}

	return payload, json.RawMessage(body), true
}

// parseTimestamp accepts RFC3339 and the zone-less variant JavaScript
// clients tend to send; the latter is read as UTC.
func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC)
}

func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	var unavailable *core.BackendUnavailableError

	switch {
	case errors.Is(err, core.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		// protocol errors, unsupported backend, missing credential,
		// store failures
		log.FromCtx(r.Context()).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

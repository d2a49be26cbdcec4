package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/pkg/log"
)

type Assembler interface {
	Assemble(ctx context.Context, currentText, currentRole string) ([]core.PromptMessage, error)
}

// Inbound is one event entering the pipeline: a chat message or a
// normalized webhook payload.
type Inbound struct {
	Role       string
	Source     string
	Channel    string
	Text       string
	RawPayload json.RawMessage
	// PromptRole is the role the inbound text carries in the
	// assembled prompt: "user" for chat, "system" for events.
	PromptRole string
}

// Service runs the persist → assemble → infer → persist pipeline for one
// inbound event. The inbound message stays in the log even when the
// inference fails; a missing assistant reply is an observable terminal
// state, not something to roll back.
type Service struct {
	messages core.MessageLog
	asm      Assembler
	backend  core.Backend

	// replySource tags persisted assistant replies, mirroring the
	// configured provider.
	replySource string
}

func NewService(messages core.MessageLog, asm Assembler, backend core.Backend, replySource string) *Service {
	return &Service{
		messages:    messages,
		asm:         asm,
		backend:     backend,
		replySource: replySource,
	}
}

// Handle persists the inbound event, obtains a reply from the backend
// and persists it. It returns the reply text.
func (s *Service) Handle(ctx context.Context, in Inbound) (string, error) {
	if in.Text == "" {
		return "", fmt.Errorf("text is required: %w", core.ErrInvalidInput)
	}

	if _, err := s.messages.Append(ctx, in.Role, in.Source, in.Channel, in.Text, in.RawPayload, nil); err != nil {
		return "", fmt.Errorf("failed to persist inbound message: %w", err)
	}

	prompt, err := s.asm.Assemble(ctx, in.Text, in.PromptRole)
	if err != nil {
		return "", err
	}

	// The backend call runs to a terminal outcome before the reply is
	// written; the reply is never persisted without one.
	reply, err := s.backend.Infer(ctx, prompt)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("channel", in.Channel).Msg("inference failed")
		return "", err
	}

	if _, err := s.messages.Append(ctx, core.RoleAssistant, s.replySource, in.Channel, reply, nil, nil); err != nil {
		return "", fmt.Errorf("failed to persist reply: %w", err)
	}

	return reply, nil
}

package core

import (
	"encoding/json"
	"time"
)

const (
	AppName    = "ASTRA-X Aggregator"
	AppVersion = "0.1.0"
)

// Stored message roles. Anything outside this set is permitted in the
// log but is folded into RoleSystem when a prompt is assembled.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleEvent     = "event"
	RoleSystem    = "system"
)

// Message is one persisted conversational or event record. Messages are
// immutable once written; ID and TS are assigned by the store.
type Message struct {
	ID         int64           `json:"id"`
	TS         time.Time       `json:"ts"`
	Role       string          `json:"role"`
	Source     string          `json:"source"`
	Channel    string          `json:"channel"`
	Text       string          `json:"text"`
	RawPayload json.RawMessage `json:"raw_payload,omitempty"`
	Meta       json.RawMessage `json:"meta,omitempty"`
}

// Summary is a condensed context chunk produced by an external
// summarization job. The aggregator only ever reads these.
type Summary struct {
	ID          int64           `json:"id"`
	TS          time.Time       `json:"ts"`
	Text        string          `json:"summary_text"`
	SourceRange string          `json:"source_range,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
}

// PromptMessage is a single entry of an assembled prompt. It has no
// identity and is never persisted.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

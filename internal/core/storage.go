package core

import (
	"context"
	"encoding/json"
	"time"
)

// MessageLog is the durable append-only store of chat and event records.
type MessageLog interface {
	// Append persists a new message and returns it with ID and TS set.
	Append(ctx context.Context, role, source, channel, text string, rawPayload, meta json.RawMessage) (Message, error)
	// Since returns messages with TS strictly after ts, ascending.
	Since(ctx context.Context, ts time.Time) ([]Message, error)
	// Between returns messages with start <= TS <= end, ascending.
	Between(ctx context.Context, start, end time.Time) ([]Message, error)
	// Tail returns the last n messages in ascending order. n <= 0
	// yields an empty result.
	Tail(ctx context.Context, n int) ([]Message, error)
}

// SummaryStore exposes the rolling summary table. Summaries are written
// by an external job; the aggregator only tails them.
type SummaryStore interface {
	// Tail returns the most recent n summaries in ascending order by
	// time. n <= 0 yields an empty result.
	Tail(ctx context.Context, n int) ([]Summary, error)
}

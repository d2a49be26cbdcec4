package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/pkg/log"
)

type MessageLog struct {
	db *sql.DB

	// now is swappable for tests
	now func() time.Time
}

func NewMessageLog(db *sql.DB) *MessageLog {
	return &MessageLog{db: db, now: time.Now}
}

func (l *MessageLog) Append(ctx context.Context, role, source, channel, text string, rawPayload, meta json.RawMessage) (core.Message, error) {
	if text == "" {
		return core.Message{}, fmt.Errorf("message text must not be empty: %w", core.ErrInvalidInput)
	}

	ts := l.now().UTC()

	query := `INSERT INTO messages (ts, role, source, channel, text, raw_payload, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := l.db.ExecContext(ctx, query, ts.UnixNano(), role, source, channel, text, nullableJSON(rawPayload), nullableJSON(meta))
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Message{}, err
	}

	msg := core.Message{
		ID:         id,
		TS:         ts,
		Role:       role,
		Source:     source,
		Channel:    channel,
		Text:       text,
		RawPayload: rawPayload,
		Meta:       meta,
	}

	log.FromCtx(ctx).Debug().Int64("id", id).Str("role", role).Str("channel", channel).Msg("message appended")
	return msg, nil
}

func (l *MessageLog) Since(ctx context.Context, ts time.Time) ([]core.Message, error) {
	query := selectMessages + ` WHERE ts > ? ORDER BY ts ASC, id ASC`
	return l.queryMessages(ctx, query, ts.UnixNano())
}

func (l *MessageLog) Between(ctx context.Context, start, end time.Time) ([]core.Message, error) {
	query := selectMessages + ` WHERE ts >= ? AND ts <= ? ORDER BY ts ASC, id ASC`
	return l.queryMessages(ctx, query, start.UnixNano(), end.UnixNano())
}

func (l *MessageLog) Tail(ctx context.Context, n int) ([]core.Message, error) {
	if n <= 0 {
		return []core.Message{}, nil
	}

	// Fetch the LAST n messages by ordering DESC
	query := selectMessages + ` ORDER BY ts DESC, id DESC LIMIT ?`
	messages, err := l.queryMessages(ctx, query, n)
	if err != nil {
		return nil, err
	}

	// The query returned messages newest first; reverse them back to
	// chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

const selectMessages = `SELECT id, ts, role, source, channel, text, raw_payload, meta FROM messages`

func (l *MessageLog) queryMessages(ctx context.Context, query string, args ...any) ([]core.Message, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]core.Message, 0)
	for rows.Next() {
		var msg core.Message
		var ts int64
		var raw, meta sql.NullString

		if err := rows.Scan(&msg.ID, &ts, &msg.Role, &msg.Source, &msg.Channel, &msg.Text, &raw, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.TS = time.Unix(0, ts).UTC()
		if raw.Valid && raw.String != "" {
			msg.RawPayload = json.RawMessage(raw.String)
		}
		if meta.Valid && meta.String != "" {
			msg.Meta = json.RawMessage(meta.String)
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// nullableJSON maps an absent payload to NULL instead of an empty string.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

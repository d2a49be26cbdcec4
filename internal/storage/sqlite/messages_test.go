package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/astralab/astrax/internal/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "astrax.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock returns a clock that advances by step on every reading.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		ts := current
		current = current.Add(step)
		return ts
	}
}

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestMessageLogAppend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))
	log.now = fixedClock(testEpoch, time.Second)

	msg, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", "hello", []byte(`{"k":"v"}`), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), msg.ID)
	require.Equal(t, testEpoch, msg.TS)

	got, err := log.Tail(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "hello", got[0].Text)
	require.Equal(t, "web-chat", got[0].Source)
	require.Equal(t, "chat", got[0].Channel)
	require.JSONEq(t, `{"k":"v"}`, string(got[0].RawPayload))
	require.Nil(t, got[0].Meta)
}

func TestMessageLogAppendRejectsEmptyText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))

	_, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", "", nil, nil)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	got, err := log.Tail(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMessageLogSince(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))
	log.now = fixedClock(testEpoch, time.Minute)

	for _, text := range []string{"first", "second", "third"} {
		_, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", text, nil, nil)
		require.NoError(t, err)
	}

	// Lower bound is exclusive: the message written exactly at the
	// cutoff must not be returned.
	got, err := log.Since(ctx, testEpoch)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "second", got[0].Text)
	require.Equal(t, "third", got[1].Text)

	got, err = log.Since(ctx, testEpoch.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMessageLogBetween(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))
	log.now = fixedClock(testEpoch, time.Minute)

	for _, text := range []string{"first", "second", "third", "fourth"} {
		_, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", text, nil, nil)
		require.NoError(t, err)
	}

	// Both bounds inclusive.
	got, err := log.Between(ctx, testEpoch.Add(time.Minute), testEpoch.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "second", got[0].Text)
	require.Equal(t, "third", got[1].Text)

	// Inverted range yields nothing.
	got, err = log.Between(ctx, testEpoch.Add(2*time.Minute), testEpoch.Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMessageLogTail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))
	log.now = fixedClock(testEpoch, time.Second)

	for _, text := range []string{"first", "second", "third"} {
		_, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", text, nil, nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{name: "zero", n: 0, expected: []string{}},
		{name: "negative", n: -5, expected: []string{}},
		{name: "subset ascending", n: 2, expected: []string{"second", "third"}},
		{name: "larger than log returns all", n: 100, expected: []string{"first", "second", "third"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := log.Tail(ctx, tt.n)
			require.NoError(t, err)
			require.Len(t, got, len(tt.expected))
			for i, text := range tt.expected {
				require.Equal(t, text, got[i].Text)
			}
		})
	}
}

func TestMessageLogTailBreaksTiesByInsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	log := NewMessageLog(newTestDB(t))
	// All messages share one timestamp; id order must decide.
	log.now = func() time.Time { return testEpoch }

	for _, text := range []string{"first", "second", "third"} {
		_, err := log.Append(ctx, core.RoleUser, "web-chat", "chat", text, nil, nil)
		require.NoError(t, err)
	}

	got, err := log.Tail(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "second", got[0].Text)
	require.Equal(t, "third", got[1].Text)
}

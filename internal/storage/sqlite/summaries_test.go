package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/astralab/astrax/internal/core"
)

func TestSummaryStoreTail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewSummaryStore(newTestDB(t))
	store.now = fixedClock(testEpoch, time.Hour)

	for _, text := range []string{"oldest", "middle", "newest"} {
		_, err := store.Add(ctx, text, "", nil)
		require.NoError(t, err)
	}

	// Most recent n, but returned oldest first.
	got, err := store.Tail(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "middle", got[0].Text)
	require.Equal(t, "newest", got[1].Text)

	got, err = store.Tail(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "oldest", got[0].Text)
}

func TestSummaryStoreTailNonPositive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewSummaryStore(newTestDB(t))
	_, err := store.Add(ctx, "something", "", nil)
	require.NoError(t, err)

	for _, n := range []int{0, -1} {
		got, err := store.Tail(ctx, n)
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestSummaryStoreAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := NewSummaryStore(newTestDB(t))

	_, err := store.Add(ctx, "", "", nil)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	sum, err := store.Add(ctx, "daily digest", "2024-05-01/2024-05-02", []byte(`["monitoring"]`))
	require.NoError(t, err)
	require.Equal(t, int64(1), sum.ID)

	got, err := store.Tail(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "daily digest", got[0].Text)
	require.Equal(t, "2024-05-01/2024-05-02", got[0].SourceRange)
	require.JSONEq(t, `["monitoring"]`, string(got[0].Tags))
}

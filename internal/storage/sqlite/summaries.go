package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/astralab/astrax/internal/core"
)

type SummaryStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSummaryStore(db *sql.DB) *SummaryStore {
	return &SummaryStore{db: db, now: time.Now}
}

// Add inserts a summary row. The aggregator core never calls this; it
// exists for the external summarization job and for tests.
func (s *SummaryStore) Add(ctx context.Context, text, sourceRange string, tags json.RawMessage) (core.Summary, error) {
	if text == "" {
		return core.Summary{}, fmt.Errorf("summary text must not be empty: %w", core.ErrInvalidInput)
	}

	ts := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO summaries (ts, summary_text, source_range, tags) VALUES (?, ?, ?, ?)`,
		ts.UnixNano(), text, sourceRange, nullableJSON(tags))
	if err != nil {
		return core.Summary{}, fmt.Errorf("failed to insert summary: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Summary{}, err
	}

	return core.Summary{ID: id, TS: ts, Text: text, SourceRange: sourceRange, Tags: tags}, nil
}

func (s *SummaryStore) Tail(ctx context.Context, n int) ([]core.Summary, error) {
	if n <= 0 {
		return []core.Summary{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, summary_text, source_range, tags FROM summaries ORDER BY ts DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]core.Summary, 0, n)
	for rows.Next() {
		var sum core.Summary
		var ts int64
		var sourceRange, tags sql.NullString

		if err := rows.Scan(&sum.ID, &ts, &sum.Text, &sourceRange, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}

		sum.TS = time.Unix(0, ts).UTC()
		sum.SourceRange = sourceRange.String
		if tags.Valid && tags.String != "" {
			sum.Tags = json.RawMessage(tags.String)
		}

		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest first from the query; flip to ascending for the prompt.
	for i, j := 0, len(summaries)-1; i < j; i, j = i+1, j-1 {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	}
	return summaries, nil
}

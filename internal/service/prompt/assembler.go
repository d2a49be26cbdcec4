package prompt

import (
	"context"
	"fmt"
	"time"

	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/pkg/log"
	"github.com/astralab/astrax/pkg/tokens"
)

// Assembler builds the bounded conversational context for one inference
// call. It holds no state across calls: every prompt is rebuilt from
// durable store reads, so there is nothing to invalidate and nothing to
// drift. Safe for concurrent use.
type Assembler struct {
	messages     core.MessageLog
	summaries    core.SummaryStore
	instructions *Instructions

	shortWindow  time.Duration
	summaryLimit int

	// now is swappable for tests
	now func() time.Time
}

func NewAssembler(
	messages core.MessageLog,
	summaries core.SummaryStore,
	instructions *Instructions,
	shortWindow time.Duration,
	summaryLimit int,
) *Assembler {
	return &Assembler{
		messages:     messages,
		summaries:    summaries,
		instructions: instructions,
		shortWindow:  shortWindow,
		summaryLimit: summaryLimit,
		now:          time.Now,
	}
}

// Assemble returns the ordered prompt: instruction entries, then up to
// the configured number of summaries oldest first, then the raw messages
// inside the short-term window ascending, then exactly one trailing
// entry carrying the current input. It performs no writes.
func (a *Assembler) Assemble(ctx context.Context, currentText, currentRole string) ([]core.PromptMessage, error) {
	prompt := a.instructions.Build()

	summaries, err := a.summaries.Tail(ctx, a.summaryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load summaries: %w", err)
	}
	for _, s := range summaries {
		prompt = append(prompt, core.PromptMessage{Role: core.RoleSystem, Content: s.Text})
	}

	cutoff := a.now().Add(-a.shortWindow)
	recent, err := a.messages.Since(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load short-term messages: %w", err)
	}
	for _, m := range recent {
		prompt = append(prompt, core.PromptMessage{Role: mapRole(m.Role), Content: m.Text})
	}

	prompt = append(prompt, core.PromptMessage{Role: currentRole, Content: currentText})

	log.FromCtx(ctx).Debug().
		Int("entries", len(prompt)).
		Int("summaries", len(summaries)).
		Int("short_term", len(recent)).
		Int("approx_tokens", estimateSize(prompt)).
		Msg("prompt assembled")

	return prompt, nil
}

// mapRole folds stored roles into the three the wire protocols accept.
// Events, system records and anything unrecognized become system
// entries; user and assistant pass through.
func mapRole(role string) string {
	switch role {
	case core.RoleUser, core.RoleAssistant:
		return role
	default:
		return core.RoleSystem
	}
}

func estimateSize(prompt []core.PromptMessage) int {
	total := 0
	for _, m := range prompt {
		total += tokens.Estimate(m.Content)
	}
	return total
}

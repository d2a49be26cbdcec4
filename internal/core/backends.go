package core

import "context"

// Backend is one configured inference provider. Infer issues exactly one
// network call and returns the plain reply text; it performs no retries.
type Backend interface {
	Infer(ctx context.Context, prompt []PromptMessage) (string, error)
}

package middleware

import (
	"context"
	"fmt"

	llmclient "contextify/internal/llm/client"
)

// WithBudget rejects prompts whose token count exceeds the client's
// capacity. The rejection is permanent so retry layers give up at once.
func WithBudget() Middleware {
	return func(next llmclient.TextClient) llmclient.TextClient {
		return &budgeted{next: next}
	}
}

type budgeted struct {
	next llmclient.TextClient
}

func (b *budgeted) Name() string { return b.next.Name() }
func (b *budgeted) Close() error { return b.next.Close() }
func (b *budgeted) CountTokens(text string) int {
	return b.next.CountTokens(text)
}
func (b *budgeted) TokenCapacity() int { return b.next.TokenCapacity() }

func (b *budgeted) check(system, user string) error {
	cap := b.next.TokenCapacity()
	if cap <= 0 {
		return nil
	}
	n := b.next.CountTokens(system) + b.next.CountTokens(user)
	if n > cap {
		return llmclient.NewPermanentError(
			fmt.Errorf("prompt of %d tokens exceeds capacity %d", n, cap))
	}
	return nil
}

func (b *budgeted) GenerateText(ctx context.Context, system, user string) (string, error) {
	if err := b.check(system, user); err != nil {
		return "", err
	}
	return b.next.GenerateText(ctx, system, user)
}

func (b *budgeted) GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error) {
	if err := b.check(system, user); err != nil {
		return "", err
	}
	return b.next.GenerateTextStream(ctx, system, user, onChunk)
}

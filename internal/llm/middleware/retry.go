package middleware

import (
	"context"
	"errors"
	"time"

	llmclient "contextify/internal/llm/client"
)

// Retry retries generation up to maxAttempts with exponential backoff
// starting at baseDelay. Permanent errors are returned immediately, and a
// canceled context stops the loop.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next llmclient.TextClient) llmclient.TextClient {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next llmclient.TextClient
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }
func (r *retrying) CountTokens(text string) int {
	return r.next.CountTokens(text)
}
func (r *retrying) TokenCapacity() int { return r.next.TokenCapacity() }

func (r *retrying) GenerateText(ctx context.Context, system, user string) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.GenerateText(ctx, system, user)
		if err == nil {
			return out, nil
		}
		var pErr *llmclient.PermanentError
		if errors.As(err, &pErr) {
			return "", err
		}
		last = err
		// Stop immediately if the context is canceled.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return "", last
}

func (r *retrying) GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.GenerateTextStream(ctx, system, user, onChunk)
		if err == nil {
			return out, nil
		}
		var pErr *llmclient.PermanentError
		if errors.As(err, &pErr) {
			return "", err
		}
		last = err
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return "", last
}

// Package middleware decorates a TextClient with cross-cutting concerns
// (rate limiting, retries, logging, budget checks) without touching the
// provider implementations.
package middleware

import (
	llmclient "contextify/internal/llm/client"
)

// Middleware decorates a TextClient.
type Middleware func(llmclient.TextClient) llmclient.TextClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.TextClient, mws ...Middleware) llmclient.TextClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

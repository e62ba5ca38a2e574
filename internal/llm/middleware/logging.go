package middleware

import (
	"context"
	"log"

	llmclient "contextify/internal/llm/client"
)

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.TextClient) llmclient.TextClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.TextClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }
func (l *logging) CountTokens(text string) int {
	return l.next.CountTokens(text)
}
func (l *logging) TokenCapacity() int { return l.next.TokenCapacity() }

func (l *logging) GenerateText(ctx context.Context, system, user string) (string, error) {
	l.log.Printf("llm request (%s): %d bytes", l.next.Name(), len(system)+len(user))
	out, err := l.next.GenerateText(ctx, system, user)
	if err != nil {
		l.log.Printf("llm error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

func (l *logging) GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error) {
	l.log.Printf("llm stream request (%s): %d bytes", l.next.Name(), len(system)+len(user))
	out, err := l.next.GenerateTextStream(ctx, system, user, onChunk)
	if err != nil {
		l.log.Printf("llm stream error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

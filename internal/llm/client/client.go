package llmclient

import "context"

// TextClient defines the interface for chat completion providers.
type TextClient interface {
	Name() string
	Close() error
	CountTokens(text string) int
	TokenCapacity() int
	GenerateText(ctx context.Context, system, user string) (string, error)
	// GenerateTextStream streams partial chunks to the callback.
	// Returns the final complete response.
	GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error)
}

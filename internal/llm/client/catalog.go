package llmclient

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// ClientFactory builds a provider client for one model.
type ClientFactory func(ctx context.Context, model string, tokenCap int) (TextClient, error)

// Registration describes one provider in a Catalog.
type Registration struct {
	Provider     string
	DefaultModel string
	TokenCap     int
	Factory      ClientFactory
}

// Catalog maps provider names to client factories. Registering an existing
// provider replaces it, which lets tests swap in a fake.
type Catalog struct {
	mu   sync.RWMutex
	regs map[string]Registration
}

func NewCatalog() *Catalog {
	return &Catalog{regs: make(map[string]Registration)}
}

func (c *Catalog) Register(reg Registration) {
	name := strings.ToLower(strings.TrimSpace(reg.Provider))
	if name == "" || reg.Factory == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[name] = reg
}

// Build constructs a client for provider. An empty model selects the
// registration's default.
func (c *Catalog) Build(ctx context.Context, provider, model string) (TextClient, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	c.mu.RLock()
	reg, ok := c.regs[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (have %s)", provider, strings.Join(c.Providers(), ", "))
	}
	if model == "" {
		model = reg.DefaultModel
	}
	return reg.Factory(ctx, model, reg.TokenCap)
}

// Providers lists registered provider names in sorted order.
func (c *Catalog) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.regs))
	for name := range c.regs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultCatalog registers the built-in providers. API keys come from the
// environment; the fake provider needs none and suits offline runs.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register(Registration{
		Provider:     "gemini",
		DefaultModel: "gemini-2.5-flash",
		TokenCap:     32000,
		Factory: func(ctx context.Context, model string, tokenCap int) (TextClient, error) {
			return NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), model, tokenCap)
		},
	})
	c.Register(Registration{
		Provider:     "openai",
		DefaultModel: "gpt-4o-mini",
		TokenCap:     16000,
		Factory: func(ctx context.Context, model string, tokenCap int) (TextClient, error) {
			return NewOpenAIClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"), model, tokenCap)
		},
	})
	c.Register(Registration{
		Provider:     "fake",
		DefaultModel: "fake",
		TokenCap:     4096,
		Factory: func(ctx context.Context, model string, tokenCap int) (TextClient, error) {
			return NewFakeClient(tokenCap), nil
		},
	})
	return c
}

package llmclient

import (
	"context"
	"slices"
	"strings"
	"testing"
)

func TestCatalogBuildUnknownProvider(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Build(context.Background(), "nope", "")
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("err = %v", err)
	}
}

func TestCatalogBuildFake(t *testing.T) {
	c := DefaultCatalog()
	cli, err := c.Build(context.Background(), "fake", "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cli.Name() != "FakeLLM" {
		t.Fatalf("name = %q", cli.Name())
	}
	if cli.TokenCapacity() != 4096 {
		t.Fatalf("capacity = %d", cli.TokenCapacity())
	}
}

func TestCatalogRegisterReplaces(t *testing.T) {
	c := DefaultCatalog()
	c.Register(Registration{
		Provider:     "Fake",
		DefaultModel: "fake",
		TokenCap:     99,
		Factory: func(ctx context.Context, model string, tokenCap int) (TextClient, error) {
			return NewFakeClient(tokenCap), nil
		},
	})

	cli, err := c.Build(context.Background(), "fake", "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cli.TokenCapacity() != 99 {
		t.Fatalf("capacity = %d, want 99", cli.TokenCapacity())
	}
}

func TestCatalogProviders(t *testing.T) {
	got := DefaultCatalog().Providers()
	want := []string{"fake", "gemini", "openai"}
	if !slices.Equal(got, want) {
		t.Fatalf("providers = %v, want %v", got, want)
	}
}

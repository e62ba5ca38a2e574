package middleware

import (
	"context"
	"testing"
	"time"
)

func TestRateLimitBurstDoesNotBlock(t *testing.T) {
	stub := &scriptedClient{}
	cli := RateLimit(1000, 2)(stub)
	defer cli.Close()

	for i := 0; i < 2; i++ {
		if _, err := cli.GenerateText(context.Background(), "", "hi"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	stub := &scriptedClient{}
	cli := RateLimit(0, 0)(stub)

	if _, err := cli.GenerateText(context.Background(), "", "hi"); err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	l := newRPSLimiter(0.001, 1)
	defer l.Stop()

	// Drain the prefilled burst token, then the next acquire must wait.
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

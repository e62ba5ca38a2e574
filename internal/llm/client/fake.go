package llmclient

import (
	"context"
	"sync"
)

// FakeClient returns a canned reply for offline runs and tests. Set Err
// to make generations fail.
type FakeClient struct {
	Reply    string
	Err      error
	tokenCap int

	mu         sync.Mutex
	calls      int
	lastSystem string
	lastUser   string
}

func NewFakeClient(cap int) *FakeClient {
	if cap <= 0 {
		cap = 4096
	}
	return &FakeClient{tokenCap: cap}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }
func (f *FakeClient) CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
func (f *FakeClient) TokenCapacity() int { return f.tokenCap }

func (f *FakeClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	reply := f.Reply
	err := f.Err
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	if reply == "" {
		reply = "fake reply"
	}
	return reply, nil
}

func (f *FakeClient) GenerateTextStream(ctx context.Context, system, user string, onChunk func(chunk string)) (string, error) {
	out, err := f.GenerateText(ctx, system, user)
	if err != nil {
		return "", err
	}
	if onChunk != nil {
		onChunk(out)
	}
	return out, nil
}

// Calls reports how many generations ran.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastUser returns the user content of the most recent generation.
func (f *FakeClient) LastUser() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUser
}

// LastSystem returns the system content of the most recent generation.
func (f *FakeClient) LastSystem() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSystem
}

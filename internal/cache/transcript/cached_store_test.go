package transcript

import (
	"context"
	"testing"

	transcriptrepo "contextify/internal/gateway/repository/transcript"
)

type countingStore struct {
	inner *transcriptrepo.MemoryStore
	gets  int
	puts  int
	lists int
}

func newCountingStore(t *testing.T) *countingStore {
	t.Helper()
	return &countingStore{inner: transcriptrepo.NewMemoryStore()}
}

func (s *countingStore) Put(ctx context.Context, sessionID string, seq int, content []byte) error {
	s.puts++
	return s.inner.Put(ctx, sessionID, seq, content)
}

func (s *countingStore) Get(ctx context.Context, sessionID string, seq int) ([]byte, error) {
	s.gets++
	return s.inner.Get(ctx, sessionID, seq)
}

func (s *countingStore) List(ctx context.Context, sessionID string) ([]string, error) {
	s.lists++
	return s.inner.List(ctx, sessionID)
}

func TestCachedGetServedFromPut(t *testing.T) {
	origin := newCountingStore(t)
	cached := NewCachedStore(origin, CacheConfig{})
	ctx := context.Background()

	if err := cached.Put(ctx, "sess", 1, []byte("# turn one")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	for i := 0; i < 2; i++ {
		data, err := cached.Get(ctx, "sess", 1)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(data) != "# turn one" {
			t.Fatalf("Get = %q", data)
		}
	}
	if origin.gets != 0 {
		t.Fatalf("origin gets = %d, want 0", origin.gets)
	}
	snap := cached.Metrics()
	if snap.BlobHits != 2 || snap.BlobMisses != 0 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestCachedGetFillsOnMiss(t *testing.T) {
	origin := newCountingStore(t)
	ctx := context.Background()
	if err := origin.Put(ctx, "sess", 1, []byte("seeded")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	origin.puts = 0

	cached := NewCachedStore(origin, CacheConfig{})
	for i := 0; i < 3; i++ {
		if _, err := cached.Get(ctx, "sess", 1); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
	if origin.gets != 1 {
		t.Fatalf("origin gets = %d, want 1", origin.gets)
	}
	snap := cached.Metrics()
	if snap.BlobMisses != 1 || snap.BlobHits != 2 {
		t.Fatalf("metrics = %+v", snap)
	}
}

func TestCachedGetReturnsPrivateCopy(t *testing.T) {
	origin := newCountingStore(t)
	cached := NewCachedStore(origin, CacheConfig{})
	ctx := context.Background()

	if err := cached.Put(ctx, "sess", 1, []byte("abc")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	first, err := cached.Get(ctx, "sess", 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first[0] = 'X'
	second, err := cached.Get(ctx, "sess", 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(second) != "abc" {
		t.Fatalf("cache mutated through caller slice: %q", second)
	}
}

func TestPutInvalidatesListing(t *testing.T) {
	origin := newCountingStore(t)
	cached := NewCachedStore(origin, CacheConfig{})
	ctx := context.Background()

	if err := cached.Put(ctx, "sess", 1, []byte("one")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	keys, err := cached.List(ctx, "sess")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("List = %v", keys)
	}
	if _, err := cached.List(ctx, "sess"); err != nil {
		t.Fatalf("List: %v", err)
	}
	if origin.lists != 1 {
		t.Fatalf("origin lists = %d, want 1", origin.lists)
	}

	if err := cached.Put(ctx, "sess", 2, []byte("two")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	keys, err = cached.List(ctx, "sess")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("List after append = %v", keys)
	}
	if origin.lists != 2 {
		t.Fatalf("origin lists = %d, want 2", origin.lists)
	}
}

func TestGetMissPropagatesNotFound(t *testing.T) {
	origin := newCountingStore(t)
	cached := NewCachedStore(origin, CacheConfig{})

	_, err := cached.Get(context.Background(), "sess", 42)
	if err == nil {
		t.Fatal("expected error for missing turn")
	}
	snap := cached.Metrics()
	if snap.OriginReadErr != 1 {
		t.Fatalf("metrics = %+v", snap)
	}
}

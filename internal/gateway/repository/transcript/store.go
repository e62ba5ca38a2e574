// Package transcript archives finished chat turns as markdown documents,
// one object per turn, keyed by session and sequence number.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store defines operations for persisting chat transcripts.
type Store interface {
	Put(ctx context.Context, sessionID string, seq int, content []byte) error
	Get(ctx context.Context, sessionID string, seq int) ([]byte, error)
	List(ctx context.Context, sessionID string) ([]string, error)
}

var ErrNotFound = errors.New("transcript not found")

// objectKey names a turn's object. Zero-padding keeps lexicographic
// listings in turn order.
func objectKey(sessionID string, seq int) string {
	return fmt.Sprintf("%s/%06d.md", strings.TrimSpace(sessionID), seq)
}

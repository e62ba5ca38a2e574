package sessionstore

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is one chat conversation. Messages is populated only by the file
// backend's persisted form; listing and ensure operations return metadata
// alone.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages,omitempty"`
}

// Message is one turn in a session. Seq is assigned by the store, starting
// at 1 per session.
type Message struct {
	Seq             int       `json:"seq"`
	Role            string    `json:"role"`
	Content         string    `json:"content"`
	ReferencedFiles []string  `json:"referenced_files,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func normalizeMessage(msg Message) Message {
	switch strings.ToLower(strings.TrimSpace(msg.Role)) {
	case RoleAssistant:
		msg.Role = RoleAssistant
	default:
		msg.Role = RoleUser
	}
	return msg
}

type rowScanner interface {
	Scan(dest ...any) error
}

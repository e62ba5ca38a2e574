// Package sessionstore persists chat sessions and their message history.
// It writes a JSON file by default and switches to Postgres when a DSN is
// configured, keeping the same behavior behind one API.
package sessionstore

import (
	"database/sql"
	"errors"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Session

	schemaOnce sync.Once
	schemaErr  error

	histCache *lru.Cache[string, []Message]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Session),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, []Message](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:        db,
		histCache: cache,
	}, nil
}

// NewFromEnv builds a Postgres store when SESSION_STORE_PG_DSN is set and
// reachable, otherwise a file store at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("SESSION_STORE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

// EnsureSession returns the session for id, creating it if needed. An
// empty id mints a fresh one.
func (s *Store) EnsureSession(id string) (Session, error) {
	if s == nil {
		return Session{}, errors.New("nil store")
	}
	if s.db != nil {
		return s.ensureSessionDB(id)
	}
	return s.ensureSessionFile(id)
}

// AppendMessage adds msg to the session's history and returns it with its
// sequence number and timestamp assigned. The session is created when it
// does not exist yet.
func (s *Store) AppendMessage(sessionID string, msg Message) (Message, error) {
	if s == nil {
		return Message{}, errors.New("nil store")
	}
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return Message{}, errors.New("empty session id")
	}
	if s.db != nil {
		out, err := s.appendMessageDB(id, msg)
		if err == nil && s.histCache != nil {
			s.histCache.Remove(id)
		}
		return out, err
	}
	return s.appendMessageFile(id, msg)
}

// History returns the session's messages in sequence order. A positive
// limit keeps only the most recent messages; zero or less keeps all.
func (s *Store) History(sessionID string, limit int) ([]Message, error) {
	if s == nil {
		return nil, nil
	}
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, nil
	}
	if s.db != nil {
		if s.histCache != nil {
			if cached, ok := s.histCache.Get(id); ok {
				return tail(cached, limit), nil
			}
		}
		msgs, err := s.historyDB(id)
		if err != nil {
			return nil, err
		}
		if s.histCache != nil {
			s.histCache.Add(id, msgs)
		}
		return tail(msgs, limit), nil
	}
	return s.historyFile(id, limit)
}

// Sessions lists session metadata, most recently updated first.
func (s *Store) Sessions() []Session {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.sessionsDB()
	}
	return s.sessionsFile()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func tail(msgs []Message, limit int) []Message {
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

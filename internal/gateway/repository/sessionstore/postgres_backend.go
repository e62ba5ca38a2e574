package sessionstore

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS chat_sessions (
  id TEXT PRIMARY KEY,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS chat_messages (
  id SERIAL PRIMARY KEY,
  session_id TEXT NOT NULL,
  seq INTEGER NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  content TEXT NOT NULL DEFAULT '',
  referenced_files JSONB,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  UNIQUE (session_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages (session_id);
`)
	})
	return s.schemaErr
}

func scanSession(row rowScanner) (Session, bool) {
	var sess Session
	if err := row.Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return Session{}, false
	}
	return sess, true
}

func (s *Store) ensureSessionDB(id string) (Session, error) {
	if err := s.ensureSchema(); err != nil {
		return Session{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := s.db.Exec(
		`INSERT INTO chat_sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return Session{}, err
	}
	row := s.db.QueryRow(
		`SELECT id, created_at, updated_at FROM chat_sessions WHERE id = $1`, id)
	var sess Session
	if err := row.Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Store) appendMessageDB(id string, msg Message) (Message, error) {
	if err := s.ensureSchema(); err != nil {
		return Message{}, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return Message{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO chat_sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return Message{}, err
	}
	// Lock the session row so concurrent appends get distinct sequence
	// numbers.
	if _, err := tx.Exec(
		`SELECT id FROM chat_sessions WHERE id = $1 FOR UPDATE`, id); err != nil {
		return Message{}, err
	}

	msg = normalizeMessage(msg)
	var refs any
	if len(msg.ReferencedFiles) > 0 {
		b, err := json.Marshal(msg.ReferencedFiles)
		if err != nil {
			return Message{}, err
		}
		refs = b
	}
	row := tx.QueryRow(`
INSERT INTO chat_messages (session_id, seq, role, content, referenced_files)
SELECT $1, COALESCE(MAX(seq), 0) + 1, $2, $3, $4 FROM chat_messages WHERE session_id = $1
RETURNING seq, created_at`,
		id, msg.Role, msg.Content, refs)
	if err := row.Scan(&msg.Seq, &msg.CreatedAt); err != nil {
		return Message{}, err
	}
	if _, err := tx.Exec(
		`UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1`, id); err != nil {
		return Message{}, err
	}
	if err := tx.Commit(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func (s *Store) historyDB(id string) ([]Message, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
SELECT seq, role, content, referenced_files, created_at
FROM chat_messages WHERE session_id = $1 ORDER BY seq ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var msg Message
		var refs []byte
		if err := rows.Scan(&msg.Seq, &msg.Role, &msg.Content, &refs, &msg.CreatedAt); err != nil {
			continue
		}
		if len(refs) > 0 {
			_ = json.Unmarshal(refs, &msg.ReferencedFiles)
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (s *Store) sessionsDB() []Session {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	out := make([]Session, 0, 32)
	for rows.Next() {
		if sess, ok := scanSession(rows); ok {
			out = append(out, sess)
		}
	}
	return out
}

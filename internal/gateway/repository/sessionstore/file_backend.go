package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Session
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			row.ID = id
			s.byID[id] = row
		}
	})
}

func (s *Store) saveFile() {
	s.mu.RLock()
	rows := make([]Session, 0, len(s.byID))
	for _, sess := range s.byID {
		rows = append(rows, sess)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) ensureSessionFile(id string) (Session, error) {
	s.ensureLoadedFile()
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	sess, ok := s.byID[id]
	if !ok {
		now := time.Now().UTC()
		sess = Session{ID: id, CreatedAt: now, UpdatedAt: now}
		s.byID[id] = sess
	}
	s.mu.Unlock()
	if !ok {
		s.saveFile()
	}

	sess.Messages = nil
	return sess, nil
}

func (s *Store) appendMessageFile(id string, msg Message) (Message, error) {
	s.ensureLoadedFile()

	s.mu.Lock()
	sess, ok := s.byID[id]
	now := time.Now().UTC()
	if !ok {
		sess = Session{ID: id, CreatedAt: now}
	}
	msg = normalizeMessage(msg)
	msg.Seq = len(sess.Messages) + 1
	msg.CreatedAt = now
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = now
	s.byID[id] = sess
	s.mu.Unlock()

	s.saveFile()
	return msg, nil
}

func (s *Store) historyFile(id string, limit int) ([]Message, error) {
	s.ensureLoadedFile()
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return tail(sess.Messages, limit), nil
}

func (s *Store) sessionsFile() []Session {
	s.ensureLoadedFile()
	s.mu.RLock()
	out := make([]Session, 0, len(s.byID))
	for _, sess := range s.byID {
		sess.Messages = nil
		out = append(out, sess)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

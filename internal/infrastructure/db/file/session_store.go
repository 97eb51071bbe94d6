// Package file persists the client session as a JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

const backend = "file"

// SessionStore keeps the two session entries in one file, mode 0600.
// Writes go to a temp file in the same directory and are renamed into place.
type SessionStore struct {
	path string
}

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.Pinger       = (*SessionStore)(nil)
)

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the backing file.
func (s *SessionStore) Path() string { return s.path }

// document is the on-disk layout; keys match the persisted entry names.
type document map[string]string

// Read returns the stored entries. A missing file is an empty session.
func (s *SessionStore) Read(_ context.Context) (ports.StoredSession, error) {
	out, err := s.read()
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "read", metrics.Outcome(err)).Inc()
	return out, err
}

func (s *SessionStore) read() (ports.StoredSession, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.StoredSession{}, nil
	}
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("read session file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ports.StoredSession{}, fmt.Errorf("decode session file: %w", err)
	}
	return ports.StoredSession{
		AuthToken:   doc[ports.EntryAuthToken],
		CurrentUser: doc[ports.EntryCurrentUser],
	}, nil
}

// Write replaces both entries at once.
func (s *SessionStore) Write(_ context.Context, in ports.StoredSession) error {
	err := s.write(in)
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "write", metrics.Outcome(err)).Inc()
	return err
}

func (s *SessionStore) write(in ports.StoredSession) error {
	raw, err := json.MarshalIndent(document{
		ports.EntryAuthToken:   in.AuthToken,
		ports.EntryCurrentUser: in.CurrentUser,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Erase removes both entries. Erasing an absent session is not an error.
func (s *SessionStore) Erase(_ context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("erase session file: %w", err)
	}
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "erase", metrics.Outcome(err)).Inc()
	return err
}

// Ping checks that the session directory is usable.
func (s *SessionStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil // created on first write
	}
	if err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("session dir %s is not a directory", dir)
	}
	return nil
}

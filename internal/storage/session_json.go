package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ThemeKey is the session key holding the current theme.
const ThemeKey = "timerSettings"

const sessionFileName = "session.json"

// SessionStore is a small key/value store that lives in the session runtime
// directory, so its contents go away with the login session.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a store rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, sessionFileName)}
}

// Path returns the backing file.
func (store *SessionStore) Path() string {
	return store.path
}

// Load decodes the value stored under key into target. It reports false when
// the key is absent.
func (store *SessionStore) Load(key string, target any) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.readLocked()
	if err != nil {
		return false, err
	}
	raw, ok := entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode session key %q: %w", key, err)
	}
	return true, nil
}

// Save stores value under key.
func (store *SessionStore) Save(key string, value any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.readLocked()
	if err != nil {
		// A corrupt file is replaced rather than blocking every later write.
		entries = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session key %q: %w", key, err)
	}
	entries[key] = raw
	return store.writeLocked(entries)
}

// Delete removes key.
func (store *SessionStore) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.readLocked()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return store.writeLocked(entries)
}

func (store *SessionStore) readLocked() (map[string]json.RawMessage, error) {
	entries := map[string]json.RawMessage{}
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return entries, fmt.Errorf("read session file: %w", err)
	}
	if len(rawData) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(rawData, &entries); err != nil {
		return map[string]json.RawMessage{}, fmt.Errorf("parse session file: %w", err)
	}
	return entries, nil
}

func (store *SessionStore) writeLocked(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	serialized, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}
	if err := os.WriteFile(store.path, serialized, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

package formstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"clipdeck/internal/app"
)

type Store interface {
	Load(key string) (FormValues, error)
	Save(key string, v FormValues) error
}

// FileStore keeps one JSON document per key in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore() (FileStore, error) {
	dir, err := app.StateDir()
	if err != nil {
		return FileStore{}, err
	}
	return FileStore{Dir: dir}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func (s FileStore) path(key string) string {
	return filepath.Join(s.Dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s FileStore) Load(key string) (FormValues, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}
	v := Default()
	if err := json.Unmarshal(b, &v); err != nil {
		return Default(), fmt.Errorf("parse form state %s: %w", key, err)
	}
	return Normalize(v), nil
}

func (s FileStore) Save(key string, v FormValues) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dst := s.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// MemoryStore is a Store for tests and for runs with persistence disabled.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]FormValues
	Saves  int
}

func (s *MemoryStore) Load(key string) (FormValues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return Default(), nil
	}
	return v.Clone(), nil
}

func (s *MemoryStore) Save(key string, v FormValues) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]FormValues{}
	}
	s.values[key] = v.Clone()
	s.Saves++
	return nil
}

// Session owns the current record. Every edit replaces the whole record and is
// persisted with a single Save; concurrent editors are not supported and the
// last write wins.
type Session struct {
	store  Store
	key    string
	values FormValues
}

func OpenSession(store Store, key string) (*Session, error) {
	v, err := store.Load(key)
	return &Session{store: store, key: key, values: Normalize(v)}, err
}

func (s *Session) Values() FormValues {
	return s.values.Clone()
}

func (s *Session) Update(fn func(FormValues) FormValues) (FormValues, error) {
	next := Normalize(fn(s.values.Clone()))
	s.values = next
	return next.Clone(), s.store.Save(s.key, next)
}

// Replace stores v as the whole record.
func (s *Session) Replace(v FormValues) error {
	_, err := s.Update(func(FormValues) FormValues { return v })
	return err
}

package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// Store manages the task document with locking.
//
// The document lives in a single JSON file under the store's directory.
// Cross-process safety comes from an flock on a sibling lock file;
// in-process safety comes from a mutex, since flock is per file
// description and won't serialize goroutines sharing one.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a task store using the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// documentPath returns the path to the task document.
func (s *Store) documentPath() string {
	return filepath.Join(s.dir, "tasks.json")
}

// lockPath returns the path to the lock file.
func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "tasks.lock")
}

// Load reads the document from disk. A missing or unreadable document
// yields an empty one, so a fresh data directory (or a corrupted file)
// starts the tracker from scratch instead of wedging it.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.documentPath())
	if err != nil {
		return &Document{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &Document{}, nil
	}

	return &doc, nil
}

// Save writes the document to disk atomically. Writing is skipped when
// the document hasn't changed.
func (s *Store) Save(doc *Document) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	if existing, err := os.ReadFile(s.documentPath()); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read task file: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(s.documentPath())+".tmp")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp task file: %w", err)
	}

	if err := os.Rename(name, s.documentPath()); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename task file: %w", err)
	}

	return nil
}

// update atomically reads, modifies, and writes the document with file
// locking.
func (s *Store) update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	doc, err := s.Load()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.Save(doc)
}

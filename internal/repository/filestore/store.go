// Package filestore keeps every collection in one JSON document on disk.
// The loaded snapshot is owned by a Store; each write produces a new
// snapshot that replaces the old one only after it has been persisted.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	repo "github.com/baharkarakas/legion/internal/repository"
)

// access is how repos reach the snapshot: through the locking Store, or
// through a transaction that already holds the lock.
type access interface {
	read(ctx context.Context, fn func(*snapshot) error) error
	write(ctx context.Context, fn func(*snapshot) error) error
}

type Store struct {
	mu   sync.Mutex
	path string
	data *snapshot
}

// Open loads path, creating an empty document when it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.data = &snapshot{}
		if err := s.persist(s.data); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var snap snapshot
	if len(b) > 0 {
		if err := json.Unmarshal(b, &snap); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	s.data = &snap
	return s, nil
}

func (s *Store) Members() repo.Members   { return membersRepo{a: s} }
func (s *Store) Workouts() repo.Workouts { return workoutsRepo{a: s} }
func (s *Store) Records() repo.Records   { return recordsRepo{a: s} }
func (s *Store) Users() repo.Users       { return usersRepo{a: s} }

func (s *Store) read(ctx context.Context, fn func(*snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) write(ctx context.Context, fn func(*snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := s.persist(work); err != nil {
		return err
	}
	s.data = work
	return nil
}

// WithTx holds the store lock for the whole of fn. fn must only use tx;
// calling back into s would deadlock.
func (s *Store) WithTx(ctx context.Context, fn func(tx repo.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txStore{data: s.data.clone()}
	if err := fn(t); err != nil {
		return err
	}
	if !t.dirty {
		return nil
	}
	if err := s.persist(t.data); err != nil {
		return err
	}
	s.data = t.data
	return nil
}

func (s *Store) Close() error { return nil }

// persist writes to a temp file next to path and renames it into place.
func (s *Store) persist(snap *snapshot) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

type txStore struct {
	data  *snapshot
	dirty bool
}

func (t *txStore) Members() repo.Members   { return membersRepo{a: t} }
func (t *txStore) Workouts() repo.Workouts { return workoutsRepo{a: t} }
func (t *txStore) Records() repo.Records   { return recordsRepo{a: t} }
func (t *txStore) Users() repo.Users       { return usersRepo{a: t} }

func (t *txStore) read(ctx context.Context, fn func(*snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.data)
}

// write applies fn to a copy so a failed step leaves earlier steps intact.
func (t *txStore) write(ctx context.Context, fn func(*snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	work := t.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	t.data = work
	t.dirty = true
	return nil
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx repo.Store) error) error {
	return fn(t)
}

func (t *txStore) Close() error { return nil }

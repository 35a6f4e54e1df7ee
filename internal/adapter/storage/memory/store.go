package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
)

var (
	ErrNotFound = storage.ErrNotFound
	ErrConflict = storage.ErrConflict
)

type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	byValue map[string]core.Record
	list    []string // newest first
}

func New() *Store {
	return &Store{
		now:     time.Now,
		byValue: make(map[string]core.Record),
	}
}

// WithClock replaces the store clock; tests use it to control created_at.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Now() time.Time { return s.now() }
func (s *Store) Close() error   { return nil }

func (s *Store) Create(ctx context.Context, rec core.Record) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byValue[rec.Value]; ok {
		return storage.Conflict(rec.Value)
	}
	s.byValue[rec.Value] = rec
	s.list = append([]string{rec.Value}, s.list...)
	return nil
}

func (s *Store) Get(ctx context.Context, value string) (core.Record, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byValue[value]
	if !ok {
		return core.Record{}, storage.NotFound(value)
	}
	return rec, nil
}

func (s *Store) Find(ctx context.Context, f core.Filter) ([]core.Record, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, 0, len(s.list))
	for _, v := range s.list {
		rec := s.byValue[v]
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	// list is insertion order; a caller-supplied clock may not be monotonic
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Count(ctx context.Context, f core.Filter) (int, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(f) == 0 {
		return len(s.byValue), nil
	}
	n := 0
	for _, rec := range s.byValue {
		if f.Match(rec) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Delete(ctx context.Context, value string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byValue[value]; !ok {
		return storage.NotFound(value)
	}
	delete(s.byValue, value)

	// remove from list
	for i := range s.list {
		if s.list[i] == value {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	return nil
}

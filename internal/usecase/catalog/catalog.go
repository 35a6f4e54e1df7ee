package catalog

import (
	"context"
	"unicode/utf8"

	"github.com/its-jojoo/stringscope/internal/adapter/storage"
	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

type Config struct {
	MaxValueLen int // in runes
}

type Service struct {
	store storage.Store
	cfg   Config
}

func New(store storage.Store, cfg Config) *Service {
	if cfg.MaxValueLen <= 0 {
		cfg.MaxValueLen = core.MaxValueLen
	}
	return &Service{store: store, cfg: cfg}
}

// Create analyzes raw and stores it. A value already present yields
// errors.ErrConflict and leaves the stored record untouched.
func (s *Service) Create(ctx context.Context, raw string) (core.Record, error) {
	if n := utf8.RuneCountInString(raw); n > s.cfg.MaxValueLen {
		return core.Record{}, errors.NewInvalidInputError(
			"value is %d characters long, the limit is %d", n, s.cfg.MaxValueLen)
	}

	rec, err := core.NewRecord(raw, s.store.Now())
	if err != nil {
		return core.Record{}, err
	}

	if err := s.store.Create(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return core.Record{}, errors.NewConflictError("string already exists in the system")
		}
		return core.Record{}, errors.Wrap(err, "store record")
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, value string) (core.Record, error) {
	rec, err := s.store.Get(ctx, value)
	if err != nil {
		return core.Record{}, notFound(err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, value string) error {
	return notFound(s.store.Delete(ctx, value))
}

func notFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return errors.NewNotFoundError("string does not exist in the system")
	}
	return errors.Wrap(err, "load record")
}

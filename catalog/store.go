// Package catalog loads the track metadata table and keeps it for the life of
// the process.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"hzfm/logger"
	"hzfm/model"
)

// maxTableBytes bounds the size of a metadata table read into memory.
const maxTableBytes = 8 << 20

// Store is a lazily loaded, write-once snapshot of the metadata table.
// The zero value is not usable; create one with NewStore.
type Store struct {
	source Source
	cache  BodyCache
	limit  int // bytes

	mu       sync.Mutex
	loaded   bool
	snapshot []model.TrackRecord
}

// Option configures a Store.
type Option func(*Store)

// WithCache adds a shared BodyCache consulted before the source.
func WithCache(c BodyCache) Option {
	return func(s *Store) { s.cache = c }
}

func NewStore(source Source, opts ...Option) *Store {
	s := &Store{source: source, limit: maxTableBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the metadata table. The first successful call loads it;
// every later call returns the same records without any I/O. A failed load is
// not remembered, so the next call tries again. Concurrent first calls load
// at most once. Errors from the source or parser are *FetchError.
//
// The returned slice is a copy and may be modified by the caller.
func (s *Store) Snapshot(ctx context.Context) ([]model.TrackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		records, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.snapshot = records
		s.loaded = true
	}
	return slices.Clone(s.snapshot), nil
}

// Loaded reports whether the snapshot has been loaded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Store) load(ctx context.Context) ([]model.TrackRecord, error) {
	start := time.Now()

	if s.cache != nil {
		body, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			logger.Warn("shared cache read failed, falling back to source", logger.ErrorField(err))
		case ok && len(body) > s.limit:
			logger.Warn("cached metadata table is too large, refetching",
				logger.Int("bytes", len(body)),
				logger.Int("limit", s.limit))
		case ok:
			records, perr := Parse(bytes.NewReader(body))
			if perr == nil {
				logger.Info("metadata table loaded from cache",
					logger.Int("tracks", len(records)),
					logger.Duration("took", time.Since(start)))
				return records, nil
			}
			logger.Warn("cached metadata table is invalid, refetching", logger.ErrorField(perr))
		}
	}

	body, err := s.fetch(ctx)
	if err != nil {
		logger.Error("failed to fetch metadata table",
			logger.String("source", s.source.Name()),
			logger.ErrorField(err))
		return nil, err
	}
	records, err := Parse(bytes.NewReader(body))
	if err != nil {
		logger.Error("failed to parse metadata table",
			logger.String("source", s.source.Name()),
			logger.ErrorField(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, body); err != nil {
			logger.Warn("shared cache write failed", logger.ErrorField(err))
		}
	}

	logger.Info("metadata table loaded",
		logger.String("source", s.source.Name()),
		logger.Int("tracks", len(records)),
		logger.Duration("took", time.Since(start)))
	return records, nil
}

func (s *Store) fetch(ctx context.Context) ([]byte, error) {
	rc, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, int64(s.limit)+1))
	if err != nil {
		return nil, fetchErr(fmt.Errorf("read body: %w", err))
	}
	if len(body) > s.limit {
		return nil, fetchErr(fmt.Errorf("metadata table exceeds %d bytes", s.limit))
	}
	return body, nil
}

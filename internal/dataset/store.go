package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderpulse/pkg/contracts/domain"
)

// Store holds the loaded orders table for the lifetime of the process.
// The table is read-mostly: it changes only on an explicit Reload, so
// readers share an RWMutex with the reloader.
type Store struct {
	loader *Loader
	logger *slog.Logger

	mu       sync.RWMutex
	rows     []domain.OrderRecord
	bounds   DateRange
	hasRows  bool
	loadedAt time.Time
}

// NewStore creates a store backed by the given loader
func NewStore(loader *Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader: loader,
		logger: logger.With(slog.String("component", "dataset.store")),
	}
}

// Load performs the initial load. Fatal on failure: the rest of the
// system assumes the full table is available.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	bounds, ok := Bounds(rows)
	if !ok {
		return fmt.Errorf("dataset has no parseable %s values", ColEstimatedDelivery)
	}

	s.mu.Lock()
	s.rows = rows
	s.bounds = bounds
	s.hasRows = true
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset store populated",
		slog.Int("row_count", len(rows)),
		slog.Time("min_date", bounds.Start),
		slog.Time("max_date", bounds.End))

	return nil
}

// Reload re-reads the source file. On failure the previous table stays
// in place so open dashboards keep working.
func (s *Store) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		s.logger.ErrorContext(ctx, "dataset reload failed, keeping previous table",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Rows returns the full table. The returned slice must be treated as
// read-only; aggregators never mutate rows.
func (s *Store) Rows() []domain.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Bounds returns the dataset-wide estimated-delivery date bounds,
// which are also the default filter range.
func (s *Store) Bounds() (DateRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds, s.hasRows
}

// RowCount returns the number of loaded rows
func (s *Store) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// LoadedAt returns the time of the last successful load
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

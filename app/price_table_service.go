package app

import (
	"context"
	"errors"
	"sync"

	"pricetable/domain/pricing"
	"pricetable/internal"
	"pricetable/ports"

	"golang.org/x/sync/singleflight"
)

// PriceTableService owns the process-wide price table. The first successful load is kept
// for the life of the process; failed loads are not kept, so the next request retries.
type PriceTableService struct {
	loader ports.PriceTableLoader
	logger *internal.Logger
	group  singleflight.Group

	mu      sync.RWMutex
	table   *pricing.PriceTable
	lastErr error
	loads   int
}

// NewPriceTableService creates the table service around a loader
func NewPriceTableService(loader ports.PriceTableLoader, logger *internal.Logger) *PriceTableService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PriceTableService{
		loader: loader,
		logger: logger.Named("PriceTable"),
	}
}

// Table returns the cached table, loading it on first use. Concurrent first callers share
// a single read of the source. The shared read is detached from the caller's
// cancellation; a caller whose context ends stops waiting without failing the others.
func (s *PriceTableService) Table(ctx context.Context) (*pricing.PriceTable, error) {
	if table := s.cached(); table != nil {
		return table, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := s.group.DoChan("table", func() (interface{}, error) {
		if table := s.cached(); table != nil {
			return table, nil
		}
		return s.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.logger.Trace("Joined an in-flight load of %s", s.loader.Source())
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pricing.PriceTable), nil
	}
}

func (s *PriceTableService) cached() *pricing.PriceTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

func (s *PriceTableService) load(ctx context.Context) (*pricing.PriceTable, error) {
	table, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			s.lastErr = err
		}
		s.logger.Error("Failed to load price table from %s: %v", s.loader.Source(), err)
		return nil, err
	}
	s.table = table
	s.lastErr = nil
	return table, nil
}

// Warm loads the table eagerly at startup and logs the outcome. A failure is not fatal.
func (s *PriceTableService) Warm(ctx context.Context) {
	table, err := s.Table(ctx)
	if err != nil {
		s.logger.Warn("Price table not available yet: %v", err)
		return
	}
	s.logger.Info("Price table ready: %d rows, %d weight bands, %d distance bands",
		table.Len(), len(table.WeightBands()), len(table.DistanceBands()))
}

// LastError returns the most recent load failure, or nil once a table is available
func (s *PriceTableService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table != nil {
		return nil
	}
	return s.lastErr
}

// Source names where the table is read from
func (s *PriceTableService) Source() string {
	return s.loader.Source()
}

// Loads returns how many times the source has been read
func (s *PriceTableService) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

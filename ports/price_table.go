package ports

import (
	"context"

	"pricetable/domain/pricing"
)

// PriceTableLoader reads the price table from its source. Each call re-reads the source;
// caching belongs to the caller.
type PriceTableLoader interface {
	Load(ctx context.Context) (*pricing.PriceTable, error)
	Source() string
}

// PriceTableProvider hands out the process-wide price table
type PriceTableProvider interface {
	// Table returns the loaded table, loading it on first use
	Table(ctx context.Context) (*pricing.PriceTable, error)
	// LastError returns the most recent load failure, or nil once a table is available
	LastError() error
	// Source names where the table is read from
	Source() string
}

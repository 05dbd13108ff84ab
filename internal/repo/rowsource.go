// Package repo contains all row-source access for the bikeshare statistics service.
// A row source hands back a city's trip table as raw, undecoded cells; turning
// those cells into trips is the service layer's job.
package repo

import (
	"context"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// RowSource supplies the raw trip table for a city.
// The service layer depends on this interface, not on a concrete store, so
// pipelines can be tested against in-memory tables.
type RowSource interface {
	// Table returns the header and rows for city in source order.
	// Returns domain.ErrDataSourceUnavailable if the source cannot be read.
	Table(ctx context.Context, city domain.City) (domain.RawTable, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Import records one raw table loaded into the database row store.
// The most recent import for a city is the one served to queries.
type Import struct {
	ID         uuid.UUID `json:"id"`
	City       City      `json:"city"`
	Source     string    `json:"source"`
	Columns    []string  `json:"columns"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

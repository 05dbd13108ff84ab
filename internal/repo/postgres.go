package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripStore is a RowSource backed by Postgres that can also ingest new tables.
type TripStore interface {
	RowSource

	// Import stores table as the current data for city and returns the import
	// record. Earlier imports for the city are removed in the same transaction.
	Import(ctx context.Context, city domain.City, table domain.RawTable) (domain.Import, error)

	// Latest returns the import currently served for city.
	// Returns domain.ErrDataSourceUnavailable if the city was never imported.
	Latest(ctx context.Context, city domain.City) (domain.Import, error)
}

// pgTripStore is the Postgres implementation of TripStore.
type pgTripStore struct {
	db db
}

// NewTripStore constructs a TripStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripStore(db db) TripStore {
	return &pgTripStore{db: db}
}

// Import inserts the import row, bulk-copies the cells and drops older imports.
func (s *pgTripStore) Import(ctx context.Context, city domain.City, table domain.RawTable) (domain.Import, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Import: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertImport = `
		INSERT INTO trip_imports (id, city, source_name, columns, row_count)
		VALUES (@id, @city, @source_name, @columns, @row_count)
		RETURNING id, city, source_name, columns, row_count, imported_at`

	args := pgx.NamedArgs{
		"id":          uuid.New(),
		"city":        string(city),
		"source_name": table.Source,
		"columns":     table.Header,
		"row_count":   len(table.Rows),
	}
	imp, err := scanImport(tx.QueryRow(ctx, insertImport, args))
	if err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Import: insert import: %w", err)
	}

	rows := make([][]any, len(table.Rows))
	for i, cells := range table.Rows {
		rows[i] = []any{imp.ID, i, cells}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"trip_rows"},
		[]string{"import_id", "row_number", "cells"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Import: copy rows: %w", err)
	}

	const pruneImports = `DELETE FROM trip_imports WHERE city = @city AND id <> @id`
	if _, err := tx.Exec(ctx, pruneImports, pgx.NamedArgs{"city": string(city), "id": imp.ID}); err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Import: prune: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Import: commit: %w", err)
	}
	return imp, nil
}

// Latest returns the newest import for city.
func (s *pgTripStore) Latest(ctx context.Context, city domain.City) (domain.Import, error) {
	const q = `
		SELECT id, city, source_name, columns, row_count, imported_at
		FROM trip_imports
		WHERE city = @city
		ORDER BY imported_at DESC
		LIMIT 1`

	imp, err := scanImport(s.db.QueryRow(ctx, q, pgx.NamedArgs{"city": string(city)}))
	if err != nil {
		return domain.Import{}, fmt.Errorf("repo.TripStore.Latest: %w", err)
	}
	return imp, nil
}

// Table returns the cells of the latest import for city, in row order.
func (s *pgTripStore) Table(ctx context.Context, city domain.City) (domain.RawTable, error) {
	imp, err := s.Latest(ctx, city)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("repo.TripStore.Table: %w", err)
	}

	const q = `
		SELECT cells
		FROM trip_rows
		WHERE import_id = @import_id
		ORDER BY row_number`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"import_id": imp.ID})
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("repo.TripStore.Table: %w: %s", domain.ErrDataSourceUnavailable, err)
	}
	defer rows.Close()

	table := domain.RawTable{Source: imp.Source, Header: imp.Columns, Rows: make([][]string, 0, imp.RowCount)}
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return domain.RawTable{}, fmt.Errorf("repo.TripStore.Table: scan: %w: %s", domain.ErrDataSourceUnavailable, err)
		}
		table.Rows = append(table.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return domain.RawTable{}, fmt.Errorf("repo.TripStore.Table: rows: %w: %s", domain.ErrDataSourceUnavailable, err)
	}

	return table, nil
}

// scanImport maps a trip_imports row into a domain.Import.
// A missing row becomes domain.ErrDataSourceUnavailable: the city has no data.
func scanImport(row pgx.Row) (domain.Import, error) {
	var (
		imp  domain.Import
		id   pgtype.UUID
		city string
	)

	err := row.Scan(&id, &city, &imp.Source, &imp.Columns, &imp.RowCount, &imp.ImportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Import{}, fmt.Errorf("%w: no import found", domain.ErrDataSourceUnavailable)
		}
		return domain.Import{}, fmt.Errorf("%w: %s", domain.ErrDataSourceUnavailable, err)
	}

	imp.ID = uuid.UUID(id.Bytes)
	imp.City = domain.City(city)
	return imp, nil
}

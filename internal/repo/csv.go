package repo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// ctxCheckEvery is how many rows ReadCSV reads between context checks.
const ctxCheckEvery = 10_000

// csvSource reads each city's table from a CSV file in a directory.
type csvSource struct {
	dir string
}

// NewCSVSource constructs a RowSource that reads <dir>/<city source name>,
// e.g. data/chicago.csv.
func NewCSVSource(dir string) RowSource {
	return &csvSource{dir: dir}
}

// Table opens and reads the CSV file for city.
func (s *csvSource) Table(ctx context.Context, city domain.City) (domain.RawTable, error) {
	name := city.SourceName()
	if name == "" {
		return domain.RawTable{}, fmt.Errorf("repo.csvSource.Table: %w: no source for city %q", domain.ErrDataSourceUnavailable, city)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("repo.csvSource.Table: %w: %s", domain.ErrDataSourceUnavailable, err)
	}
	defer f.Close()

	table, err := ReadCSV(ctx, name, f)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("repo.csvSource.Table: %w", err)
	}
	return table, nil
}

// ReadCSV reads a header row followed by data rows from r.
// Rows whose cell count differs from the header, or with broken quoting, fail
// with domain.ErrMalformedRecord; any other read failure is
// domain.ErrDataSourceUnavailable.
func ReadCSV(ctx context.Context, name string, r io.Reader) (domain.RawTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.RawTable{}, fmt.Errorf("%w: %s is empty", domain.ErrDataSourceUnavailable, name)
		}
		return domain.RawTable{}, readError(name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := domain.RawTable{Source: name, Header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RawTable{}, readError(name, err)
		}
		table.Rows = append(table.Rows, row)

		if len(table.Rows)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return domain.RawTable{}, err
			}
		}
	}

	return table, nil
}

// readError classifies a csv.Reader failure.
func readError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s line %d: %s", domain.ErrMalformedRecord, name, parseErr.Line, parseErr.Err)
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrDataSourceUnavailable, name, err)
}

package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/repo"
)

// timestampLayouts are tried in order when parsing start and end times.
// Fractional seconds are accepted by every layout that ends in seconds.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
}

// LoadDataset reads the row source for city and decodes it into a Dataset.
// Returns domain.ErrDataSourceUnavailable when the source cannot be read and
// domain.ErrMalformedRecord when any row cannot be decoded.
func LoadDataset(ctx context.Context, source repo.RowSource, city domain.City) (domain.Dataset, error) {
	table, err := source.Table(ctx, city)
	if err != nil {
		return domain.Dataset{}, err
	}
	return DecodeTable(city, table)
}

// DecodeTable turns a raw table into a Dataset, deriving month and day of week
// from each start time. A single bad row fails the whole table.
func DecodeTable(city domain.City, table domain.RawTable) (domain.Dataset, error) {
	columns := make([]domain.Column, len(table.Header))
	index := make(map[domain.Field]int)
	for i, h := range table.Header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		f := domain.FieldForHeader(h)
		columns[i] = domain.Column{Name: name, Field: f}
		if _, seen := index[f]; f != domain.FieldOther && !seen {
			index[f] = i
		}
	}

	for _, f := range domain.RequiredFields {
		if _, ok := index[f]; !ok {
			return domain.Dataset{}, fmt.Errorf("%w: %s has no %s column", domain.ErrMalformedRecord, table.Source, f)
		}
	}

	var present []domain.Field
	for _, f := range domain.OptionalFields {
		if _, ok := index[f]; ok {
			present = append(present, f)
		}
	}
	schema := domain.NewSchema(present...)

	records := make([]domain.TripRecord, 0, len(table.Rows))
	for pos, row := range table.Rows {
		rec, err := decodeRow(pos, row, index, schema)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: %s row %d: %s", domain.ErrMalformedRecord, table.Source, pos, err)
		}
		records = append(records, rec)
	}

	return domain.Dataset{City: city, Columns: columns, Schema: schema, Records: records}, nil
}

func decodeRow(pos int, row []string, index map[domain.Field]int, schema domain.Schema) (domain.TripRecord, error) {
	cell := func(f domain.Field) string {
		i, ok := index[f]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, i := range index {
		if i >= len(row) {
			return domain.TripRecord{}, fmt.Errorf("expected at least %d cells, got %d", i+1, len(row))
		}
	}

	start, err := parseTimestamp(cell(domain.FieldStartTime))
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := parseTimestamp(cell(domain.FieldEndTime))
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("end_time: %w", err)
	}

	rec := domain.TripRecord{
		Position:     pos,
		StartTime:    start,
		EndTime:      end,
		StartStation: cell(domain.FieldStartStation),
		EndStation:   cell(domain.FieldEndStation),
		UserType:     cell(domain.FieldUserType),
		Gender:       cell(domain.FieldGender),
		Month:        int(start.Month()),
		DayOfWeek:    start.Weekday().String(),
		Cells:        row,
	}

	if schema.Has(domain.FieldBirthYear) {
		if raw := cell(domain.FieldBirthYear); raw != "" && !missingTokens[raw] {
			year, err := parseBirthYear(raw)
			if err != nil {
				return domain.TripRecord{}, fmt.Errorf("birth_year: %w", err)
			}
			rec.BirthYear = year
			rec.HasBirthYear = true
		}
	}

	return rec, nil
}

// missingTokens are the cell values read as a missing value rather than a
// number, matching what pandas' read_csv treats as NA by default.
var missingTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// maxBirthYear bounds accepted birth years; anything outside [0, maxBirthYear]
// cannot be a year and would not survive the int conversion intact.
const maxBirthYear = 9999

// parseBirthYear reads a birth year written as an integer or a float such as
// "1989.0" and truncates it.
func parseBirthYear(raw string) (int, error) {
	year, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(year) || math.IsInf(year, 0) || year < 0 || year > maxBirthYear {
		return 0, fmt.Errorf("%q is not a year between 0 and %d", raw, maxBirthYear)
	}
	return int(year), nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a timestamp", s)
}

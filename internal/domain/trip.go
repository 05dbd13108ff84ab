package domain

import (
	"strings"
	"time"
)

// Field identifies a trip column the loader understands.
// Columns it does not understand are kept as FieldOther and passed through verbatim.
type Field int

const (
	FieldOther Field = iota
	FieldStartTime
	FieldEndTime
	FieldStartStation
	FieldEndStation
	FieldUserType
	FieldGender
	FieldBirthYear
)

var fieldKeys = map[string]Field{
	"start_time":    FieldStartTime,
	"end_time":      FieldEndTime,
	"start_station": FieldStartStation,
	"end_station":   FieldEndStation,
	"user_type":     FieldUserType,
	"gender":        FieldGender,
	"birth_year":    FieldBirthYear,
}

// RequiredFields must be present in every row source.
var RequiredFields = []Field{FieldStartTime, FieldEndTime, FieldStartStation, FieldEndStation}

// OptionalFields may be absent depending on the city.
var OptionalFields = []Field{FieldUserType, FieldGender, FieldBirthYear}

// String returns the normalized column key of f, e.g. "start_time".
func (f Field) String() string {
	for k, v := range fieldKeys {
		if v == f {
			return k
		}
	}
	return "other"
}

// FieldForHeader maps a source column header to a Field.
// Headers are matched case-insensitively with spaces and hyphens read as
// underscores, so "Start Time", "start-time" and "start_time" are equivalent.
func FieldForHeader(header string) Field {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return fieldKeys[key]
}

// Schema is the set of optional fields a dataset carries.
// It is computed once from the source header and never per row.
type Schema uint16

// NewSchema returns a Schema containing fields.
func NewSchema(fields ...Field) Schema {
	var s Schema
	for _, f := range fields {
		s |= 1 << uint(f)
	}
	return s
}

// Has reports whether f is part of the schema.
func (s Schema) Has(f Field) bool {
	return s&(1<<uint(f)) != 0
}

// Column is one source column: its header as written in the source and the
// field the loader recognised it as.
type Column struct {
	Name  string
	Field Field
}

// RawTable is the undecoded content of a row source: a header and rows of
// cells aligned with it. Rows are in source order.
type RawTable struct {
	Source string
	Header []string
	Rows   [][]string
}

// TripRecord is a single bikeshare trip after load-time field derivation.
type TripRecord struct {
	// Position is the 0-based row number in the source; it survives filtering.
	Position int

	StartTime    time.Time
	EndTime      time.Time
	StartStation string
	EndStation   string

	// Optional fields. Empty strings and HasBirthYear=false mean the cell was blank.
	UserType     string
	Gender       string
	BirthYear    int
	HasBirthYear bool

	// Derived from StartTime.
	Month     int
	DayOfWeek string

	// Cells holds the raw source values aligned with the dataset columns.
	Cells []string
}

// Duration returns the trip's travel time.
func (r TripRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Dataset is every trip for one city, in source order.
type Dataset struct {
	City    City
	Columns []Column
	Schema  Schema
	Records []TripRecord
}

// View returns an unfiltered view over the whole dataset.
func (d Dataset) View() FilteredView {
	return FilteredView{Columns: d.Columns, Schema: d.Schema, Records: d.Records}
}

// FilteredView is a subset of a Dataset in the dataset's order.
// It shares column and schema metadata with its dataset and never mutates it.
type FilteredView struct {
	Columns []Column
	Schema  Schema
	Records []TripRecord
}

// Len returns the number of rows in the view.
func (v FilteredView) Len() int {
	return len(v.Records)
}

package domain

import "errors"

// ErrInvalidRequest is returned when a query is empty, misses a field, or
// carries a value outside its closed vocabulary.
// Handlers should map this to HTTP 400.
var ErrInvalidRequest = errors.New("invalid request")

// ErrDataSourceUnavailable is returned when the row source for a city
// cannot be opened or read.
// Handlers should map this to HTTP 503.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// ErrMalformedRecord is returned when the row source yields a record the
// loader cannot parse. It aborts the whole load.
// Handlers should map this to HTTP 422.
var ErrMalformedRecord = errors.New("malformed record")

// ErrEmptyResultSet is returned by aggregations run over a view with no rows.
// Handlers should map this to HTTP 404.
var ErrEmptyResultSet = errors.New("empty result set")

// ErrOutOfRange is returned when a raw-data page offset falls outside the view.
// Handlers should map this to HTTP 416.
var ErrOutOfRange = errors.New("out of range")

// Package service contains the statistics pipeline for the bikeshare service.
// A request flows through Validate, LoadDataset and Filter, and then into one
// of the aggregations or Paginate. Every step below StatsService is a plain
// function; StatsService only wires them to a row source, logging and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/repo"
)

// Recorder receives pipeline metrics. *metrics.Store satisfies it.
type Recorder interface {
	ObservePipeline(operation, city, outcome string, d time.Duration)
	SetRowsLoaded(city string, n int)
}

// StatsService runs validated queries against a row source.
// It keeps no state between calls: each call reloads the city's data.
type StatsService struct {
	source  repo.RowSource
	metrics Recorder
	log     *slog.Logger
}

// NewStatsService constructs a StatsService. metrics may be nil.
func NewStatsService(source repo.RowSource, metrics Recorder, log *slog.Logger) *StatsService {
	if log == nil {
		log = slog.Default()
	}
	return &StatsService{source: source, metrics: metrics, log: log}
}

// TimeStats returns the most frequent times of travel for q.
func (s *StatsService) TimeStats(ctx context.Context, q domain.Query) (domain.TimeStats, error) {
	return run(ctx, s, "TimeStats", "time_stats", q, TimeStats)
}

// StationStats returns the most popular stations and trip for q.
func (s *StatsService) StationStats(ctx context.Context, q domain.Query) (domain.StationStats, error) {
	return run(ctx, s, "StationStats", "station_stats", q, StationStats)
}

// TripDurationStats returns total and mean travel time for q.
func (s *StatsService) TripDurationStats(ctx context.Context, q domain.Query) (domain.TripDurationStats, error) {
	return run(ctx, s, "TripDurationStats", "trip_duration_stats", q, TripDurationStats)
}

// UserStats returns user demographics for q.
func (s *StatsService) UserStats(ctx context.Context, q domain.Query) (domain.UserStats, error) {
	return run(ctx, s, "UserStats", "user_stats", q, UserStats)
}

// AllStats runs the four aggregations over a single load of q's data.
func (s *StatsService) AllStats(ctx context.Context, q domain.Query) (domain.AllStats, error) {
	return run(ctx, s, "AllStats", "all_stats", q, func(view domain.FilteredView) (domain.AllStats, error) {
		var (
			out domain.AllStats
			err error
		)
		if out.Time, err = TimeStats(view); err != nil {
			return domain.AllStats{}, err
		}
		if out.Station, err = StationStats(view); err != nil {
			return domain.AllStats{}, err
		}
		if out.TripDuration, err = TripDurationStats(view); err != nil {
			return domain.AllStats{}, err
		}
		if out.User, err = UserStats(view); err != nil {
			return domain.AllStats{}, err
		}
		return out, nil
	})
}

// RawData returns the page of raw rows for q starting at startIndex.
func (s *StatsService) RawData(ctx context.Context, q domain.Query, startIndex int) (domain.Page, error) {
	return run(ctx, s, "RawData", "raw_data", q, func(view domain.FilteredView) (domain.Page, error) {
		return Paginate(view, startIndex)
	})
}

// run loads and filters q's dataset and hands the view to compute.
// method names the error prefix; operation is the metric and log label.
func run[T any](ctx context.Context, s *StatsService, method, operation string, q domain.Query, compute func(domain.FilteredView) (T, error)) (T, error) {
	start := time.Now()

	var out T
	ds, err := LoadDataset(ctx, s.source, q.City)
	if err == nil {
		if s.metrics != nil {
			s.metrics.SetRowsLoaded(string(q.City), len(ds.Records))
		}
		view := Filter(ds, q.Month, q.Day)
		s.log.DebugContext(ctx, "dataset filtered",
			"operation", operation,
			"city", q.City,
			"month", q.Month,
			"day", q.Day,
			"rows_loaded", len(ds.Records),
			"rows_matched", view.Len(),
		)
		out, err = compute(view)
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObservePipeline(operation, string(q.City), Outcome(err), elapsed)
	}
	if err != nil {
		s.log.DebugContext(ctx, "pipeline failed", "operation", operation, "error", err)
		var zero T
		return zero, fmt.Errorf("service.StatsService.%s: %w", method, err)
	}
	return out, nil
}

// Outcome names the error kind of err for metrics and logs: "ok" for nil,
// "error" for an error outside the domain kinds.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrDataSourceUnavailable):
		return "data_source_unavailable"
	case errors.Is(err, domain.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, domain.ErrEmptyResultSet):
		return "empty_result_set"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	default:
		return "error"
	}
}

package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// Each aggregation below is pure over its view and fails with
// domain.ErrEmptyResultSet when the view has no rows.

// TimeStats returns the most common month, day of week and start hour.
func TimeStats(view domain.FilteredView) (domain.TimeStats, error) {
	start := time.Now()
	if view.Len() == 0 {
		return domain.TimeStats{}, emptyView("time stats")
	}

	months := newCounter[int]()
	days := newCounter[string]()
	hours := newCounter[int]()
	for _, r := range view.Records {
		months.add(r.Month)
		days.add(r.DayOfWeek)
		hours.add(r.StartTime.Hour())
	}

	month, _ := months.mode()
	day, _ := days.mode()
	hour, _ := hours.mode()

	return domain.TimeStats{
		MostCommonMonth:     time.Month(month).String(),
		MostCommonDayOfWeek: day,
		MostCommonStartHour: strconv.Itoa(hour),
		QueryTimeInSeconds:  time.Since(start).Seconds(),
	}, nil
}

// StationStats returns the most popular start station, end station and
// start/end combination.
func StationStats(view domain.FilteredView) (domain.StationStats, error) {
	start := time.Now()
	if view.Len() == 0 {
		return domain.StationStats{}, emptyView("station stats")
	}

	starts := newCounter[string]()
	ends := newCounter[string]()
	trips := newCounter[string]()
	for _, r := range view.Records {
		starts.add(r.StartStation)
		ends.add(r.EndStation)
		trips.add(r.StartStation + " -> " + r.EndStation)
	}

	s, _ := starts.mode()
	e, _ := ends.mode()
	t, _ := trips.mode()

	return domain.StationStats{
		MostCommonStartStation:     s,
		MostCommonEndStation:       e,
		MostCommonStartEndStations: t,
		QueryTimeInSeconds:         time.Since(start).Seconds(),
	}, nil
}

// TripDurationStats returns the total and mean travel time.
func TripDurationStats(view domain.FilteredView) (domain.TripDurationStats, error) {
	start := time.Now()
	if view.Len() == 0 {
		return domain.TripDurationStats{}, emptyView("trip duration stats")
	}

	var total time.Duration
	for _, r := range view.Records {
		total += r.Duration()
	}
	mean := total / time.Duration(view.Len())

	return domain.TripDurationStats{
		TotalTravelTime:    FormatDuration(total),
		MeanTravelTime:     FormatDuration(mean),
		QueryTimeInSeconds: time.Since(start).Seconds(),
	}, nil
}

// UserStats returns counts by user type and gender and birth year extremes.
// Groups whose column is missing from the dataset are left nil. Blank cells
// are not counted.
func UserStats(view domain.FilteredView) (domain.UserStats, error) {
	start := time.Now()
	if view.Len() == 0 {
		return domain.UserStats{}, emptyView("user stats")
	}

	var res domain.UserStats
	if view.Schema.Has(domain.FieldUserType) {
		res.CountsByUserType = countValues(view, func(r domain.TripRecord) string { return r.UserType })
	}
	if view.Schema.Has(domain.FieldGender) {
		res.CountsByGender = countValues(view, func(r domain.TripRecord) string { return r.Gender })
	}
	if view.Schema.Has(domain.FieldBirthYear) {
		by, err := birthYearStats(view)
		if err != nil {
			return domain.UserStats{}, err
		}
		res.BirthYear = &by
	}

	res.QueryTimeInSeconds = time.Since(start).Seconds()
	return res, nil
}

func countValues(view domain.FilteredView, value func(domain.TripRecord) string) map[string]int {
	c := newCounter[string]()
	for _, r := range view.Records {
		if v := value(r); v != "" {
			c.add(v)
		}
	}
	return c.snapshot()
}

func birthYearStats(view domain.FilteredView) (domain.BirthYearStats, error) {
	years := newCounter[int]()
	var out domain.BirthYearStats
	for _, r := range view.Records {
		if !r.HasBirthYear {
			continue
		}
		if len(years.order) == 0 {
			out.Earliest, out.MostRecent = r.BirthYear, r.BirthYear
		}
		out.Earliest = min(out.Earliest, r.BirthYear)
		out.MostRecent = max(out.MostRecent, r.BirthYear)
		years.add(r.BirthYear)
	}

	common, ok := years.mode()
	if !ok {
		return domain.BirthYearStats{}, fmt.Errorf("%w: no birth year recorded in the selected trips", domain.ErrEmptyResultSet)
	}
	out.MostCommon = common
	return out, nil
}

func emptyView(what string) error {
	return fmt.Errorf("%w: no trips match the query, cannot compute %s", domain.ErrEmptyResultSet, what)
}

package service

import (
	"strings"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// Filter narrows ds to the rows matching month and day.
// "all" disables the corresponding predicate; both predicates are AND-combined.
// Rows keep their dataset order and the dataset itself is never modified.
// An empty result is valid.
func Filter(ds domain.Dataset, month, day string) domain.FilteredView {
	byMonth := month != domain.AllValues
	byDay := day != domain.AllValues

	view := ds.View()
	if !byMonth && !byDay {
		return view
	}

	// An out-of-vocabulary month yields index 0, which no record carries.
	monthIndex := domain.MonthIndex(strings.ToLower(month))
	dayName := domain.TitleCase(strings.ToLower(day))

	// Single pass: a row passes only if it matches every active predicate.
	records := make([]domain.TripRecord, 0, len(ds.Records))
	for _, r := range ds.Records {
		if byMonth && r.Month != monthIndex {
			continue
		}
		if byDay && r.DayOfWeek != dayName {
			continue
		}
		records = append(records, r)
	}
	view.Records = records
	return view
}

package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

func TestFilter_AllAllIsNoOp(t *testing.T) {
	ds := mustDecode(t, domain.Chicago, chicagoTable())

	view := service.Filter(ds, "all", "all")

	assert.Equal(t, len(ds.Records), view.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, positions(view))
}

func TestFilter_Predicates(t *testing.T) {
	ds := mustDecode(t, domain.Chicago, chicagoTable())

	tests := []struct {
		month, day string
		want       []int
	}{
		{month: "january", day: "all", want: []int{0, 1, 2, 6}},
		{month: "all", day: "monday", want: []int{0, 1, 3, 6}},
		{month: "january", day: "monday", want: []int{0, 1, 6}},
		{month: "june", day: "friday", want: []int{5}},
		{month: "all", day: "Sunday", want: []int{2}},
		{month: "april", day: "all", want: []int{}},
		{month: "march", day: "monday", want: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.month+"/"+tc.day, func(t *testing.T) {
			view := service.Filter(ds, tc.month, tc.day)
			assert.Equal(t, tc.want, positions(view))

			for _, r := range view.Records {
				if tc.month != "all" {
					assert.Equal(t, domain.MonthIndex(tc.month), r.Month)
				}
				if tc.day != "all" {
					assert.True(t, strings.EqualFold(tc.day, r.DayOfWeek))
				}
			}
		})
	}
}

// TestFilter_DoesNotMutateDataset verifies repeated filtering of one dataset
// is pure.
func TestFilter_DoesNotMutateDataset(t *testing.T) {
	ds := mustDecode(t, domain.Chicago, chicagoTable())
	before := positions(ds.View())

	_ = service.Filter(ds, "january", "monday")
	_ = service.Filter(ds, "february", "all")

	assert.Equal(t, before, positions(ds.View()))
	assert.Equal(t, 3, service.Filter(ds, "january", "monday").Len())
}

func TestFilter_KeepsSchemaAndColumns(t *testing.T) {
	ds := mustDecode(t, domain.Washington, washingtonTable())

	view := service.Filter(ds, "june", "all")

	assert.Equal(t, ds.Schema, view.Schema)
	assert.Equal(t, ds.Columns, view.Columns)
	assert.Equal(t, []int{0}, positions(view))
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/repo"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

// ---- mock row source -------------------------------------------------------

// mockRowSource is a hand-written test double for repo.RowSource.
type mockRowSource struct {
	table func(ctx context.Context, city domain.City) (domain.RawTable, error)
}

func (m *mockRowSource) Table(ctx context.Context, city domain.City) (domain.RawTable, error) {
	return m.table(ctx, city)
}

// compile-time check: mockRowSource must satisfy repo.RowSource.
var _ repo.RowSource = (*mockRowSource)(nil)

// staticSource returns a mockRowSource that always serves table.
func staticSource(table domain.RawTable) *mockRowSource {
	return &mockRowSource{
		table: func(_ context.Context, _ domain.City) (domain.RawTable, error) { return table, nil },
	}
}

// ---- fixtures --------------------------------------------------------------

var chicagoHeader = []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type", "Gender", "Birth Year"}

// chicagoTable returns seven trips with known aggregates:
//   - months: January x4, February, March, June
//   - days: Monday x4, Sunday, Saturday, Friday
//   - start hours: 9 x3, 17 x2, 8, 23
//   - total duration 1:26:30, mean 0:12:21.428571
//   - birth years: 1975..2001, most common 1990
func chicagoTable() domain.RawTable {
	return domain.RawTable{
		Source: "chicago.csv",
		Header: chicagoHeader,
		Rows: [][]string{
			{"100", "2017-01-02 09:00:00", "2017-01-02 09:10:00", "600", "A", "B", "Subscriber", "Male", "1990.0"},
			{"101", "2017-01-02 09:30:00", "2017-01-02 09:50:00", "1200", "A", "C", "Customer", "Female", "1985.0"},
			{"102", "2017-01-01 17:00:00", "2017-01-01 17:05:00", "300", "B", "B", "Subscriber", "", ""},
			{"103", "2017-02-06 17:15:00", "2017-02-06 17:45:00", "1800", "C", "A", "Subscriber", "Male", "1990.0"},
			{"104", "2017-03-04 08:00:00", "2017-03-04 08:15:00", "900", "A", "B", "Customer", "Female", "2001.0"},
			{"105", "2017-06-30 23:59:00", "2017-07-01 00:04:00", "300", "D", "A", "Subscriber", "Male", "1975.0"},
			{"106", "2017-01-09 09:05:00", "2017-01-09 09:06:30", "90", "A", "B", "Subscriber", "Male", "1990.0"},
		},
	}
}

// washingtonTable has no Gender or Birth Year columns.
func washingtonTable() domain.RawTable {
	return domain.RawTable{
		Source: "washington.csv",
		Header: []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"},
		Rows: [][]string{
			{"0", "2017-06-21 08:36:34", "2017-06-21 08:44:43", "489.066", "14th & Belmont St NW", "15th & K St NW", "Subscriber"},
			{"1", "2017-03-11 10:40:00", "2017-03-11 10:46:00", "360.0", "Yuma St & Tenley Circle NW", "Connecticut Ave & Yuma St NW", "Customer"},
		},
	}
}

// mustDecode decodes table as city, failing the test on error.
func mustDecode(t *testing.T, city domain.City, table domain.RawTable) domain.Dataset {
	t.Helper()
	ds, err := service.DecodeTable(city, table)
	require.NoError(t, err)
	return ds
}

// positions returns the source positions of the view's records in order.
func positions(view domain.FilteredView) []int {
	out := make([]int, 0, view.Len())
	for _, r := range view.Records {
		out = append(out, r.Position)
	}
	return out
}

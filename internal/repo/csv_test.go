package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/repo"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,"Sheffield Ave & Waveland Ave",Subscriber,Female,1992.0
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Subscriber,,
`

// writeCity writes content as city's CSV file in a temp dir and returns the dir.
func writeCity(t *testing.T, city domain.City, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, city.SourceName()), []byte(content), 0o600))
	return dir
}

func TestCSVSource_Table(t *testing.T) {
	dir := writeCity(t, domain.Chicago, chicagoCSV)

	table, err := repo.NewCSVSource(dir).Table(context.Background(), domain.Chicago)

	require.NoError(t, err)
	assert.Equal(t, "chicago.csv", table.Source)
	assert.Equal(t, "", table.Header[0])
	assert.Equal(t, "Birth Year", table.Header[8])
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Sheffield Ave & Waveland Ave", table.Rows[1][5])
	assert.Equal(t, []string{"", ""}, table.Rows[2][7:])
}

func TestCSVSource_stripsByteOrderMark(t *testing.T) {
	dir := writeCity(t, domain.Washington, "\ufeffStart Time,End Time\n2017-06-21 08:36:34,2017-06-21 08:44:43\n")

	table, err := repo.NewCSVSource(dir).Table(context.Background(), domain.Washington)

	require.NoError(t, err)
	assert.Equal(t, []string{"Start Time", "End Time"}, table.Header)
}

func TestCSVSource_missingFile(t *testing.T) {
	_, err := repo.NewCSVSource(t.TempDir()).Table(context.Background(), domain.NewYorkCity)

	require.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
	assert.ErrorContains(t, err, "new_york_city.csv")
}

func TestCSVSource_unknownCity(t *testing.T) {
	_, err := repo.NewCSVSource(t.TempDir()).Table(context.Background(), domain.City("boston"))

	assert.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
}

func TestReadCSV_emptyInput(t *testing.T) {
	_, err := repo.ReadCSV(context.Background(), "chicago.csv", strings.NewReader(""))

	assert.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
}

// TestReadCSV_malformed verifies that a ragged row or broken quoting fails the
// whole read with the offending line number.
func TestReadCSV_malformed(t *testing.T) {
	tests := []struct {
		name, input, wantLine string
	}{
		{"ragged row", "a,b\n1,2\n3\n", "line 3"},
		{"bare quote", "a,b\n1,x\"y\n", "line 2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.ReadCSV(context.Background(), "chicago.csv", strings.NewReader(tc.input))

			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			assert.ErrorContains(t, err, tc.wantLine)
		})
	}
}

func TestReadCSV_cancelledContext(t *testing.T) {
	var b strings.Builder
	b.WriteString("a\n")
	for range 20_000 {
		b.WriteString("1\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ReadCSV(ctx, "chicago.csv", strings.NewReader(b.String()))

	assert.ErrorIs(t, err, context.Canceled)
}

// Package report renders pipeline results for the bikeshare CLI, either as
// text tables or as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// Output formats accepted by NewWriter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer renders results to an output stream.
type Writer interface {
	Stats(q domain.Query, s domain.AllStats) error
	Page(q domain.Query, p domain.Page) error
}

// NewWriter returns the Writer for format. Unknown formats are an error.
func NewWriter(w io.Writer, format string) (Writer, error) {
	switch format {
	case FormatText, "":
		return textWriter{w: w}, nil
	case FormatJSON:
		return jsonWriter{w: w}, nil
	}
	return nil, fmt.Errorf("report: unknown format %q (want %s or %s)", format, FormatText, FormatJSON)
}

type jsonWriter struct {
	w io.Writer
}

type envelope struct {
	Request  domain.Query `json:"request"`
	Response any          `json:"response"`
}

func (j jsonWriter) Stats(q domain.Query, s domain.AllStats) error {
	return j.encode(envelope{Request: q, Response: s})
}

func (j jsonWriter) Page(q domain.Query, p domain.Page) error {
	return j.encode(envelope{Request: q, Response: p})
}

func (j jsonWriter) encode(v any) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

type textWriter struct {
	w io.Writer
}

func (t textWriter) Stats(q domain.Query, s domain.AllStats) error {
	if _, err := fmt.Fprintf(t.w, "city: %s  month: %s  day: %s\n\n", q.City, q.Month, q.Day); err != nil {
		return err
	}

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"Most frequent times of travel", [][]string{
			{"Most common month", s.Time.MostCommonMonth},
			{"Most common day of week", s.Time.MostCommonDayOfWeek},
			{"Most common start hour", s.Time.MostCommonStartHour},
		}},
		{"Most popular stations and trip", [][]string{
			{"Most common start station", s.Station.MostCommonStartStation},
			{"Most common end station", s.Station.MostCommonEndStation},
			{"Most common trip", s.Station.MostCommonStartEndStations},
		}},
		{"Trip duration", [][]string{
			{"Total travel time", s.TripDuration.TotalTravelTime},
			{"Mean travel time", s.TripDuration.MeanTravelTime},
		}},
		{"User stats", userRows(s.User)},
	}

	for _, sec := range sections {
		if _, err := fmt.Fprintln(t.w, sec.title); err != nil {
			return err
		}
		table := tablewriter.NewWriter(t.w)
		table.Header("Statistic", "Value")
		for _, row := range sec.rows {
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(t.w); err != nil {
			return err
		}
	}
	return nil
}

// userRows flattens UserStats into rows, skipping groups the city lacks.
// Count keys are sorted so the output is stable.
func userRows(u domain.UserStats) [][]string {
	var rows [][]string
	for _, k := range slices.Sorted(maps.Keys(u.CountsByUserType)) {
		rows = append(rows, []string{"User type: " + k, humanize.Comma(int64(u.CountsByUserType[k]))})
	}
	for _, k := range slices.Sorted(maps.Keys(u.CountsByGender)) {
		rows = append(rows, []string{"Gender: " + k, humanize.Comma(int64(u.CountsByGender[k]))})
	}
	if b := u.BirthYear; b != nil {
		rows = append(rows,
			[]string{"Earliest birth year", strconv.Itoa(b.Earliest)},
			[]string{"Most recent birth year", strconv.Itoa(b.MostRecent)},
			[]string{"Most common birth year", strconv.Itoa(b.MostCommon)},
		)
	}
	return rows
}

func (t textWriter) Page(q domain.Query, p domain.Page) error {
	if _, err := fmt.Fprintf(t.w, "city: %s  month: %s  day: %s  rows %d-%d\n",
		q.City, q.Month, q.Day, p.StartIndex, p.EndIndex); err != nil {
		return err
	}
	if len(p.Rows) == 0 {
		return nil
	}

	header := []any{"row"}
	for _, f := range p.Rows[0].Fields {
		header = append(header, f.Name)
	}
	table := tablewriter.NewWriter(t.w)
	table.Header(header...)
	for _, r := range p.Rows {
		row := []string{strconv.Itoa(r.Position)}
		for _, f := range r.Fields {
			row = append(row, cellText(f.Value))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func cellText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

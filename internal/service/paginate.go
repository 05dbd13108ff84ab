package service

import (
	"fmt"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// rawTimeLayout is how start and end times appear in raw-data pages.
const rawTimeLayout = "2006-01-02 15:04:05"

// Paginate returns up to domain.PageSize rows of view starting at startIndex.
// Returns domain.ErrOutOfRange unless 0 <= startIndex < view.Len(); an empty
// view is always out of range.
func Paginate(view domain.FilteredView, startIndex int) (domain.Page, error) {
	n := view.Len()
	if startIndex < 0 || startIndex >= n {
		return domain.Page{}, fmt.Errorf("%w: start_index must be between [0, %d), got %d", domain.ErrOutOfRange, n, startIndex)
	}

	end := min(startIndex+domain.PageSize, n)
	rows := make([]domain.RawRow, 0, end-startIndex)
	for _, r := range view.Records[startIndex:end] {
		rows = append(rows, rawRow(view.Columns, r))
	}

	return domain.Page{StartIndex: startIndex, EndIndex: end, Rows: rows}, nil
}

// rawRow renders a record with its source columns followed by the derived
// month and day_of_week columns.
func rawRow(columns []domain.Column, r domain.TripRecord) domain.RawRow {
	fields := make([]domain.RawField, 0, len(columns)+2)
	for i, c := range columns {
		var cell string
		if i < len(r.Cells) {
			cell = r.Cells[i]
		}
		fields = append(fields, domain.RawField{Name: c.Name, Value: rawValue(c.Field, cell, r)})
	}
	fields = append(fields,
		domain.RawField{Name: "month", Value: r.Month},
		domain.RawField{Name: "day_of_week", Value: r.DayOfWeek},
	)
	return domain.RawRow{Position: r.Position, Fields: fields}
}

func rawValue(f domain.Field, cell string, r domain.TripRecord) any {
	switch f {
	case domain.FieldStartTime:
		return r.StartTime.Format(rawTimeLayout)
	case domain.FieldEndTime:
		return r.EndTime.Format(rawTimeLayout)
	case domain.FieldBirthYear:
		if !r.HasBirthYear {
			return nil
		}
		return r.BirthYear
	case domain.FieldUserType:
		if r.UserType == "" {
			return nil
		}
	case domain.FieldGender:
		if r.Gender == "" {
			return nil
		}
	}
	return cell
}

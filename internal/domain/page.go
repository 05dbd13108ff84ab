package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PageSize is the fixed number of raw rows returned per page.
const PageSize = 5

// Page is one window of raw rows from a filtered view.
// StartIndex and EndIndex are view positions; EndIndex is exclusive.
type Page struct {
	StartIndex int
	EndIndex   int
	Rows       []RawRow
}

// RawRow is one record as written in the source plus the derived columns.
// Fields keep the source column order.
type RawRow struct {
	Position int
	Fields   []RawField
}

// RawField is a single named cell of a RawRow.
type RawField struct {
	Name  string
	Value any
}

// MarshalJSON encodes the page as
//
//	{"start_index": 0, "end_index": 5, "raw_data": {"<position>": {"<column>": value, ...}, ...}}
//
// keeping rows in view order and fields in column order.
func (p Page) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"start_index":`)
	buf.WriteString(strconv.Itoa(p.StartIndex))
	buf.WriteString(`,"end_index":`)
	buf.WriteString(strconv.Itoa(p.EndIndex))
	buf.WriteString(`,"raw_data":{`)
	for i, row := range p.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(row.Position)))
		buf.WriteByte(':')
		if err := row.writeJSON(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func (r RawRow) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}

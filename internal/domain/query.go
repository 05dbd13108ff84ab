// Package domain contains the core data types for the bikeshare statistics service.
// It holds the closed query vocabularies, the loaded trip data, and the result
// shapes returned by every pipeline operation. Only the standard library is imported.
package domain

import "strings"

// City names a city with a bikeshare dataset.
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// AllValues is the month/day value that disables the corresponding filter.
const AllValues = "all"

// citySources maps every supported city to the name of its row source.
var citySources = map[City]string{
	Chicago:     "chicago.csv",
	NewYorkCity: "new_york_city.csv",
	Washington:  "washington.csv",
}

// Cities lists the city vocabulary in a fixed order.
var Cities = []City{Chicago, NewYorkCity, Washington}

// Months is the month vocabulary, excluding "all".
// It only spans January to June, matching the published datasets.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days is the day-of-week vocabulary, excluding "all".
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// SourceName returns the row source name for c, or "" for an unknown city.
func (c City) SourceName() string {
	return citySources[c]
}

// Valid reports whether c belongs to the city vocabulary.
func (c City) Valid() bool {
	_, ok := citySources[c]
	return ok
}

// MonthIndex returns the 1-based position of name in Months,
// or 0 when name is "all" or not in the vocabulary.
func MonthIndex(name string) int {
	for i, m := range Months {
		if m == name {
			return i + 1
		}
	}
	return 0
}

// TitleCase upper-cases the first letter of s, e.g. "monday" -> "Monday".
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Query is a validated statistics request.
// City, Month and Day are always lower-case members of their vocabularies.
type Query struct {
	City  City   `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// RawRequest is an undecoded request object as received by the transport.
// Values are whatever JSON produced: strings, json.Number, bools, nil.
type RawRequest map[string]any

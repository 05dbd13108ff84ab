package domain

import "encoding/json"

// TimeStats reports the most frequent times of travel.
type TimeStats struct {
	MostCommonMonth     string  `json:"most_common_month"`
	MostCommonDayOfWeek string  `json:"most_common_day_of_week"`
	MostCommonStartHour string  `json:"most_common_start_hour"`
	QueryTimeInSeconds  float64 `json:"query_time_in_seconds"`
}

// StationStats reports the most popular stations and trip.
type StationStats struct {
	MostCommonStartStation     string  `json:"most_common_start_station"`
	MostCommonEndStation       string  `json:"most_common_end_station"`
	MostCommonStartEndStations string  `json:"most_common_start_end_stations"`
	QueryTimeInSeconds         float64 `json:"query_time_in_seconds"`
}

// TripDurationStats reports the total and mean travel time.
// Durations are formatted as "[D day[s], ]H:MM:SS[.ffffff]".
type TripDurationStats struct {
	TotalTravelTime    string  `json:"total_travel_time"`
	MeanTravelTime     string  `json:"mean_travel_time"`
	QueryTimeInSeconds float64 `json:"query_time_in_seconds"`
}

// UserStats reports bikeshare user demographics.
// A count map is nil when the dataset has no such column and is then omitted
// from JSON; a present column with nothing counted encodes as {}.
// BirthYear is nil when the dataset has no birth year column.
type UserStats struct {
	CountsByUserType   map[string]int  `json:"counts_by_user_type"`
	CountsByGender     map[string]int  `json:"counts_by_gender"`
	BirthYear          *BirthYearStats `json:"birth_year"`
	QueryTimeInSeconds float64         `json:"query_time_in_seconds"`
}

// MarshalJSON omits exactly the groups whose column is absent, which a plain
// omitempty cannot do for an empty but present map.
func (u UserStats) MarshalJSON() ([]byte, error) {
	type wire struct {
		CountsByUserType   *map[string]int `json:"counts_by_user_type,omitempty"`
		CountsByGender     *map[string]int `json:"counts_by_gender,omitempty"`
		BirthYear          *BirthYearStats `json:"birth_year,omitempty"`
		QueryTimeInSeconds float64         `json:"query_time_in_seconds"`
	}
	w := wire{BirthYear: u.BirthYear, QueryTimeInSeconds: u.QueryTimeInSeconds}
	if u.CountsByUserType != nil {
		w.CountsByUserType = &u.CountsByUserType
	}
	if u.CountsByGender != nil {
		w.CountsByGender = &u.CountsByGender
	}
	return json.Marshal(w)
}

// BirthYearStats summarises the birth_year column.
type BirthYearStats struct {
	Earliest   int `json:"earliest"`
	MostRecent int `json:"most_recent"`
	MostCommon int `json:"most_common"`
}

// AllStats bundles the four aggregations computed over one view.
type AllStats struct {
	Time         TimeStats         `json:"time_stats"`
	Station      StationStats      `json:"station_stats"`
	TripDuration TripDurationStats `json:"trip_duration_stats"`
	User         UserStats         `json:"user_stats"`
}

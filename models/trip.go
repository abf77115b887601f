package models

import "time"

// TripRecord is one raw pickup row from the trip files.
type TripRecord struct {
	PickedUpAt time.Time `json:"picked_up_at"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Base       string    `json:"base,omitempty"`
}

// Calendar holds the integer calendar fields derived from a pickup timestamp.
// DayOfWeek is 0 for Monday through 6 for Sunday.
type Calendar struct {
	Hour      int `json:"hour"`
	Day       int `json:"day"`
	DayOfWeek int `json:"dayofweek"`
	Month     int `json:"month"`
}

func CalendarOf(t time.Time) Calendar {
	return Calendar{
		Hour:      t.Hour(),
		Day:       t.Day(),
		DayOfWeek: (int(t.Weekday()) + 6) % 7,
		Month:     int(t.Month()),
	}
}

// Trip is a raw record with its calendar fields attached.
type Trip struct {
	TripRecord
	Calendar
}

// TimeBucket is the aggregation key. It carries no year, so the same
// month/day/hour from different years share a bucket.
type TimeBucket struct {
	Month     int `json:"month"`
	Day       int `json:"day"`
	Hour      int `json:"hour"`
	DayOfWeek int `json:"dayofweek"`
}

func (t Trip) Bucket() TimeBucket {
	return TimeBucket{Month: t.Month, Day: t.Day, Hour: t.Hour, DayOfWeek: t.DayOfWeek}
}

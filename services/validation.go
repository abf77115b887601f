package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ridedemand/models"
)

// ValidationError names the field that made a request unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type rangeCheck struct {
	name, label     string
	value, min, max int
}

// ParseForm converts the six text fields of a form submission.
// It only checks that each field is a number; Validate checks ranges.
func ParseForm(f models.PredictionForm) (models.PredictionRequest, error) {
	var req models.PredictionRequest

	ints := []struct {
		name, label, raw string
		dst              *int
	}{
		{"hour", "Hour", f.Hour, &req.Hour},
		{"day", "Day", f.Day, &req.Day},
		{"dayofweek", "Day of week", f.DayOfWeek, &req.DayOfWeek},
		{"month", "Month", f.Month, &req.Month},
	}
	for _, field := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(field.raw))
		if err != nil {
			return req, &ValidationError{Field: field.name, Reason: field.label + " must be a whole number."}
		}
		*field.dst = n
	}

	floats := []struct {
		name, label, raw string
		dst              *float64
	}{
		{"lat", "Latitude", f.Lat, &req.Lat},
		{"lon", "Longitude", f.Lon, &req.Lon},
	}
	for _, field := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(field.raw), 64)
		if err != nil {
			return req, &ValidationError{Field: field.name, Reason: field.label + " must be a number."}
		}
		*field.dst = v
	}

	return req, nil
}

// Validate checks calendar ranges. Day is bounded by 1..31 regardless of
// month, so 31 February is accepted.
func Validate(r models.PredictionRequest) error {
	checks := []rangeCheck{
		{"hour", "Hour", r.Hour, 0, 23},
		{"day", "Day", r.Day, 1, 31},
		{"dayofweek", "Day of week", r.DayOfWeek, 0, 6},
		{"month", "Month", r.Month, 1, 12},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &ValidationError{
				Field:  c.name,
				Reason: fmt.Sprintf("%s must be between %d and %d.", c.label, c.min, c.max),
			}
		}
	}

	if math.IsNaN(r.Lat) || math.IsInf(r.Lat, 0) {
		return &ValidationError{Field: "lat", Reason: "Latitude must be a finite number."}
	}
	if math.IsNaN(r.Lon) || math.IsInf(r.Lon, 0) {
		return &ValidationError{Field: "lon", Reason: "Longitude must be a finite number."}
	}
	return nil
}

package services

import (
	"errors"
	"math"
	"testing"

	"ridedemand/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() models.PredictionForm {
	return models.PredictionForm{
		Hour: "8", Day: "15", DayOfWeek: "0", Month: "5", Lat: "40.75", Lon: "-73.99",
	}
}

func TestParseForm(t *testing.T) {
	req, err := ParseForm(validForm())
	require.NoError(t, err)
	assert.Equal(t, models.PredictionRequest{
		Hour: 8, Day: 15, DayOfWeek: 0, Month: 5, Lat: 40.75, Lon: -73.99,
	}, req)
}

func TestParseFormTrimsSpace(t *testing.T) {
	f := validForm()
	f.Hour = " 9 "
	f.Lat = "40.7\t"

	req, err := ParseForm(f)
	require.NoError(t, err)
	assert.Equal(t, 9, req.Hour)
	assert.Equal(t, 40.7, req.Lat)
}

func TestParseFormRejectsNonNumeric(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PredictionForm)
		field  string
		reason string
	}{
		{"hour text", func(f *models.PredictionForm) { f.Hour = "eight" }, "hour", "Hour must be a whole number."},
		{"hour decimal", func(f *models.PredictionForm) { f.Hour = "8.5" }, "hour", "Hour must be a whole number."},
		{"day empty", func(f *models.PredictionForm) { f.Day = "" }, "day", "Day must be a whole number."},
		{"dayofweek text", func(f *models.PredictionForm) { f.DayOfWeek = "mon" }, "dayofweek", "Day of week must be a whole number."},
		{"month text", func(f *models.PredictionForm) { f.Month = "May" }, "month", "Month must be a whole number."},
		{"lat text", func(f *models.PredictionForm) { f.Lat = "north" }, "lat", "Latitude must be a number."},
		{"lon empty", func(f *models.PredictionForm) { f.Lon = "" }, "lon", "Longitude must be a number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			_, err := ParseForm(f)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidateRanges(t *testing.T) {
	base := models.PredictionRequest{Hour: 8, Day: 15, DayOfWeek: 0, Month: 5, Lat: 40.75, Lon: -73.99}

	tests := []struct {
		name   string
		mutate func(*models.PredictionRequest)
		reason string
	}{
		{"hour low", func(r *models.PredictionRequest) { r.Hour = -1 }, "Hour must be between 0 and 23."},
		{"hour high", func(r *models.PredictionRequest) { r.Hour = 25 }, "Hour must be between 0 and 23."},
		{"day zero", func(r *models.PredictionRequest) { r.Day = 0 }, "Day must be between 1 and 31."},
		{"day high", func(r *models.PredictionRequest) { r.Day = 32 }, "Day must be between 1 and 31."},
		{"dayofweek high", func(r *models.PredictionRequest) { r.DayOfWeek = 7 }, "Day of week must be between 0 and 6."},
		{"month zero", func(r *models.PredictionRequest) { r.Month = 0 }, "Month must be between 1 and 12."},
		{"month high", func(r *models.PredictionRequest) { r.Month = 13 }, "Month must be between 1 and 12."},
		{"lat nan", func(r *models.PredictionRequest) { r.Lat = math.NaN() }, "Latitude must be a finite number."},
		{"lon inf", func(r *models.PredictionRequest) { r.Lon = math.Inf(-1) }, "Longitude must be a finite number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)

			err := Validate(r)
			require.Error(t, err)
			assert.Equal(t, tt.reason, err.Error())
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	for _, r := range []models.PredictionRequest{
		{Hour: 0, Day: 1, DayOfWeek: 0, Month: 1},
		{Hour: 23, Day: 31, DayOfWeek: 6, Month: 12, Lat: -90, Lon: 180},
	} {
		assert.NoError(t, Validate(r))
	}
}

func TestValidateDoesNotCheckDaysInMonth(t *testing.T) {
	assert.NoError(t, Validate(models.PredictionRequest{Hour: 1, Day: 31, DayOfWeek: 2, Month: 2}))
}

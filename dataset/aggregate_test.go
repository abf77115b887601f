package dataset

import (
	"testing"
	"time"

	"ridedemand/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trip(ts string, lat, lon float64) models.Trip {
	t, err := time.Parse("2006-01-02 15:04", ts)
	if err != nil {
		panic(err)
	}
	return models.Trip{
		TripRecord: models.TripRecord{PickedUpAt: t, Lat: lat, Lon: lon},
		Calendar:   models.CalendarOf(t),
	}
}

func TestAggregateMean(t *testing.T) {
	samples := Aggregate([]models.Trip{
		trip("2014-05-12 08:05", 10.0, -70.0),
		trip("2014-05-12 08:40", 20.0, -80.0),
	})

	require.Len(t, samples, 1)
	s := samples[0]
	assert.Equal(t, models.TimeBucket{Month: 5, Day: 12, Hour: 8, DayOfWeek: 0}, s.TimeBucket)
	assert.Equal(t, 2, s.Trips)
	assert.InDelta(t, 15.0, s.Lat, 1e-12)
	assert.InDelta(t, -75.0, s.Lon, 1e-12)
}

func TestAggregateSingleTripBucket(t *testing.T) {
	samples := Aggregate([]models.Trip{trip("2014-04-01 00:11", 40.769, -73.9549)})

	require.Len(t, samples, 1)
	assert.Equal(t, 1, samples[0].Trips)
	assert.Equal(t, 40.769, samples[0].Lat)
	assert.Equal(t, -73.9549, samples[0].Lon)
}

func TestAggregatePreservesRowCount(t *testing.T) {
	var trips []models.Trip
	start := time.Date(2014, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		ts := start.Add(time.Duration(i*7) * time.Minute)
		trips = append(trips, models.Trip{
			TripRecord: models.TripRecord{PickedUpAt: ts, Lat: 40.7, Lon: -73.9},
			Calendar:   models.CalendarOf(ts),
		})
	}

	samples := Aggregate(trips)

	total := 0
	seen := make(map[models.TimeBucket]bool)
	for _, s := range samples {
		total += s.Trips
		assert.False(t, seen[s.TimeBucket], "duplicate bucket %+v", s.TimeBucket)
		seen[s.TimeBucket] = true
	}
	assert.Equal(t, len(trips), total)
}

func TestAggregateMergesAcrossYears(t *testing.T) {
	// 2014-05-12 and 2025-05-12 are both Mondays
	samples := Aggregate([]models.Trip{
		trip("2014-05-12 08:05", 40.0, -73.0),
		trip("2025-05-12 08:05", 41.0, -74.0),
	})

	require.Len(t, samples, 1)
	assert.Equal(t, 2, samples[0].Trips)
}

func TestAggregateOrderIsStable(t *testing.T) {
	trips := []models.Trip{
		trip("2014-06-02 10:00", 1, 1),
		trip("2014-04-03 23:00", 1, 1),
		trip("2014-04-03 01:00", 1, 1),
	}

	first := Aggregate(trips)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(trips))
	}
	assert.Equal(t, 4, first[0].Month)
	assert.Equal(t, 1, first[0].Hour)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

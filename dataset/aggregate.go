package dataset

import (
	"sort"

	"ridedemand/models"
)

type bucketSums struct {
	trips int
	lat   float64
	lon   float64
}

// Aggregate collapses trips into one sample per time bucket carrying the
// trip count and mean pickup position. Samples come back ordered by
// (month, day, hour, dayofweek) so that training on them is reproducible.
func Aggregate(trips []models.Trip) []models.AggregatedSample {
	sums := make(map[models.TimeBucket]*bucketSums)
	for _, t := range trips {
		key := t.Bucket()
		s, ok := sums[key]
		if !ok {
			s = &bucketSums{}
			sums[key] = s
		}
		s.trips++
		s.lat += t.Lat
		s.lon += t.Lon
	}

	samples := make([]models.AggregatedSample, 0, len(sums))
	for key, s := range sums {
		n := float64(s.trips)
		samples = append(samples, models.AggregatedSample{
			TimeBucket: key,
			Trips:      s.trips,
			Lat:        s.lat / n,
			Lon:        s.lon / n,
		})
	}

	sort.Slice(samples, func(i, j int) bool {
		a, b := samples[i].TimeBucket, samples[j].TimeBucket
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.DayOfWeek < b.DayOfWeek
	})
	return samples
}

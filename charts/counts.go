package charts

import (
	"sort"

	"ridedemand/models"
)

// Counts holds the trip tallies behind the four exploratory charts.
type Counts struct {
	Total       int
	ByHour      [24]float64
	ByDayOfWeek [7]float64
	ByMonth     map[int]float64
	// HourDay is indexed [hour][day-1].
	HourDay [24][31]float64
}

func Count(trips []models.Trip) Counts {
	c := Counts{Total: len(trips), ByMonth: make(map[int]float64)}
	for _, t := range trips {
		c.ByHour[t.Hour]++
		c.ByDayOfWeek[t.DayOfWeek]++
		c.ByMonth[t.Month]++
		c.HourDay[t.Hour][t.Day-1]++
	}
	return c
}

// Months returns the months that had at least one trip, ascending.
func (c Counts) Months() []int {
	months := make([]int, 0, len(c.ByMonth))
	for m := range c.ByMonth {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

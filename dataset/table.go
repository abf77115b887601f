package dataset

import "ridedemand/models"

// TrainingTable splits samples into a feature matrix in models.FeatureNames
// order and the Trips target.
func TrainingTable(samples []models.AggregatedSample) ([][]float64, []float64) {
	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features()
		y[i] = float64(s.Trips)
	}
	return x, y
}

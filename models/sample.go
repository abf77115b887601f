package models

// FeatureNames is the column order the model is trained and queried with.
var FeatureNames = []string{"hour", "day", "dayofweek", "month", "Lat", "Lon"}

// AggregatedSample is one row of the training table.
type AggregatedSample struct {
	TimeBucket
	Trips int     `json:"trips"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Features returns the sample's feature vector in FeatureNames order.
func (s AggregatedSample) Features() []float64 {
	return []float64{
		float64(s.Hour),
		float64(s.Day),
		float64(s.DayOfWeek),
		float64(s.Month),
		s.Lat,
		s.Lon,
	}
}

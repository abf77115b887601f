package models

// PredictionForm is the raw form submission. Every field arrives as text.
type PredictionForm struct {
	Hour      string `form:"hour"`
	Day       string `form:"day"`
	DayOfWeek string `form:"dayofweek"`
	Month     string `form:"month"`
	Lat       string `form:"lat"`
	Lon       string `form:"lon"`
}

// PredictionRequest is a parsed prediction query.
type PredictionRequest struct {
	Hour      int     `json:"hour"`
	Day       int     `json:"day"`
	DayOfWeek int     `json:"dayofweek"`
	Month     int     `json:"month"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// Features returns the request's feature vector in FeatureNames order.
func (r PredictionRequest) Features() []float64 {
	return []float64{
		float64(r.Hour),
		float64(r.Day),
		float64(r.DayOfWeek),
		float64(r.Month),
		r.Lat,
		r.Lon,
	}
}

type PredictionResponse struct {
	Trips int `json:"trips"`
}

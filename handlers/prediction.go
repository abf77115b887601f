package handlers

import (
	"net/http"

	"ridedemand/models"
	"ridedemand/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictor *services.Predictor
}

func NewPredictionHandler(predictor *services.Predictor) *PredictionHandler {
	return &PredictionHandler{predictor: predictor}
}

type formPage struct {
	Form          models.PredictionForm
	Error         string
	HasPrediction bool
	Prediction    int
}

// PredictJSONRequest uses pointers so that absent fields are rejected
// instead of read as zero.
type PredictJSONRequest struct {
	Hour      *int     `json:"hour" binding:"required"`
	Day       *int     `json:"day" binding:"required"`
	DayOfWeek *int     `json:"dayofweek" binding:"required"`
	Month     *int     `json:"month" binding:"required"`
	Lat       *float64 `json:"lat" binding:"required"`
	Lon       *float64 `json:"lon" binding:"required"`
}

func statusFor(kind services.FailureKind) int {
	switch kind {
	case services.FailureInvalidInput:
		return http.StatusBadRequest
	case services.FailureUnavailable:
		return http.StatusServiceUnavailable
	case services.FailureInternal:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Form renders the empty prediction form.
func (h *PredictionHandler) Form(c *gin.Context) {
	if !h.predictor.Ready() {
		c.HTML(http.StatusServiceUnavailable, "index.html", formPage{Error: services.MsgUnavailable})
		return
	}
	c.HTML(http.StatusOK, "index.html", formPage{})
}

// Submit evaluates a posted form and renders the result in the same page.
func (h *PredictionHandler) Submit(c *gin.Context) {
	form := models.PredictionForm{
		Hour:      c.PostForm("hour"),
		Day:       c.PostForm("day"),
		DayOfWeek: c.PostForm("dayofweek"),
		Month:     c.PostForm("month"),
		Lat:       c.PostForm("lat"),
		Lon:       c.PostForm("lon"),
	}

	res := h.predictor.PredictForm(c.Request.Context(), form)
	page := formPage{Form: form}
	if res.OK() {
		page.HasPrediction = true
		page.Prediction = res.Trips
	} else {
		page.Error = res.Message
	}
	c.HTML(statusFor(res.Failure), "index.html", page)
}

// PredictJSON is the machine-facing twin of Submit.
func (h *PredictionHandler) PredictJSON(c *gin.Context) {
	if !h.predictor.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.MsgUnavailable})
		return
	}

	var body PredictJSONRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: hour, day, dayofweek, month, lat and lon are required numbers."})
		return
	}

	res := h.predictor.Predict(c.Request.Context(), models.PredictionRequest{
		Hour:      *body.Hour,
		Day:       *body.Day,
		DayOfWeek: *body.DayOfWeek,
		Month:     *body.Month,
		Lat:       *body.Lat,
		Lon:       *body.Lon,
	})
	if !res.OK() {
		c.JSON(statusFor(res.Failure), gin.H{"error": res.Message})
		return
	}
	c.JSON(http.StatusOK, models.PredictionResponse{Trips: res.Trips})
}

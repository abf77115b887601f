package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ridedemand/dataset"
	"ridedemand/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSyntheticMonth writes a May 2014 trip file whose hourly volume
// follows a fixed daily curve.
func writeSyntheticMonth(t *testing.T, dir string) int {
	t.Helper()

	var b strings.Builder
	b.WriteString("\"Date/Time\",\"Lat\",\"Lon\",\"Base\"\n")
	rows := 0
	for day := 1; day <= 31; day++ {
		for hour := 0; hour < 24; hour++ {
			ts := time.Date(2014, 5, day, hour, 0, 0, 0, time.UTC)
			n := 1 + hour%6 + day%3
			if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
				n++
			}
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, "\"%d/%d/2014 %d:%02d:00\",%.4f,%.4f,\"B02512\"\n",
					5, day, hour, i*7%60, 40.70+float64(i)*0.01, -74.00+float64(hour)*0.001)
				rows++
			}
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uber-raw-data-may14.csv"), []byte(b.String()), 0o644))
	return rows
}

func TestTrainerNoInputWritesNothing(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "ensemble_model.bin")
	trainer := NewTrainer(&dataset.CSVSource{Dir: t.TempDir()}, modelPath, nil)

	report, err := trainer.Run(context.Background())

	assert.ErrorIs(t, err, dataset.ErrNoInputFiles)
	assert.Nil(t, report)
	assert.NoFileExists(t, modelPath)
}

func TestTrainerParseFailureWritesNothing(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "uber-raw-data-bad.csv"),
		[]byte("Date/Time,Lat,Lon\nsoon,40.7,-73.9\n"), 0o644))
	modelPath := filepath.Join(t.TempDir(), "ensemble_model.bin")

	_, err := NewTrainer(&dataset.CSVSource{Dir: dataDir}, modelPath, nil).Run(context.Background())

	assert.Error(t, err)
	assert.NoFileExists(t, modelPath)
}

func TestTrainerEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	rows := writeSyntheticMonth(t, dataDir)

	modelPath := filepath.Join(t.TempDir(), "ensemble_model.bin")
	report, err := NewTrainer(&dataset.CSVSource{Dir: dataDir}, modelPath, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, report.Trips)
	assert.Equal(t, 31*24, report.Buckets)
	assert.FileExists(t, modelPath)

	p := LoadPredictor(modelPath, nil, nil)
	require.True(t, p.Ready(), "load error: %v", p.LoadErr())

	res := p.PredictForm(context.Background(), models.PredictionForm{
		Hour: "8", Day: "15", DayOfWeek: "0", Month: "5", Lat: "40.75", Lon: "-73.99",
	})
	require.True(t, res.OK(), res.Message)
	// Mean latitude grows with bucket volume in the synthetic month, and
	// 40.75 lies past the busiest buckets (9 trips), so every seeded member
	// lands just under 9.
	assert.Equal(t, 9, res.Trips)

	bad := p.PredictForm(context.Background(), models.PredictionForm{
		Hour: "25", Day: "15", DayOfWeek: "0", Month: "5", Lat: "40.75", Lon: "-73.99",
	})
	assert.False(t, bad.OK())
	assert.Contains(t, bad.Message, "Hour must be between 0 and 23")
}

func TestTrainerIsReproducible(t *testing.T) {
	dataDir := t.TempDir()
	writeSyntheticMonth(t, dataDir)
	src := &dataset.CSVSource{Dir: dataDir}

	pathA := filepath.Join(t.TempDir(), "a.bin")
	pathB := filepath.Join(t.TempDir(), "b.bin")
	_, err := NewTrainer(src, pathA, nil).Run(context.Background())
	require.NoError(t, err)
	_, err = NewTrainer(src, pathB, nil).Run(context.Background())
	require.NoError(t, err)

	a := LoadPredictor(pathA, nil, nil)
	b := LoadPredictor(pathB, nil, nil)
	req := models.PredictionRequest{Hour: 8, Day: 15, DayOfWeek: 0, Month: 5, Lat: 40.75, Lon: -73.99}
	for hour := 0; hour < 24; hour++ {
		req.Hour = hour
		ra := a.Predict(context.Background(), req)
		rb := b.Predict(context.Background(), req)
		require.True(t, ra.OK())
		assert.Equal(t, ra.Trips, rb.Trips, "hour %d", hour)
	}
}

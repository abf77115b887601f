// Package charts renders the exploratory trip charts shown on the dashboard.
package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ridedemand/dataset"
	"ridedemand/logging"
)

type chart struct {
	file   string
	render func(Counts, string) error
}

var allCharts = []chart{
	{HourFile, renderHourly},
	{DayOfWeekFile, renderWeekly},
	{MonthFile, renderMonthly},
	{HeatmapFile, renderHeatmap},
}

// Generator loads trips once and writes every chart into Dir, replacing
// earlier renders.
type Generator struct {
	Source dataset.Source
	Dir    string
	Logger *slog.Logger
}

func NewGenerator(source dataset.Source, dir string, logger *slog.Logger) *Generator {
	return &Generator{Source: source, Dir: dir, Logger: logger}
}

// Run returns the paths written. Input is loaded before the output
// directory is touched, so a run with no input leaves no trace.
func (g *Generator) Run(ctx context.Context) ([]string, error) {
	start := time.Now()

	trips, err := g.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	counts := Count(trips)

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	paths := make([]string, 0, len(allCharts))
	for _, c := range allCharts {
		path := filepath.Join(g.Dir, c.file)
		if err := c.render(counts, path); err != nil {
			return paths, fmt.Errorf("render %s: %w", c.file, err)
		}
		logging.LogOperation(g.Logger, "chart written", slog.String("path", path))
		paths = append(paths, path)
	}

	logging.LogOperation(g.Logger, "charts generated",
		slog.Int("charts", len(paths)),
		slog.Int("trips", counts.Total),
		slog.Duration("duration", time.Since(start)))
	return paths, nil
}

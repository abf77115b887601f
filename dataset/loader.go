package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ridedemand/config"
	"ridedemand/logging"
	"ridedemand/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	FilePrefix = "uber-raw-data"
	FileSuffix = ".csv"

	ColDateTime = "Date/Time"
	ColLat      = "Lat"
	ColLon      = "Lon"
	ColBase     = "Base"
)

var (
	ErrNoInputFiles  = errors.New("no trip files found")
	ErrNoTrips       = errors.New("no trip records loaded")
	ErrMissingColumn = errors.New("missing required column")
)

// Source yields every trip record of one run.
type Source interface {
	Load(ctx context.Context) ([]models.Trip, error)
}

// NewSource picks the trip source named in the data config.
func NewSource(cfg config.DataConfig, logger *slog.Logger) Source {
	if cfg.Source == config.SourcePostgres {
		return &PostgresSource{DSN: cfg.DSN, Logger: logger}
	}
	return &CSVSource{Dir: cfg.Dir, Logger: logger}
}

// CSVSource reads the uber-raw-data*.csv files of a directory.
type CSVSource struct {
	Dir    string
	Logger *slog.Logger
}

// Discover returns the matching trip files in dir sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: directory %s does not exist", ErrNoInputFiles, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, dir)
	}
	sort.Strings(files)
	return files, nil
}

func (s *CSVSource) Load(ctx context.Context) ([]models.Trip, error) {
	start := time.Now()

	files, err := Discover(s.Dir)
	if err != nil {
		return nil, err
	}
	logging.LogOperation(s.Logger, "trip files found",
		slog.Int("files", len(files)),
		slog.String("dir", s.Dir))

	var trips []models.Trip
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileTrips, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		trips = append(trips, fileTrips...)
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w from %s", ErrNoTrips, s.Dir)
	}

	logging.LogOperation(s.Logger, "trips loaded",
		slog.Int("rows", len(trips)),
		slog.Duration("duration", time.Since(start)))
	return trips, nil
}

// ReadFile parses one trip file. Any unreadable row fails the whole file.
func ReadFile(path string) ([]models.Trip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			ColLat: series.Float,
			ColLon: series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, df.Err)
	}

	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, required := range []string{ColDateTime, ColLat, ColLon} {
		if !names[required] {
			return nil, fmt.Errorf("parse %s: %w %q", path, ErrMissingColumn, required)
		}
	}

	stamps := df.Col(ColDateTime).Records()
	lats := df.Col(ColLat).Float()
	lons := df.Col(ColLon).Float()
	var bases []string
	if names[ColBase] {
		bases = df.Col(ColBase).Records()
	}

	trips := make([]models.Trip, 0, len(stamps))
	for i, raw := range stamps {
		// header is line 1
		line := i + 2
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		if math.IsNaN(lats[i]) || math.IsNaN(lons[i]) {
			return nil, fmt.Errorf("parse %s line %d: invalid coordinates", path, line)
		}

		rec := models.TripRecord{PickedUpAt: ts, Lat: lats[i], Lon: lons[i]}
		if bases != nil {
			rec.Base = bases[i]
		}
		trips = append(trips, models.Trip{TripRecord: rec, Calendar: models.CalendarOf(ts)})
	}
	return trips, nil
}

package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ridedemand/logging"
	"ridedemand/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTripsTable holds the flat trip records in Postgres deployments.
const DefaultTripsTable = "trips_raw"

const tripsQuery = `
	SELECT ts, lat, lon, COALESCE(base, '')
	FROM %s
	ORDER BY ts
`

// PostgresSource reads trip records from a table with columns
// ts, lat, lon and base. Table defaults to DefaultTripsTable.
type PostgresSource struct {
	DSN    string
	Table  string
	Logger *slog.Logger
}

func (s *PostgresSource) table() string {
	if s.Table == "" {
		return DefaultTripsTable
	}
	return s.Table
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.Trip, error) {
	start := time.Now()

	pool, err := pgxpool.New(ctx, s.DSN)
	if err != nil {
		return nil, fmt.Errorf("db pool init: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	table := s.table()
	rows, err := pool.Query(ctx, fmt.Sprintf(tripsQuery, pgx.Identifier{table}.Sanitize()))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var rec models.TripRecord
		if err := rows.Scan(&rec.PickedUpAt, &rec.Lat, &rec.Lon, &rec.Base); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, len(trips)+1, err)
		}
		trips = append(trips, models.Trip{TripRecord: rec, Calendar: models.CalendarOf(rec.PickedUpAt)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoInputFiles, table)
	}

	logging.LogOperation(s.Logger, "trips loaded",
		slog.Int("rows", len(trips)),
		slog.String("source", "postgres"),
		slog.String("table", table),
		slog.Duration("duration", time.Since(start)))
	return trips, nil
}

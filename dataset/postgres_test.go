package dataset

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresSourceLoad needs a reachable database; set DB_DSN to run it.
func TestPostgresSourceLoad(t *testing.T) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	table := fmt.Sprintf("trips_raw_test_%d", time.Now().UnixNano())
	ident := pgx.Identifier{table}.Sanitize()
	_, err = pool.Exec(ctx, "CREATE TABLE "+ident+` (
		ts   timestamp NOT NULL,
		lat  double precision NOT NULL,
		lon  double precision NOT NULL,
		base text
	)`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+ident)
	})

	src := &PostgresSource{DSN: dsn, Table: table}

	t.Run("empty table is missing input", func(t *testing.T) {
		trips, err := src.Load(ctx)
		assert.ErrorIs(t, err, ErrNoInputFiles)
		assert.Nil(t, trips)
	})

	t.Run("rows are loaded in time order", func(t *testing.T) {
		_, err := pool.Exec(ctx, "INSERT INTO "+ident+` (ts, lat, lon, base) VALUES
			('2014-05-15 08:30:00', 40.75, -73.99, NULL),
			('2014-04-01 00:11:00', 40.769, -73.9549, 'B02512')`)
		require.NoError(t, err)

		trips, err := src.Load(ctx)
		require.NoError(t, err)
		require.Len(t, trips, 2)

		first, second := trips[0], trips[1]
		assert.Equal(t, "B02512", first.Base)
		assert.Equal(t, 4, first.Month)
		assert.Equal(t, 1, first.Day)
		assert.Equal(t, 1, first.DayOfWeek)

		assert.Empty(t, second.Base)
		assert.Equal(t, 8, second.Hour)
		assert.Equal(t, 15, second.Day)
		assert.Equal(t, 3, second.DayOfWeek)
		assert.Equal(t, 40.75, second.Lat)
		assert.Equal(t, -73.99, second.Lon)
	})
}

func TestPostgresSourceDefaultTable(t *testing.T) {
	assert.Equal(t, DefaultTripsTable, (&PostgresSource{}).table())
	assert.Equal(t, "trips_2014", (&PostgresSource{Table: "trips_2014"}).table())
}

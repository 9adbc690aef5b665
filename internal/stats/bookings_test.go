package stats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/stats"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

func TestBookings(t *testing.T) {
	path := filepath.Join(t.TempDir(), warehouse.BookingFile)
	f, err := os.Create(path)
	require.NoError(t, err)
	writer := parquet.NewWriter(f, parquet.SchemaOf(new(models.Booking)))
	for _, b := range []models.Booking{
		{ID: "B1", CustomerID: "C1", Status: models.BookingCompleted, TotalAmount: 100},
		{ID: "B2", CustomerID: "C1", Status: models.BookingCompleted, TotalAmount: 300},
		{ID: "B3", CustomerID: "C2", Status: models.BookingCancelled, TotalAmount: 999},
	} {
		require.NoError(t, writer.Write(b))
	}
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())

	db, err := warehouse.OpenDuckDB(context.Background(), "")
	require.NoError(t, err)
	defer db.Close()

	bs, err := stats.Bookings(context.Background(), db, path)
	require.NoError(t, err)

	assert.Equal(t, int64(3), bs.TotalBookings)
	assert.InDelta(t, 400, bs.CompletedRevenue, 1e-9)
	assert.InDelta(t, 200, bs.AvgBookingValue, 1e-9)
	assert.Equal(t, int64(2), bs.UniqueCustomers)
	assert.Equal(t, map[string]int64{
		models.BookingCompleted: 2,
		models.BookingCancelled: 1,
	}, bs.StatusCounts)
}

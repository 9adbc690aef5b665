package warehouse_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

func writeParquet[T any](t *testing.T, path string, rows []T) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	writer := parquet.NewWriter(f, parquet.SchemaOf(new(T)))
	for _, row := range rows {
		require.NoError(t, writer.Write(row))
	}
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())
}

func newTestLoader(t *testing.T) *warehouse.Loader {
	t.Helper()
	db, err := warehouse.OpenDuckDB(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return warehouse.NewLoader(newTestLogger(), db)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testCustomers() []models.Customer {
	return []models.Customer{
		{ID: "C1", LoyaltyTier: models.TierGold, Country: "USA", TotalFlights: 50, IsActive: true, DateOfBirth: "1990-01-15"},
		{ID: "C2", LoyaltyTier: models.TierSilver, Country: "UK", TotalFlights: 5, IsActive: false, DateOfBirth: "1985-07-20"},
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), testCustomers())
	writeParquet(t, filepath.Join(dir, warehouse.BookingFile), []models.Booking{
		{ID: "B1", CustomerID: "C1", Status: models.BookingCompleted, TotalAmount: 250.50},
	})

	ds, err := newTestLoader(t).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, ds.Customers, 2)
	assert.Equal(t, "C1", ds.Customers[0].ID)
	assert.Equal(t, models.TierGold, ds.Customers[0].LoyaltyTier)
	assert.Equal(t, int64(50), ds.Customers[0].TotalFlights)

	require.Len(t, ds.Bookings, 1)
	assert.Equal(t, models.BookingCompleted, ds.Bookings[0].Status)
	assert.InDelta(t, 250.50, ds.Bookings[0].TotalAmount, 1e-9)
}

func TestLoaderMissingBookingFile(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), testCustomers())

	ds, err := newTestLoader(t).Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, ds.Customers, 2)
	assert.Nil(t, ds.Bookings)
}

func TestLoaderMissingCustomerFile(t *testing.T) {
	_, err := newTestLoader(t).Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestLoaderSchemaError(t *testing.T) {
	type wrongSchema struct {
		Foo string `parquet:"foo"`
	}

	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), []wrongSchema{{Foo: "bar"}})

	_, err := newTestLoader(t).Load(context.Background(), dir)

	var schemaErr *warehouse.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, warehouse.CustomerFile, schemaErr.File)
	assert.Contains(t, schemaErr.Missing, "customer_id")
}

func TestStoreReloadSwapsDataset(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), testCustomers())

	store := warehouse.NewStore(newTestLoader(t), dir)
	assert.Nil(t, store.Dataset())

	require.NoError(t, store.Reload(context.Background()))
	first := store.Dataset()
	require.Len(t, first.Customers, 2)

	more := append(testCustomers(), models.Customer{ID: "C3", Country: "Japan"})
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), more)
	require.NoError(t, store.Reload(context.Background()))

	// The earlier snapshot is untouched; only the reference was swapped.
	assert.Len(t, first.Customers, 2)
	assert.Len(t, store.Dataset().Customers, 3)
}

func TestStoreReloadKeepsDatasetOnError(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, filepath.Join(dir, warehouse.CustomerFile), testCustomers())

	store := warehouse.NewStore(newTestLoader(t), dir)
	require.NoError(t, store.Reload(context.Background()))

	require.NoError(t, os.Remove(filepath.Join(dir, warehouse.CustomerFile)))
	err := store.Reload(context.Background())
	assert.Error(t, err)
	assert.NotNil(t, store.Dataset())
}

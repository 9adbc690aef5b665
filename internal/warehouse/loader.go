// Package warehouse loads the airline warehouse tables from parquet files
// and holds the current dataset behind an atomically swappable reference.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/airlinedw/segmenter/internal/models"
)

// Warehouse file names, matching the generator and the upstream ETL.
const (
	CustomerFile = "dim_customer.parquet"
	BookingFile  = "fact_booking.parquet"
)

var (
	customerColumns = []string{
		"customer_id", "date_of_birth", "country", "loyalty_tier",
		"loyalty_points", "total_flights", "preferred_class", "is_active",
	}
	bookingColumns = []string{
		"booking_id", "customer_id", "booking_status", "total_amount",
	}
)

// SchemaError reports a warehouse file missing required columns. It is the
// one fatal load condition; everything else (absent booking table, empty
// tables) degrades gracefully.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// Dataset is one immutable load of the warehouse tables. Bookings may be nil
// when the fact_booking file is absent; spend-based segmentation is then
// skipped.
type Dataset struct {
	Customers []models.Customer
	Bookings  []models.Booking
}

// Loader reads warehouse parquet files. The DuckDB handle is used for schema
// validation ahead of the typed reads.
type Loader struct {
	logger *slog.Logger
	db     *sql.DB
}

func NewLoader(logger *slog.Logger, db *sql.DB) *Loader {
	return &Loader{logger: logger, db: db}
}

// Load reads dim_customer and, when present, fact_booking from dir. A
// missing customer file is an error; a missing booking file is not.
func (l *Loader) Load(ctx context.Context, dir string) (*Dataset, error) {
	customerPath := filepath.Join(dir, CustomerFile)
	if err := l.validateSchema(ctx, customerPath, customerColumns); err != nil {
		return nil, err
	}
	customers, err := readParquet[models.Customer](customerPath)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Customers: customers}

	bookingPath := filepath.Join(dir, BookingFile)
	if _, err := os.Stat(bookingPath); errors.Is(err, os.ErrNotExist) {
		l.logger.InfoContext(ctx, "no booking table found, spend-based segmentation disabled", "path", bookingPath)
		return ds, nil
	}
	if err := l.validateSchema(ctx, bookingPath, bookingColumns); err != nil {
		return nil, err
	}
	ds.Bookings, err = readParquet[models.Booking](bookingPath)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "loaded warehouse",
		slog.Int("customers", len(ds.Customers)),
		slog.Int("bookings", len(ds.Bookings)))

	return ds, nil
}

// validateSchema checks the parquet file's columns through DuckDB before the
// typed read, so a structurally malformed table surfaces as a *SchemaError
// instead of a sea of zero values.
func (l *Loader) validateSchema(ctx context.Context, path string, required []string) error {
	rows, err := l.db.QueryContext(ctx, fmt.Sprintf("SELECT column_name FROM (DESCRIBE SELECT * FROM '%s')", path))
	if err != nil {
		return fmt.Errorf("describing %s: %w", path, err)
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning column name: %w", err)
		}
		present[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{File: filepath.Base(path), Missing: missing}
	}
	return nil
}

func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reader := parquet.NewReader(f)
	defer reader.Close()

	var out []T
	for {
		var rec T
		err := reader.Read(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record from %s: %w", filepath.Base(path), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

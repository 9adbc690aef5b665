package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

const (
	numCustomers = 2000
	numBookings  = 10000
)

var (
	firstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	countries  = []string{"USA", "Canada", "UK", "Australia", "Germany", "France", "Japan", "Brazil"}
	tiers      = []string{models.TierDiamond, models.TierPlatinum, models.TierGold, models.TierSilver, models.TierNone}
	classes    = []string{"Economy", "Premium Economy", "Business", "First"}
	statuses   = []string{models.BookingCompleted, models.BookingCompleted, models.BookingCompleted, models.BookingCancelled, models.BookingPending}
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, getenv func(string) string) error {
	outputDir := getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "data"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	customers := make([]models.Customer, numCustomers)
	for i := range customers {
		customers[i] = generateCustomer()
	}
	if err := writeParquet(filepath.Join(outputDir, warehouse.CustomerFile), customers); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d customers\n", len(customers))

	bookings := make([]models.Booking, numBookings)
	for i := range bookings {
		bookings[i] = generateBooking(customers[rand.Intn(len(customers))].ID)
	}
	if err := writeParquet(filepath.Join(outputDir, warehouse.BookingFile), bookings); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d bookings\n", len(bookings))

	return nil
}

func writeParquet[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewWriter(f, parquet.SchemaOf(new(T)))
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			writer.Close()
			return fmt.Errorf("writing record: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}
	return nil
}

func generateCustomer() models.Customer {
	first := randomFromSlice(firstNames)
	last := randomFromSlice(lastNames)
	return models.Customer{
		ID:             uuid.New().String(),
		FirstName:      first,
		LastName:       last,
		Email:          generateEmail(first, last),
		DateOfBirth:    generateDateOfBirth(),
		Country:        randomFromSlice(countries),
		LoyaltyTier:    randomFromSlice(tiers),
		LoyaltyPoints:  float64(rand.Intn(200000)),
		TotalFlights:   int64(rand.Intn(150)),
		PreferredClass: randomFromSlice(classes),
		IsActive:       rand.Float32() > 0.2,
	}
}

func generateBooking(customerID string) models.Booking {
	return models.Booking{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		BookingDate: fmt.Sprintf("%04d-%02d-%02d", 2023+rand.Intn(3), rand.Intn(12)+1, rand.Intn(28)+1),
		Status:      randomFromSlice(statuses),
		TotalAmount: float64(rand.Intn(5000)) + rand.Float64(),
	}
}

func randomFromSlice(slice []string) string {
	return slice[rand.Intn(len(slice))]
}

func generateEmail(first, last string) string {
	domains := []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	return fmt.Sprintf("%s.%s@%s",
		strings.ToLower(first),
		strings.ToLower(last),
		randomFromSlice(domains))
}

func generateDateOfBirth() string {
	year := rand.Intn(60) + 1945
	month := rand.Intn(12) + 1
	day := rand.Intn(28) + 1 // Using 28 to avoid invalid dates
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Package stats computes the executive-dashboard aggregates. Booking
// aggregates run as DuckDB queries straight over the fact_booking parquet
// file; customer and segment summaries work on the in-memory slices the
// compiler already uses.
package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
)

// BookingStats summarizes the fact_booking table.
type BookingStats struct {
	TotalBookings    int64            `json:"total_bookings"`
	CompletedRevenue float64          `json:"completed_revenue"`
	AvgBookingValue  float64          `json:"avg_booking_value"`
	UniqueCustomers  int64            `json:"unique_customers"`
	StatusCounts     map[string]int64 `json:"status_counts"`
}

// Bookings aggregates the fact_booking parquet file at path. Revenue and
// average booking value count completed bookings only.
func Bookings(ctx context.Context, db *sql.DB, path string) (BookingStats, error) {
	var bs BookingStats

	row := db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			count(*),
			coalesce(sum(total_amount) FILTER (WHERE booking_status = 'Completed'), 0),
			coalesce(avg(total_amount) FILTER (WHERE booking_status = 'Completed'), 0),
			count(DISTINCT customer_id)
		FROM '%s'`, path))
	if err := row.Scan(&bs.TotalBookings, &bs.CompletedRevenue, &bs.AvgBookingValue, &bs.UniqueCustomers); err != nil {
		return BookingStats{}, fmt.Errorf("aggregating bookings: %w", err)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(
		"SELECT booking_status, count(*) FROM '%s' GROUP BY booking_status", path))
	if err != nil {
		return BookingStats{}, fmt.Errorf("counting booking statuses: %w", err)
	}
	defer rows.Close()

	bs.StatusCounts = make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return BookingStats{}, fmt.Errorf("scanning status count: %w", err)
		}
		bs.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return BookingStats{}, fmt.Errorf("row iteration error: %w", err)
	}

	return bs, nil
}

// CustomerStats summarizes the customer population.
type CustomerStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Countries  int            `json:"countries"`
	TierCounts map[string]int `json:"tier_counts"`
}

func Customers(customers []models.Customer) CustomerStats {
	cs := CustomerStats{
		Total:      len(customers),
		TierCounts: make(map[string]int),
	}
	countries := make(map[string]struct{})
	for _, c := range customers {
		if c.IsActive {
			cs.Active++
		}
		cs.TierCounts[c.LoyaltyTier]++
		countries[c.Country] = struct{}{}
	}
	cs.Countries = len(countries)
	return cs
}

// SegmentSummary is the metric row shown next to a compiled segment.
type SegmentSummary struct {
	Size        int     `json:"size"`
	AvgFlights  float64 `json:"avg_flights"`
	AvgPoints   float64 `json:"avg_points"`
	ActiveShare float64 `json:"active_share"`
}

func Summarize(seg segment.Segment) SegmentSummary {
	s := SegmentSummary{Size: len(seg.Customers)}
	if s.Size == 0 {
		return s
	}

	var flights int64
	var points float64
	var active int
	for _, c := range seg.Customers {
		flights += c.TotalFlights
		points += c.LoyaltyPoints
		if c.IsActive {
			active++
		}
	}
	s.AvgFlights = float64(flights) / float64(s.Size)
	s.AvgPoints = points / float64(s.Size)
	s.ActiveShare = float64(active) / float64(s.Size)
	return s
}

package segment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{
	"customer_id",
	"first_name",
	"last_name",
	"email",
	"date_of_birth",
	"country",
	"loyalty_tier",
	"loyalty_points",
	"total_flights",
	"preferred_class",
	"is_active",
}

// WriteCSV writes the segment's customers as CSV, one row per customer in
// segment order, preceded by a header row.
func WriteCSV(w io.Writer, seg Segment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range seg.Customers {
		row := []string{
			c.ID,
			c.FirstName,
			c.LastName,
			c.Email,
			c.DateOfBirth,
			c.Country,
			c.LoyaltyTier,
			strconv.FormatFloat(c.LoyaltyPoints, 'f', -1, 64),
			strconv.FormatInt(c.TotalFlights, 10),
			c.PreferredClass,
			strconv.FormatBool(c.IsActive),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing customer %s: %w", c.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

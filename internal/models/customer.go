package models

// Loyalty tiers as stored in dim_customer.
const (
	TierDiamond  = "Diamond"
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierNone     = "None"
)

// Customer represents one row of the dim_customer table.
type Customer struct {
	ID        string `json:"customer_id" parquet:"customer_id"`
	FirstName string `json:"first_name" parquet:"first_name"`
	LastName  string `json:"last_name" parquet:"last_name"`
	Email     string `json:"email" parquet:"email"`

	// DateOfBirth is kept as the warehouse stores it (YYYY-MM-DD); rows with
	// unparseable values are skipped by age-based filters.
	DateOfBirth string `json:"date_of_birth" parquet:"date_of_birth"`
	Country     string `json:"country" parquet:"country"`

	LoyaltyTier   string  `json:"loyalty_tier" parquet:"loyalty_tier"`
	LoyaltyPoints float64 `json:"loyalty_points" parquet:"loyalty_points"`

	TotalFlights   int64  `json:"total_flights" parquet:"total_flights"`
	PreferredClass string `json:"preferred_class" parquet:"preferred_class"`
	IsActive       bool   `json:"is_active" parquet:"is_active"`
}

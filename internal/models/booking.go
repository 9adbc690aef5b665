package models

// Booking statuses as stored in fact_booking.
const (
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
	BookingPending   = "Pending"
)

// Booking represents one row of the fact_booking table.
type Booking struct {
	ID          string  `json:"booking_id" parquet:"booking_id"`
	CustomerID  string  `json:"customer_id" parquet:"customer_id"`
	BookingDate string  `json:"booking_date" parquet:"booking_date"`
	Status      string  `json:"booking_status" parquet:"booking_status"`
	TotalAmount float64 `json:"total_amount" parquet:"total_amount"`
}

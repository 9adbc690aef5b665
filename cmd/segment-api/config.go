package main

// config is the configuration for the program.
type config struct {
	// Env is the environment we're executing in
	Env string `env:"ENV"`

	// DataBucket is the S3 bucket holding the warehouse parquet files
	DataBucket string `env:"DATA_BUCKET"`

	// CustomerKey is the object key of the dim_customer parquet file
	CustomerKey string `env:"CUSTOMER_KEY" envDefault:"dim_customer.parquet"`

	// BookingKey is the object key of the fact_booking parquet file; may be
	// empty, in which case spend-based segmentation is disabled
	BookingKey string `env:"BOOKING_KEY" envDefault:"fact_booking.parquet"`

	// ReferenceYear anchors year-only age computation for age-based filters
	ReferenceYear int `env:"REFERENCE_YEAR" envDefault:"2026"`

	// S3EndpointOverride is the endpoint to use for S3
	S3EndpointOverride string `env:"S3_ENDPOINT_OVERRIDE"`
}

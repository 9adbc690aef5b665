package main

// config is the configuration for the program.
type config struct {
	// Env is the environment we're executing in
	Env string `env:"ENV" envDefault:"local"`

	// Addr is the address the HTTP server listens on
	Addr string `env:"ADDR" envDefault:":8080"`

	// DataDir is the directory holding the warehouse parquet files
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// ReferenceYear anchors year-only age computation for age-based filters
	ReferenceYear int `env:"REFERENCE_YEAR" envDefault:"2026"`
}

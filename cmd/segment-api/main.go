package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"

	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

// run executes the main logic of the program. The warehouse is fetched and
// loaded once at cold start; each invocation compiles against the same
// immutable dataset.
func run(ctx context.Context, stdout io.Writer, getenv func(string) string) error {
	// Create structured logger using JSON format
	logger := slog.New(slog.NewJSONHandler(stdout, nil))

	// Load env config
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DataBucket == "" {
		return fmt.Errorf("DATA_BUCKET environment variable is required")
	}

	// Load aws config
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Create a new S3 client using default config
	s3Client := s3.NewFromConfig(awscfg, withEndpointOverride(cfg))

	tempDir, err := os.MkdirTemp("", "segment-api-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	keys := []string{cfg.CustomerKey}
	if cfg.BookingKey != "" {
		keys = append(keys, cfg.BookingKey)
	}
	if err := warehouse.FetchS3(ctx, s3Client, cfg.DataBucket, keys, tempDir); err != nil {
		return fmt.Errorf("failed to fetch warehouse files: %w", err)
	}

	db, err := warehouse.OpenDuckDB(ctx, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	loader := warehouse.NewLoader(logger, db)
	ds, err := loader.Load(ctx, tempDir)
	if err != nil {
		return fmt.Errorf("failed to load warehouse: %w", err)
	}

	compiler := segment.NewCompiler(cfg.ReferenceYear)

	lambda.Start(handler(logger, compiler, ds))
	return nil
}

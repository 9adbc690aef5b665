package warehouse

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/marcboeker/go-duckdb"
)

// OpenDuckDB opens an in-memory DuckDB used for schema validation and
// dashboard aggregates over the parquet files. When env is "local" the S3
// settings point at localstack so s3:// paths keep working in development.
func OpenDuckDB(ctx context.Context, env string) (*sql.DB, error) {
	connector, err := duckdb.NewConnector("", func(execer driver.ExecerContext) error {
		bootQueries := make([]string, 0)

		if env == "local" {
			bootQueries = append(bootQueries, []string{
				`SET s3_endpoint='s3.localhost.localstack.cloud:4566';`,
				`SET s3_access_key_id='test';`,
				`SET s3_secret_access_key='test';`,
				`SET s3_region='us-east-1';`,
			}...)
		}

		for _, query := range bootQueries {
			if _, err := execer.ExecContext(ctx, query, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(connector), nil
}

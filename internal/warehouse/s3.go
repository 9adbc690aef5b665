package warehouse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FetchS3 downloads the given warehouse objects into destDir, keeping the
// object's base name, so destDir can be handed straight to Loader.Load.
func FetchS3(ctx context.Context, client *s3.Client, bucket string, keys []string, destDir string) error {
	for _, key := range keys {
		localPath := filepath.Join(destDir, filepath.Base(key))

		file, err := os.Create(localPath)
		if err != nil {
			return fmt.Errorf("failed to create local file %s: %w", localPath, err)
		}

		result, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			file.Close()
			return fmt.Errorf("failed to get object from S3 %s/%s: %w", bucket, key, err)
		}

		_, err = io.Copy(file, result.Body)
		result.Body.Close()
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to copy S3 object to local file %s: %w", localPath, err)
		}
	}
	return nil
}

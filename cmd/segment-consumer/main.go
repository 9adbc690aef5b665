package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// member mirrors the message shape published by segment-exporter.
type member struct {
	SegmentID string `json:"segment_id"`
	Customer  struct {
		ID string `json:"customer_id"`
	} `json:"customer"`
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer, getenv func(string) string) error {
	logger := slog.New(slog.NewJSONHandler(stdout, nil))
	lambda.Start(handleSegmentMembers(logger))
	return nil
}

// handleSegmentMembers receives exported segment members from SQS and logs
// a per-segment count. Downstream delivery (campaign tooling) hangs off this
// handler.
func handleSegmentMembers(logger *slog.Logger) func(context.Context, events.SQSEvent) error {
	return func(ctx context.Context, event events.SQSEvent) error {
		counts := make(map[string]int)
		for _, record := range event.Records {
			var m member
			if err := json.Unmarshal([]byte(record.Body), &m); err != nil {
				logger.ErrorContext(ctx, "failed to unmarshal member",
					slog.String("message_id", record.MessageId),
					slog.Any("error", err))
				continue
			}
			counts[m.SegmentID]++
		}

		for segmentID, count := range counts {
			logger.InfoContext(ctx, "received segment members",
				slog.String("segment_id", segmentID),
				slog.Int("count", count))
		}
		return nil
	}
}

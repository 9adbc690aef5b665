package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

const (
	// Maximum number of SQS messages to send in a batch (hard limit from AWS)
	sqsBatchSize = 10
)

// request is the request for the handler function.
type request struct {
	Prompt string `json:"prompt"`
}

// response is the response for the handler function.
type response struct {
	SegmentID  string   `json:"segment_id"`
	Conditions []string `json:"conditions"`
	Published  int      `json:"published"`
}

// member is one segment member as published to the queue.
type member struct {
	SegmentID string          `json:"segment_id"`
	Customer  models.Customer `json:"customer"`
}

// publishRequest is the request for the publishBatch function.
type publishRequest struct {
	batchIndex int
	members    []member
	queueURL   string
}

// publishBatch sends a batch of segment members to SQS
func publishBatch(ctx context.Context, sqsClient *sqs.Client, logger *slog.Logger, req publishRequest) func() error {
	return func() error {
		var entries []types.SendMessageBatchRequestEntry
		for j, m := range req.members {
			jsonData, err := json.Marshal(m)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to marshal member to JSON",
					"segment_id", m.SegmentID,
					"batch_index", req.batchIndex,
					"member_index", j,
					"error", err,
				)
				return fmt.Errorf("failed to marshal member to JSON: %w", err)
			}

			entries = append(entries, types.SendMessageBatchRequestEntry{
				Id:          aws.String(strconv.Itoa(req.batchIndex*sqsBatchSize + j)), // Unique ID within the batch
				MessageBody: aws.String(string(jsonData)),
			})
		}

		result, err := sqsClient.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
			QueueUrl: aws.String(req.queueURL),
			Entries:  entries,
		})
		if err != nil {
			logger.ErrorContext(ctx, "Failed to send message batch to SQS",
				"batch_index", req.batchIndex,
				"batch_size", len(req.members),
				"error", err,
				"queue_url", req.queueURL,
			)
			return fmt.Errorf("failed to send message batch to SQS: %w", err)
		}

		if len(result.Failed) > 0 {
			logger.ErrorContext(ctx, "Some messages failed to send",
				"batch_index", req.batchIndex,
				"failed_count", len(result.Failed),
				"failed_messages", result.Failed,
			)
			return fmt.Errorf("failed to send %d messages in batch", len(result.Failed))
		}

		return nil
	}
}

// handler compiles a segment for the prompt and fans its members out to SQS.
func handler(logger *slog.Logger, sqsClient *sqs.Client, compiler *segment.Compiler, ds *warehouse.Dataset, cfg config) func(context.Context, request) (response, error) {
	return func(ctx context.Context, req request) (response, error) {
		seg := compiler.Compile(req.Prompt, ds.Customers, ds.Bookings)

		logger.InfoContext(ctx, "compiled segment for export",
			slog.String("segment_id", seg.ID),
			slog.Int("count", len(seg.Customers)),
			slog.Any("conditions", seg.Conditions))

		members := make([]member, len(seg.Customers))
		for i, c := range seg.Customers {
			members[i] = member{SegmentID: seg.ID, Customer: c}
		}

		// Prepare all batches first
		var batches [][]member
		for i := 0; i < len(members); i += sqsBatchSize {
			end := i + sqsBatchSize
			if end > len(members) {
				end = len(members)
			}
			batches = append(batches, members[i:end])
		}

		// Publish batches concurrently
		g, gctx := errgroup.WithContext(ctx)
		for i, batch := range batches {
			g.Go(publishBatch(gctx, sqsClient, logger, publishRequest{
				batchIndex: i,
				members:    batch,
				queueURL:   cfg.QueueURL,
			}))
		}

		if err := g.Wait(); err != nil {
			logger.ErrorContext(ctx, "Error publishing segment",
				slog.String("segment_id", seg.ID),
				slog.Any("error", err))
			return response{}, err
		}

		logger.InfoContext(ctx, "published segment",
			slog.String("segment_id", seg.ID),
			slog.Int("published", len(members)))

		return response{
			SegmentID:  seg.ID,
			Conditions: seg.Conditions,
			Published:  len(members),
		}, nil
	}
}

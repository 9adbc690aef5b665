package main

import (
	"context"
	"log/slog"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/stats"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

// request is the request for the handler function.
type request struct {
	Prompt string `json:"prompt"`
}

// response is the response for the handler function.
type response struct {
	SegmentID  string               `json:"segment_id"`
	Conditions []string             `json:"conditions"`
	Count      int                  `json:"count"`
	Summary    stats.SegmentSummary `json:"summary"`
	Customers  []models.Customer    `json:"customers"`
}

// handler compiles a segment from the prompt against the loaded warehouse
// dataset.
func handler(logger *slog.Logger, compiler *segment.Compiler, ds *warehouse.Dataset) func(context.Context, request) (response, error) {
	return func(ctx context.Context, req request) (response, error) {
		seg := compiler.Compile(req.Prompt, ds.Customers, ds.Bookings)

		logger.InfoContext(ctx, "compiled segment",
			slog.String("segment_id", seg.ID),
			slog.Int("count", len(seg.Customers)),
			slog.Any("conditions", seg.Conditions))

		return response{
			SegmentID:  seg.ID,
			Conditions: seg.Conditions,
			Count:      len(seg.Customers),
			Summary:    stats.Summarize(seg),
			Customers:  seg.Customers,
		}, nil
	}
}

package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/warehouse"
)

func TestHandler(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ds := &warehouse.Dataset{
		Customers: []models.Customer{
			{ID: "C1", LoyaltyTier: models.TierGold, TotalFlights: 40, IsActive: true},
			{ID: "C2", LoyaltyTier: models.TierSilver, TotalFlights: 10, IsActive: true},
		},
	}

	h := handler(logger, segment.NewCompiler(2026), ds)

	resp, err := h(context.Background(), request{Prompt: "gold customers"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"Loyalty tier: Gold"}, resp.Conditions)
	assert.NotEmpty(t, resp.SegmentID)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "C1", resp.Customers[0].ID)
	assert.Equal(t, 1, resp.Summary.Size)
}

func TestHandlerSentinel(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ds := &warehouse.Dataset{
		Customers: []models.Customer{{ID: "C1"}, {ID: "C2"}},
	}

	h := handler(logger, segment.NewCompiler(2026), ds)

	resp, err := h(context.Background(), request{Prompt: "show me everyone"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{segment.NoFilterCondition}, resp.Conditions)
}

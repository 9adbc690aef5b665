package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airlinedw/segmenter/internal/models"
	"github.com/airlinedw/segmenter/internal/segment"
	"github.com/airlinedw/segmenter/internal/stats"
)

func TestCustomers(t *testing.T) {
	cs := stats.Customers([]models.Customer{
		{ID: "C1", LoyaltyTier: models.TierGold, Country: "USA", IsActive: true},
		{ID: "C2", LoyaltyTier: models.TierGold, Country: "USA", IsActive: false},
		{ID: "C3", LoyaltyTier: models.TierSilver, Country: "UK", IsActive: true},
	})

	assert.Equal(t, 3, cs.Total)
	assert.Equal(t, 2, cs.Active)
	assert.Equal(t, 2, cs.Countries)
	assert.Equal(t, map[string]int{models.TierGold: 2, models.TierSilver: 1}, cs.TierCounts)
}

func TestCustomersEmpty(t *testing.T) {
	cs := stats.Customers(nil)

	assert.Equal(t, 0, cs.Total)
	assert.Empty(t, cs.TierCounts)
}

func TestSummarize(t *testing.T) {
	seg := segment.Segment{
		Customers: []models.Customer{
			{ID: "C1", TotalFlights: 10, LoyaltyPoints: 100, IsActive: true},
			{ID: "C2", TotalFlights: 30, LoyaltyPoints: 300, IsActive: false},
		},
	}

	s := stats.Summarize(seg)

	assert.Equal(t, 2, s.Size)
	assert.InDelta(t, 20, s.AvgFlights, 1e-9)
	assert.InDelta(t, 200, s.AvgPoints, 1e-9)
	assert.InDelta(t, 0.5, s.ActiveShare, 1e-9)
}

func TestSummarizeEmptySegment(t *testing.T) {
	s := stats.Summarize(segment.Segment{})

	assert.Equal(t, 0, s.Size)
	assert.Zero(t, s.AvgFlights)
	assert.Zero(t, s.ActiveShare)
}

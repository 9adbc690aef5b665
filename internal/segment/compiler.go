// Package segment compiles free-text segmentation prompts into filtered
// customer sets.
//
// A prompt like "show me gold customers from usa who fly frequently" is
// matched against a fixed, ordered list of category matchers. Each matcher
// that fires narrows the working population and records a human-readable
// condition; later matchers operate on the already-narrowed population, so
// aggregate thresholds (75th-percentile flight counts) are computed over the
// filtered set, not the full one.
package segment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/airlinedw/segmenter/internal/models"
)

// DefaultReferenceYear anchors year-only age computation when no explicit
// year is configured.
const DefaultReferenceYear = 2026

// NoFilterCondition is the single condition reported when no matcher fired.
const NoFilterCondition = "All customers (no filters applied)"

// Segment pairs a filtered customer subset with the ordered conditions that
// produced it. Segments are transient; they live for one request/response
// cycle and are never persisted.
type Segment struct {
	ID         string            `json:"segment_id"`
	Customers  []models.Customer `json:"customers"`
	Conditions []string          `json:"conditions"`
}

// Compiler turns prompts into segments. It holds no per-request state and is
// safe for concurrent use.
type Compiler struct {
	referenceYear int
}

// NewCompiler returns a compiler anchored at the given reference year for
// age computation. Zero or negative means DefaultReferenceYear.
func NewCompiler(referenceYear int) *Compiler {
	if referenceYear <= 0 {
		referenceYear = DefaultReferenceYear
	}
	return &Compiler{referenceYear: referenceYear}
}

// Compile applies each category matcher in order, threading the progressively
// narrowed population through. The result is always a subset of customers,
// in input order; bookings may be nil, in which case spend-based matching is
// skipped. Inputs are never mutated.
func (c *Compiler) Compile(prompt string, customers []models.Customer, bookings []models.Booking) Segment {
	text := strings.ToLower(prompt)

	working := customers
	var conditions []string
	for _, match := range c.matchers() {
		narrowed, condition, fired := match(text, working, bookings)
		if !fired {
			continue
		}
		working = narrowed
		conditions = append(conditions, condition)
	}

	if len(conditions) == 0 {
		conditions = []string{NoFilterCondition}
	}

	return Segment{
		ID:         uuid.NewString(),
		Customers:  working,
		Conditions: conditions,
	}
}

// matchers returns the category matchers in their fixed evaluation order.
func (c *Compiler) matchers() []matcherFunc {
	return []matcherFunc{
		matchLoyaltyTier,
		matchCountry,
		matchFrequency,
		matchActivity,
		matchCabinClass,
		c.matchAge,
		matchSpend,
	}
}

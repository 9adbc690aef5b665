package segment

import (
	"fmt"
	"strings"
	"time"

	"github.com/airlinedw/segmenter/internal/models"
)

// matcherFunc tests the normalized prompt against the current working
// population and, on a match, returns the narrowed population and the
// condition to record. Matchers never mutate their inputs; narrowing
// always allocates a fresh slice.
type matcherFunc func(text string, customers []models.Customer, bookings []models.Booking) (narrowed []models.Customer, condition string, fired bool)

// loyaltyTiers is scanned in priority order; the first keyword found in the
// prompt wins, even when several tier words appear.
var loyaltyTiers = []string{"diamond", "platinum", "gold", "silver", "none"}

func matchLoyaltyTier(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	for _, tier := range loyaltyTiers {
		if !strings.Contains(text, tier) {
			continue
		}
		narrowed := filter(customers, func(c models.Customer) bool {
			return strings.EqualFold(c.LoyaltyTier, tier)
		})
		return narrowed, "Loyalty tier: " + capitalize(tier), true
	}
	return customers, "", false
}

// countryTriggers gate the country matcher. Matching is plain substring
// containment over the whole prompt, so "inactive" satisfies "in"; the
// matcher still only narrows when a country from the working population
// actually appears in the prompt.
var countryTriggers = []string{"from", "in", "country"}

func matchCountry(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	if !containsAny(text, countryTriggers...) {
		return customers, "", false
	}
	for _, country := range distinctCountries(customers) {
		if country == "" || !strings.Contains(text, strings.ToLower(country)) {
			continue
		}
		match := country
		narrowed := filter(customers, func(c models.Customer) bool {
			return strings.EqualFold(c.Country, match)
		})
		return narrowed, "Country: " + country, true
	}
	return customers, "", false
}

// distinctCountries enumerates the countries present in the working
// population in first-appearance order. The candidate list is derived from
// live data per request, never cached, because the population itself is the
// enumeration source.
func distinctCountries(customers []models.Customer) []string {
	seen := make(map[string]struct{}, len(customers))
	var out []string
	for _, c := range customers {
		key := strings.ToLower(c.Country)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.Country)
	}
	return out
}

func matchFrequency(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	if !containsAny(text, "frequent", "high", "many") {
		return customers, "", false
	}

	// The threshold is recomputed over the already-narrowed population, so a
	// preceding country filter yields a country-local percentile.
	flights := make([]float64, len(customers))
	for i, c := range customers {
		flights[i] = float64(c.TotalFlights)
	}
	threshold, ok := quantile(flights, 0.75)
	if !ok {
		return customers, "", false
	}

	narrowed := filter(customers, func(c models.Customer) bool {
		return float64(c.TotalFlights) >= threshold
	})
	return narrowed, fmt.Sprintf("Frequent flyers (≥%d flights)", int(threshold)), true
}

func matchActivity(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	switch {
	case containsAny(text, "inactive", "churned"):
		narrowed := filter(customers, func(c models.Customer) bool { return !c.IsActive })
		return narrowed, "Status: Inactive", true
	case strings.Contains(text, "active"):
		narrowed := filter(customers, func(c models.Customer) bool { return c.IsActive })
		return narrowed, "Status: Active", true
	}
	return customers, "", false
}

// cabinClasses is scanned in priority order. The customer-side comparison is
// substring containment, so a "Premium Economy" preference satisfies the
// "economy" keyword.
var cabinClasses = []string{"economy", "business", "first", "premium"}

func matchCabinClass(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	for _, cabin := range cabinClasses {
		if !strings.Contains(text, cabin) {
			continue
		}
		match := cabin
		narrowed := filter(customers, func(c models.Customer) bool {
			return strings.Contains(strings.ToLower(c.PreferredClass), match)
		})
		return narrowed, "Preferred class: " + capitalize(cabin), true
	}
	return customers, "", false
}

func (c *Compiler) matchAge(text string, customers []models.Customer, _ []models.Booking) ([]models.Customer, string, bool) {
	switch {
	case containsAny(text, "young", "millennial"):
		narrowed := filter(customers, func(cu models.Customer) bool {
			age, ok := c.age(cu.DateOfBirth)
			return ok && age >= 25 && age <= 40
		})
		return narrowed, "Age: 25-40", true
	case strings.Contains(text, "senior"):
		narrowed := filter(customers, func(cu models.Customer) bool {
			age, ok := c.age(cu.DateOfBirth)
			return ok && age >= 65
		})
		return narrowed, "Age: 65+", true
	}
	return customers, "", false
}

// age derives a year-only age from the stored date of birth. Rows with an
// unparseable date are excluded from age filters instead of failing the
// whole compile.
func (c *Compiler) age(dateOfBirth string) (int, bool) {
	t, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, false
	}
	return c.referenceYear - t.Year(), true
}

func matchSpend(text string, customers []models.Customer, bookings []models.Booking) ([]models.Customer, string, bool) {
	if len(bookings) == 0 || !strings.Contains(text, "spend") {
		return customers, "", false
	}

	// Per-customer spend is summed over completed bookings only, and the
	// percentile is taken over the full completed-booking population rather
	// than the narrowed customer set. Filters compose by intersection.
	totals := make(map[string]float64)
	for _, b := range bookings {
		if b.Status != models.BookingCompleted {
			continue
		}
		totals[b.CustomerID] += b.TotalAmount
	}

	sums := make([]float64, 0, len(totals))
	for _, sum := range totals {
		sums = append(sums, sum)
	}
	threshold, ok := quantile(sums, 0.75)
	if !ok {
		return customers, "", false
	}

	narrowed := filter(customers, func(c models.Customer) bool {
		sum, spent := totals[c.ID]
		return spent && sum >= threshold
	})
	return narrowed, "High spenders (top 25%)", true
}

func filter(customers []models.Customer, keep func(models.Customer) bool) []models.Customer {
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

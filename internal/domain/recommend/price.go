package recommend

import (
	"math"
	"strconv"
	"strings"
)

// Default assumptions used when normalizing free-text money strings.
const (
	defaultBudgetFallback  = 5000 // substituted when a budget has no parseable number
	defaultAssumedGuests   = 100  // headcount multiplier for "/person" prices
	defaultAssumedHours    = 8    // duration multiplier for "/hour" prices
)

// ParseBudget normalizes a free-text budget string ("$15,000") to a
// number. Unparseable input falls back to a fixed default so budget
// comparisons always have something to work with.
func ParseBudget(s string) float64 {
	return parseBudget(s, defaultBudgetFallback)
}

// ParsePrice normalizes a supplier price string to a single comparable
// value. Ranges resolve to their mean, "/person" prices assume a
// 100-guest baseline and "/hour" prices an 8-hour event. Unlike
// ParseBudget there is no fallback: input without any digits yields NaN,
// which every scoring comparison treats as a non-match.
func ParsePrice(s string) float64 {
	return parsePrice(s, defaultBudgetFallback, defaultAssumedGuests, defaultAssumedHours)
}

func parseBudget(s string, fallback float64) float64 {
	n := extractNumber(s)
	if math.IsNaN(n) {
		return fallback
	}
	return n
}

func parsePrice(s string, fallback, guests, hours float64) float64 {
	// Ranges like "$1,000-$5,000" resolve to the mean of both halves.
	// Both halves go through the same budget-style extraction; a unit
	// suffix on either half is ignored rather than applied one-sided.
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		return (parseBudget(parts[0], fallback) + parseBudget(parts[1], fallback)) / 2
	}

	if strings.Contains(s, "/person") {
		return extractNumber(s) * guests
	}

	if strings.Contains(s, "/hour") {
		return extractNumber(s) * hours
	}

	return extractNumber(s)
}

// extractNumber strips everything but digits and dots, then parses the
// longest leading numeric prefix. Returns NaN when no number remains.
func extractNumber(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return parseLeadingFloat(b.String())
}

// parseLeadingFloat reads the longest "digits[.digits]" prefix, so
// stripped artifacts like "12.34.56" still parse as 12.34.
func parseLeadingFloat(s string) float64 {
	end := 0
	dotted := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !dotted {
			dotted = true
			end++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

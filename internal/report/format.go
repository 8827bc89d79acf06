package report

import "fmt"

// Display formatting is kept apart from the aggregated numbers so callers
// and tests work with raw values.

// FormatAmount renders a won amount in 10k-won units ("만원").
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%.0f만원", float64(amount)/10000)
}

// FormatRate renders a conversion rate with one decimal place.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

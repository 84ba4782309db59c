package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

// VariancePercent returns the percentage deviation of actual from target,
// rounded to one decimal place. A zero target yields exactly 0 instead of a
// division by zero.
func VariancePercent(actual, target float64) float64 {
	if target == 0 {
		return 0
	}
	return math.Round((actual-target)/target*1000) / 10
}

// Thousands formats a currency amount as whole thousands, e.g. "$1250K".
func Thousands(amount float64) string {
	return fmt.Sprintf("$%.0fK", math.Round(amount/1000))
}

// RevenueAlignment returns group actual revenue as a percentage of group
// target revenue, rounded to one decimal place. Zero group target yields 0.
func RevenueAlignment(report models.NewsletterReport) float64 {
	var actual, target float64
	for _, rec := range report.Records {
		actual += rec.KPIs.Revenue
		target += rec.KPIs.RevenueTarget
	}
	if target == 0 {
		return 0
	}
	return math.Round(actual/target*1000) / 10
}

// metric renders a KPI value in minimal decimal form (12.5 -> "12.5",
// 96 -> "96"), matching how the figures appear in the table.
func metric(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

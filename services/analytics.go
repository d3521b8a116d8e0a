package services

import (
	"math"
	"sort"
	"strings"

	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/utils"
)

// FallbackCategory is the bucket an expense with an empty or whitespace-only
// category collapses into. Creation rejects empty categories, so this only
// matters for records that predate server-side validation, but the same label
// is applied on every aggregation path so no two consumers can disagree on
// the grouping.
const FallbackCategory = "other"

// Aggregate reduces a set of expense records into the dashboard summary:
// total spend plus a per-category subtotal map. It is a pure function of its
// input slice; the order of the records does not matter and the same records
// always produce the same summary.
//
// A non-finite amount cannot enter through the create endpoint, but a bad
// record must not poison the whole summary, so NaN and ±Inf count as zero.
func Aggregate(records []models.Expense) models.Summary {
	summary := models.Summary{CategoryWise: make(map[string]float64, 8)}

	for _, rec := range records {
		amount := rec.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			utils.SafeWarn("Expense %s has a non-finite amount, counted as 0", rec.ID)
			amount = 0
		}

		summary.TotalSpend += amount
		summary.CategoryWise[CategoryKey(rec.Category)] += amount
	}

	return summary
}

// CategoryKey returns the grouping key for a stored category label: the label
// verbatim (case preserved, no normalization), or FallbackCategory when the
// label is empty after trimming.
func CategoryKey(category string) string {
	if strings.TrimSpace(category) == "" {
		return FallbackCategory
	}
	return category
}

// TopCategories ranks the summary buckets by amount descending. Equal totals
// are ordered lexicographically by label so the ranking is deterministic.
func TopCategories(summary models.Summary) []models.CategoryTotal {
	ranked := make([]models.CategoryTotal, 0, len(summary.CategoryWise))
	for category, total := range summary.CategoryWise {
		ranked = append(ranked, models.CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Category < ranked[j].Category
	})

	return ranked
}

package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theankitdev/ExpenseTracker/models"
)

func expense(category string, amount float64) models.Expense {
	return models.Expense{
		ID:       category + "-id",
		UserID:   "user-1",
		Date:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Category: category,
		Amount:   amount,
	}
}

func TestAggregate(t *testing.T) {
	records := []models.Expense{
		expense("food", 100),
		expense("food", 50),
		expense("bills", 200),
	}

	summary := Aggregate(records)

	assert.Equal(t, 350.0, summary.TotalSpend)
	assert.Equal(t, map[string]float64{"food": 150, "bills": 200}, summary.CategoryWise)
}

func TestAggregate_EmptySet(t *testing.T) {
	summary := Aggregate(nil)

	assert.Equal(t, 0.0, summary.TotalSpend)
	require.NotNil(t, summary.CategoryWise)
	assert.Empty(t, summary.CategoryWise)
}

func TestAggregate_ZeroAndNegativeAmounts(t *testing.T) {
	// The engine is permissive: zero and negative amounts flow through.
	// The create endpoint is the strict gate, not the aggregation.
	records := []models.Expense{
		expense("food", 0),
		expense("refund", -25),
		expense("bills", 100),
	}

	summary := Aggregate(records)

	assert.Equal(t, 75.0, summary.TotalSpend)
	assert.Equal(t, 0.0, summary.CategoryWise["food"])
	assert.Equal(t, -25.0, summary.CategoryWise["refund"])
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []models.Expense{
		expense("food", 12.34),
		expense("travel", 56.78),
		expense("food", 9.99),
	}

	first := Aggregate(records)
	second := Aggregate(records)

	assert.Equal(t, first, second)
}

func TestAggregate_TotalEqualsSumOfBuckets(t *testing.T) {
	records := []models.Expense{
		expense("a", 0.1), expense("b", 0.2), expense("a", 0.3),
		expense("c", 123.45), expense("b", 67.89), expense("d", 0.01),
	}

	summary := Aggregate(records)

	var bucketSum float64
	for _, v := range summary.CategoryWise {
		bucketSum += v
	}
	assert.InDelta(t, summary.TotalSpend, bucketSum, 1e-9)
}

func TestAggregate_GroupingIsPartition(t *testing.T) {
	records := []models.Expense{
		expense("food", 1), expense("Food", 2), expense("", 3),
		expense("bills", 4), expense("food", 5),
	}

	summary := Aggregate(records)

	// Every record lands in exactly one bucket.
	counts := map[string]int{}
	for _, rec := range records {
		counts[CategoryKey(rec.Category)]++
	}

	total := 0
	for key, n := range counts {
		assert.Contains(t, summary.CategoryWise, key)
		total += n
	}
	assert.Equal(t, len(records), total)
}

func TestAggregate_CategoryKeysAreCaseSensitive(t *testing.T) {
	summary := Aggregate([]models.Expense{
		expense("Food", 10),
		expense("food", 20),
	})

	assert.Equal(t, 10.0, summary.CategoryWise["Food"])
	assert.Equal(t, 20.0, summary.CategoryWise["food"])
}

func TestAggregate_EmptyCategoryFallsBackToOther(t *testing.T) {
	summary := Aggregate([]models.Expense{
		expense("", 10),
		expense("   ", 5),
		expense("other", 1),
	})

	assert.Equal(t, 16.0, summary.CategoryWise[FallbackCategory])
	assert.Len(t, summary.CategoryWise, 1)
}

func TestAggregate_NonFiniteAmountCountsAsZero(t *testing.T) {
	summary := Aggregate([]models.Expense{
		expense("food", math.NaN()),
		expense("bills", math.Inf(1)),
		expense("travel", 42),
	})

	assert.Equal(t, 42.0, summary.TotalSpend)
	assert.Equal(t, 0.0, summary.CategoryWise["food"])
	assert.Equal(t, 0.0, summary.CategoryWise["bills"])
}

func TestTopCategories_RanksByAmountDescending(t *testing.T) {
	ranked := TopCategories(models.Summary{CategoryWise: map[string]float64{
		"food":   150,
		"bills":  200,
		"travel": 50,
	}})

	require.Len(t, ranked, 3)
	assert.Equal(t, "bills", ranked[0].Category)
	assert.Equal(t, "food", ranked[1].Category)
	assert.Equal(t, "travel", ranked[2].Category)
}

func TestTopCategories_TieBreaksLexicographically(t *testing.T) {
	ranked := TopCategories(models.Summary{CategoryWise: map[string]float64{
		"zeta":  100,
		"alpha": 100,
		"mid":   100,
	}})

	require.Len(t, ranked, 3)
	assert.Equal(t, "alpha", ranked[0].Category)
	assert.Equal(t, "mid", ranked[1].Category)
	assert.Equal(t, "zeta", ranked[2].Category)
}

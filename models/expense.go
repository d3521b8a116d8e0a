package models

import "time"

// ============================================================================
// EXPENSE RECORD
// ============================================================================

// Expense is a single spending record. Records are immutable once created:
// there is no update or delete path, only insert and read.
type Expense struct {
	ID       string    `json:"id" bson:"_id"`
	UserID   string    `json:"-" bson:"user_id"`
	Date     time.Time `json:"date" bson:"date"`
	Category string    `json:"category" bson:"category"`
	Amount   float64   `json:"amount" bson:"amount"`
	Note     string    `json:"note,omitempty" bson:"note,omitempty"`
}

// ============================================================================
// REQUESTS
// ============================================================================

type CreateExpenseRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     string  `json:"note"`
	Date     string  `json:"date" binding:"required"`
}

// ExpenseFilter narrows a store scan to one owner, with optional exact-match
// category and an optional inclusive [Start, End] date range. If only one
// date bound is set the range is not applied at all.
type ExpenseFilter struct {
	UserID   string
	Category string
	Start    *time.Time
	End      *time.Time
}

// ============================================================================
// ANALYTICS
// ============================================================================

// Summary is the aggregate the dashboard renders: total spend plus a
// per-category subtotal map.
type Summary struct {
	TotalSpend   float64            `json:"totalSpend"`
	CategoryWise map[string]float64 `json:"categoryWise"`
}

// CategoryTotal is one ranked entry of a summary, used for "top category".
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

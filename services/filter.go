package services

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/theankitdev/ExpenseTracker/models"
)

// BuildQuery translates a filter into the store's query document. The owner
// restriction is always present; category is an exact, case-sensitive match;
// the date range applies only when both bounds are set. A single bound
// silently disables date filtering, which is the behavior clients depend on.
func BuildQuery(f models.ExpenseFilter) bson.M {
	query := bson.M{"user_id": f.UserID}

	if f.Category != "" {
		query["category"] = f.Category
	}

	if f.Start != nil && f.End != nil {
		// End names a calendar day, so the inclusive upper bound is
		// anything strictly before the following midnight.
		query["date"] = bson.M{"$gte": *f.Start, "$lt": nextDay(*f.End)}
	}

	return query
}

// Matches is the in-memory twin of BuildQuery. Tests and the client fallback
// path rely on the two staying equivalent for any filter.
func Matches(f models.ExpenseFilter, rec models.Expense) bool {
	if rec.UserID != f.UserID {
		return false
	}

	if f.Category != "" && rec.Category != f.Category {
		return false
	}

	if f.Start != nil && f.End != nil {
		if rec.Date.Before(*f.Start) || !rec.Date.Before(nextDay(*f.End)) {
			return false
		}
	}

	return true
}

// SortByDateDesc orders records most recent first, the order the listing
// endpoint promises. Aggregation does not care about order.
func SortByDateDesc(records []models.Expense) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

func nextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

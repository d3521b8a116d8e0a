package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/utils"
)

const (
	storeTimeout = 5 * time.Second
	retryDelay   = 100 * time.Millisecond
)

// Date formats accepted on creation and in filter query params. The first is
// what an HTML date input submits.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// ExpenseService wraps the record store with per-call timeouts and a single
// retry on transient read failures. Every call reads fresh from the store;
// there is no cache and no shared mutable state between requests.
type ExpenseService struct {
	store ExpenseStore
}

func NewExpenseService(store ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

// NewExpense validates a creation request and builds the record to insert.
// The client also validates, but the client is advisory only: the server is
// the gate that keeps malformed amounts out of the aggregates.
func NewExpense(userID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, &FieldError{Field: "category", Reason: "must not be empty"}
	}

	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, &FieldError{Field: "amount", Reason: "must be a finite number"}
	}
	if req.Amount <= 0 {
		return nil, &FieldError{Field: "amount", Reason: "must be greater than zero"}
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, &FieldError{Field: "date", Reason: "must be YYYY-MM-DD or RFC 3339"}
	}

	return &models.Expense{
		ID:       uuid.New().String(),
		UserID:   userID,
		Date:     date,
		Category: category,
		Amount:   req.Amount,
		Note:     strings.TrimSpace(req.Note),
	}, nil
}

// ParseDate parses a client-supplied calendar date. The date is when the
// expense occurred, not when it was recorded, so it is never checked against
// the current time.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Create inserts a validated record. The id is assigned before the insert,
// so a caller-level retry would risk reporting a duplicate-key failure for a
// write that actually landed; creation is therefore attempted exactly once.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) error {
	callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.store.Insert(callCtx, expense); err != nil {
		utils.SafeError("Failed to insert expense for user %s: %v", expense.UserID, err)
		return err
	}

	utils.LogExpenseAction("CREATE", expense.ID, expense.UserID)
	return nil
}

// List returns the owner's records matching the filter, most recent first.
func (s *ExpenseService) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	return s.findWithRetry(ctx, filter)
}

// Aggregate reads the owner's matching records and reduces them into the
// dashboard summary. Reads are a fresh snapshot every time; records are
// immutable, so no coordination with concurrent writers is needed.
func (s *ExpenseService) Aggregate(ctx context.Context, filter models.ExpenseFilter) (models.Summary, error) {
	records, err := s.findWithRetry(ctx, filter)
	if err != nil {
		return models.Summary{}, err
	}
	return Aggregate(records), nil
}

// findWithRetry performs a store read with a bounded timeout and one retry.
// Reads are side-effect free, so the retry is always safe.
func (s *ExpenseService) findWithRetry(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	callCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	records, err := s.store.Find(callCtx, filter)
	cancel()
	if err == nil {
		return records, nil
	}

	if ctx.Err() != nil {
		return nil, err
	}

	utils.SafeWarn("Expense query failed, retrying once: %v", err)
	time.Sleep(retryDelay)

	callCtx, cancel = context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	records, retryErr := s.store.Find(callCtx, filter)
	if retryErr != nil {
		return nil, errors.Join(err, retryErr)
	}
	return records, nil
}

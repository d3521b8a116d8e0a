package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/services"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

type fakeStore struct {
	records   []models.Expense
	failFinds int
	insertErr error
}

func (f *fakeStore) Insert(_ context.Context, expense *models.Expense) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, *expense)
	return nil
}

func (f *fakeStore) Find(_ context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	if f.failFinds > 0 {
		f.failFinds--
		return nil, fmt.Errorf("%w: connection refused", services.ErrStoreUnavailable)
	}

	matched := []models.Expense{}
	for _, rec := range f.records {
		if services.Matches(filter, rec) {
			matched = append(matched, rec)
		}
	}
	services.SortByDateDesc(matched)
	return matched, nil
}

func newTestRouter(store services.ExpenseStore, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewExpenseHandler(services.NewExpenseService(store), nil)

	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", testUserID)
			c.Next()
		})
	}
	r.POST("/expenses", h.CreateExpense)
	r.GET("/expenses", h.ListExpenses)
	r.GET("/expenses/analytics", h.GetAnalytics)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonUnmarshal(w *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

func seedExpense(store *fakeStore, id, category string, amount float64, date time.Time) {
	store.records = append(store.records, models.Expense{
		ID:       id,
		UserID:   testUserID,
		Date:     date,
		Category: category,
		Amount:   amount,
	})
}

func TestCreateExpense(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, true)

	w := doJSON(r, http.MethodPost, "/expenses",
		`{"category":"food","amount":42.5,"note":"lunch","date":"2025-06-01"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Expense
	require.NoError(t, jsonUnmarshal(w, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "food", created.Category)
	assert.Equal(t, 42.5, created.Amount)

	require.Len(t, store.records, 1)
	assert.Equal(t, testUserID, store.records[0].UserID)
}

func TestCreateExpense_RejectsBadAmount(t *testing.T) {
	r := newTestRouter(&fakeStore{}, true)

	for _, body := range []string{
		`{"category":"food","amount":0,"date":"2025-06-01"}`,
		`{"category":"food","amount":-10,"date":"2025-06-01"}`,
		`{"category":"food","amount":"ten","date":"2025-06-01"}`,
	} {
		w := doJSON(r, http.MethodPost, "/expenses", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestCreateExpense_RejectsBlankCategory(t *testing.T) {
	r := newTestRouter(&fakeStore{}, true)

	w := doJSON(r, http.MethodPost, "/expenses",
		`{"category":"   ","amount":10,"date":"2025-06-01"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"category"`)
}

func TestCreateExpense_RejectsBadDate(t *testing.T) {
	r := newTestRouter(&fakeStore{}, true)

	w := doJSON(r, http.MethodPost, "/expenses",
		`{"category":"food","amount":10,"date":"June 1st"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"date"`)
}

func TestCreateExpense_StoreUnavailable(t *testing.T) {
	store := &fakeStore{insertErr: services.ErrStoreUnavailable}
	r := newTestRouter(store, true)

	w := doJSON(r, http.MethodPost, "/expenses",
		`{"category":"food","amount":10,"date":"2025-06-01"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateExpense_Unauthorized(t *testing.T) {
	r := newTestRouter(&fakeStore{}, false)

	w := doJSON(r, http.MethodPost, "/expenses",
		`{"category":"food","amount":10,"date":"2025-06-01"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListExpenses_FiltersByCategoryAndOrdersByDate(t *testing.T) {
	store := &fakeStore{}
	seedExpense(store, "old-food", "food", 100, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(store, "new-food", "food", 50, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(store, "bills", "bills", 200, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	r := newTestRouter(store, true)
	w := doJSON(r, http.MethodGet, "/expenses?category=food", "")

	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Expense
	require.NoError(t, jsonUnmarshal(w, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "new-food", listed[0].ID)
	assert.Equal(t, "old-food", listed[1].ID)
}

func TestListExpenses_RejectsMalformedDate(t *testing.T) {
	r := newTestRouter(&fakeStore{}, true)

	w := doJSON(r, http.MethodGet, "/expenses?startDate=notadate&endDate=2025-01-31", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalytics(t *testing.T) {
	store := &fakeStore{}
	seedExpense(store, "1", "food", 100, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(store, "2", "food", 50, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	seedExpense(store, "3", "bills", 200, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))

	r := newTestRouter(store, true)
	w := doJSON(r, http.MethodGet, "/expenses/analytics", "")

	require.Equal(t, http.StatusOK, w.Code)

	var summary models.Summary
	require.NoError(t, jsonUnmarshal(w, &summary))
	assert.Equal(t, 350.0, summary.TotalSpend)
	assert.Equal(t, map[string]float64{"food": 150, "bills": 200}, summary.CategoryWise)
}

func TestGetAnalytics_EmptyHistory(t *testing.T) {
	r := newTestRouter(&fakeStore{}, true)

	w := doJSON(r, http.MethodGet, "/expenses/analytics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalSpend":0,"categoryWise":{}}`, w.Body.String())
}

func TestGetAnalytics_StoreUnavailableAfterRetry(t *testing.T) {
	store := &fakeStore{failFinds: 2} // first call plus the single retry
	r := newTestRouter(store, true)

	w := doJSON(r, http.MethodGet, "/expenses/analytics", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theankitdev/ExpenseTracker/middleware"
	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/services"
)

type ExpenseHandler struct {
	Service *services.ExpenseService
	WS      *WSHandler
}

func NewExpenseHandler(service *services.ExpenseService, ws *WSHandler) *ExpenseHandler {
	return &ExpenseHandler{Service: service, WS: ws}
}

// CreateExpense records a new expense for the authenticated user. Validation
// happens server-side regardless of what the client checked.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := services.NewExpense(userID, req)
	if err != nil {
		if fe, ok := services.AsFieldError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Reason, "field": fe.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.Create(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to save expense"})
		return
	}

	if h.WS != nil {
		h.WS.NotifyExpenseCreated(expense)
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns the user's expenses matching the optional filters,
// most recent first.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter, err := h.parseFilter(c, userID)
	if err != nil {
		return // response already written
	}

	expenses, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetAnalytics returns the aggregated summary for the dashboard. It honors
// the same filters as the listing so the two calls can be issued in parallel
// over the same view of the data.
func (h *ExpenseHandler) GetAnalytics(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter, err := h.parseFilter(c, userID)
	if err != nil {
		return
	}

	summary, err := h.Service.Aggregate(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseFilter reads the optional category/startDate/endDate query params.
// A lone date bound leaves date filtering off, matching what dashboard
// clients already rely on. A malformed date is rejected outright.
func (h *ExpenseHandler) parseFilter(c *gin.Context, userID string) (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{
		UserID:   userID,
		Category: c.Query("category"),
	}

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		return filter, nil
	}

	start, err := services.ParseDate(startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be YYYY-MM-DD", "field": "startDate"})
		return filter, errors.New("bad startDate")
	}

	end, err := services.ParseDate(endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be YYYY-MM-DD", "field": "endDate"})
		return filter, errors.New("bad endDate")
	}

	filter.Start = &start
	filter.End = &end
	return filter, nil
}

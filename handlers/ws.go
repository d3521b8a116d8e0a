package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/utils"
)

// WSHandler pushes dashboard refresh events over WebSocket so an open
// dashboard sees a new expense without polling. Delivery is best effort.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 64 * 1024

	// Keep-alive so cloud proxies do not drop idle dashboards.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		if id, ok := userID.(string); ok {
			utils.LogWebSocket("DISCONNECT", id)
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the connection. Browsers cannot set headers on a
// WebSocket handshake, so the access token arrives as a query parameter.
func (h *WSHandler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	claims, err := utils.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	utils.LogWebSocket("CONNECT", claims.UserID)

	h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"user_id": claims.UserID,
	})
}

type expenseCreatedEvent struct {
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

// NotifyExpenseCreated broadcasts a refresh hint to the owner's open
// dashboard sessions. Failures never affect the HTTP response.
func (h *WSHandler) NotifyExpenseCreated(expense *models.Expense) {
	event := expenseCreatedEvent{
		Type:     "expense_created",
		ID:       expense.ID,
		Category: expense.Category,
		Amount:   expense.Amount,
		Date:     expense.Date.Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.M.BroadcastFilter(payload, func(s *melody.Session) bool {
		userID, _ := s.Get("user_id")
		return userID == expense.UserID
	})
}

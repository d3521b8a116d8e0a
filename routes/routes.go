package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/theankitdev/ExpenseTracker/handlers"
	"github.com/theankitdev/ExpenseTracker/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.GET("/auth/verify", authHandler.VerifyEmail)
}

// SetupExpenseRoutes sets up protected expense recording and analytics routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, service *services.ExpenseService, ws *handlers.WSHandler) {
	h := handlers.NewExpenseHandler(service, ws)

	rg.POST("/expenses", h.CreateExpense)
	rg.GET("/expenses", h.ListExpenses)
	rg.GET("/expenses/analytics", h.GetAnalytics)
}

// SetupUserRoutes sets up protected user profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

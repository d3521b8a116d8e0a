package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/theankitdev/ExpenseTracker/models"
	"github.com/theankitdev/ExpenseTracker/utils"
)

const (
	refreshTokenTTL      = 7 * 24 * time.Hour
	verificationTokenTTL = 48 * time.Hour
)

type AuthHandler struct {
	DB *sql.DB
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", req.Email).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var userID string
	err = h.DB.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, req.Email, passwordHash, req.Name).Scan(&userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Verification is best effort, the account works before the click.
	verifyToken := uuid.New().String()
	_, err = h.DB.Exec(`
		INSERT INTO email_verifications (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, userID, verifyToken, time.Now().Add(verificationTokenTTL))
	if err == nil {
		go func() {
			if err := utils.SendVerificationEmail(req.Email, req.Name, verifyToken); err != nil {
				utils.SafeWarn("Verification email to %s failed: %v", req.Email, err)
			}
		}()
	}

	accessToken, refreshToken, err := h.issueTokens(userID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	utils.LogAuthAction("SIGNUP", req.Email, true)

	c.JSON(http.StatusCreated, models.AuthResponse{
		User: models.User{
			ID:        userID,
			Email:     req.Email,
			Name:      req.Name,
			CreatedAt: time.Now(),
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	var passwordHash string
	var totpSecret sql.NullString

	err := h.DB.QueryRow(`
		SELECT id, email, password_hash, name, totp_secret, totp_enabled, email_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Email, &passwordHash, &user.Name, &totpSecret, &user.TOTPEnabled, &user.EmailVerified, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		utils.LogAuthAction("LOGIN", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !utils.CheckPassword(req.Password, passwordHash) {
		utils.LogAuthAction("LOGIN", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "2FA code required", "requires_2fa": true})
			return
		}

		if totpSecret.Valid {
			secret, err := utils.DecryptString(totpSecret.String)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify 2FA"})
				return
			}
			valid, err := utils.VerifyTOTP(secret, req.TOTPCode)
			if err != nil || !valid {
				utils.LogAuthAction("LOGIN_2FA", req.Email, false)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid 2FA code"})
				return
			}
		}
	}

	accessToken, refreshToken, err := h.issueTokens(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	utils.LogAuthAction("LOGIN", req.Email, true)

	c.JSON(http.StatusOK, models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// VerifyEmail handles the link from the verification email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing verification token"})
		return
	}

	var userID string
	var expiresAt time.Time
	err := h.DB.QueryRow(`
		SELECT user_id, expires_at FROM email_verifications WHERE token = $1
	`, token).Scan(&userID, &expiresAt)

	if err == sql.ErrNoRows || (err == nil && time.Now().After(expiresAt)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if _, err := h.DB.Exec(`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	h.DB.Exec(`DELETE FROM email_verifications WHERE user_id = $1`, userID)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (h *AuthHandler) issueTokens(userID, email string) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(userID, email)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}

	_, err = h.DB.Exec(`
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES ($1, $2, $3)
	`, userID, refreshToken, time.Now().Add(refreshTokenTTL))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

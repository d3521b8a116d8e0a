// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal and financial data in production
// ============================================================================
// Logging helpers that automatically redact emails, amounts and identifiers
// when the server runs in production mode, so expense data never leaks into
// log aggregation.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction switches on masking of sensitive data.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters output (DEBUG, INFO, WARN, ERROR).
	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ============================================================================
// MASKING
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Amounts with an explicit currency marker.
	amountWithCurrencyRegex = regexp.MustCompile(`\b\d+([.,]\d{1,2})?\s*(₹|INR|EUR|GBP|USD|£|\$|€)\b`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString redacts sensitive data from a string in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = amountWithCurrencyRegex.ReplaceAllString(result, "***")
	result = uuidRegex.ReplaceAllStringFunc(result, shortenID)
	return result
}

// MaskAmount hides a spend amount in production.
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// MaskID keeps only the first 8 characters of an identifier.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	return shortenID(id)
}

// MaskEmail hides an email address in production.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return "***"
}

// ============================================================================
// LEVELED LOGGING
// ============================================================================

// SafeLog logs a message with sensitive data masked.
func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

// LogExpenseAction logs an expense operation without exposing the amount.
func LogExpenseAction(action, expenseID, userID string) {
	log.Printf("[Expense] %s - Expense: %s User: %s", action, MaskID(expenseID), MaskID(userID))
}

// LogAuthAction logs an authentication attempt.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogAPIRequest logs one handled HTTP request.
func LogAPIRequest(method, path string, statusCode int, duration string) {
	if IsProduction {
		path = uuidRegex.ReplaceAllStringFunc(path, shortenID)
	}
	log.Printf("[API] %s %s - Status: %d Duration: %s", method, path, statusCode, duration)
}

// LogWebSocket logs a dashboard socket event.
func LogWebSocket(action, userID string) {
	log.Printf("[WS] %s - User: %s", action, MaskID(userID))
}

// GetEnvMode returns the current environment mode.
func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup logs startup information.
func LogStartup(appName, version, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: sensitive data will be masked in logs")
	}
}

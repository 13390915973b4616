package httpapi

import (
	"errors"
	"net/http"

	"voice-mentor/internal/assessment"
	"voice-mentor/internal/audit"
	"voice-mentor/internal/auth"
	"voice-mentor/internal/calls"
	"voice-mentor/internal/reporting"
	"voice-mentor/internal/todos"
	"voice-mentor/internal/users"
	"voice-mentor/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth       *auth.Manager
	Users      *users.Service
	Todos      *todos.Service
	Calls      *calls.Service
	Assessment *assessment.Service
	Reporting  *reporting.Service
	Audit      *audit.Service

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool
}

// currentUser reads the identity placed by auth.RequireAccessToken.
// It aborts with 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	id, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return "", false
	}
	return id, true
}

// internalError logs err and answers 500 with a generic message.
func internalError(c *gin.Context, msg string, err error) {
	logger.FromGin(c).Error(msg, "err", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func notConfigured(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": what + " not configured"})
}

// Healthz is the liveness probe.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

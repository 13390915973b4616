package httpapi

import (
	"errors"
	"net/http"
	"time"

	"voice-mentor/internal/audit"
	"voice-mentor/internal/auth"
	"voice-mentor/internal/users"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (h Handlers) Signup(c *gin.Context) {
	if h.Users == nil || h.Auth == nil {
		notConfigured(c, "auth")
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Users.Signup(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	case errors.Is(err, users.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid email and a password of at least 6 characters are required"})
		return
	case err != nil:
		internalError(c, "Signup failed", err)
		return
	}

	h.Audit.Record(c.Request.Context(), u.ID, audit.EventTypeSignup, c.ClientIP(), "", "")
	h.startSession(c, http.StatusCreated, u)
}

func (h Handlers) Login(c *gin.Context) {
	if h.Users == nil || h.Auth == nil {
		notConfigured(c, "auth")
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		internalError(c, "Login failed", err)
		return
	}

	h.Audit.Record(c.Request.Context(), u.ID, audit.EventTypeLogin, c.ClientIP(), "", "")
	h.startSession(c, http.StatusOK, u)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new token pair.
func (h Handlers) Refresh(c *gin.Context) {
	if h.Users == nil || h.Auth == nil {
		notConfigured(c, "auth")
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
		return
	}
	claims, err := h.Auth.Verify(req.RefreshToken, auth.TokenTypeRefresh, time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	u, err := h.Users.Get(c.Request.Context(), claims.UserID)
	if errors.Is(err, users.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if err != nil {
		internalError(c, "Refresh failed", err)
		return
	}
	h.startSession(c, http.StatusOK, u)
}

func (h Handlers) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Users == nil {
		notConfigured(c, "users")
		return
	}
	u, err := h.Users.Get(c.Request.Context(), userID)
	if errors.Is(err, users.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		internalError(c, "User lookup failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h Handlers) startSession(c *gin.Context, status int, u users.User) {
	pair, err := h.Auth.IssuePair(time.Now(), u.ID, u.Email)
	if err != nil {
		internalError(c, "token issuance failed", err)
		return
	}
	auth.SetSessionCookie(c, pair.AccessToken, h.Auth.AccessTTL(), h.CookieSecure)
	c.JSON(status, sessionResponse{
		ID:           u.ID,
		Email:        u.Email,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

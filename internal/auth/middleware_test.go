package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-mentor/internal/config"
)

func newProtectedRouter(t *testing.T) (*gin.Engine, *Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m, err := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Hour, RefreshTokenTTL: 2 * time.Hour})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAccessToken(m), func(c *gin.Context) {
		id, err := UserID(c.Request.Context())
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "email": Email(c.Request.Context())})
	})
	return r, m
}

func TestRequireAccessToken_Cookie(t *testing.T) {
	r, m := newProtectedRouter(t)
	p, err := m.IssuePair(time.Now(), "u1", "a@b.co")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: p.AccessToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","email":"a@b.co"}`, w.Body.String())
}

func TestRequireAccessToken_Bearer(t *testing.T) {
	r, m := newProtectedRouter(t)
	p, err := m.IssuePair(time.Now(), "u2", "c@d.co")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+p.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u2")
}

func TestRequireAccessToken_Rejects(t *testing.T) {
	r, m := newProtectedRouter(t)
	p, err := m.IssuePair(time.Now(), "u3", "e@f.co")
	require.NoError(t, err)

	cases := map[string]func(*http.Request){
		"missing":     func(*http.Request) {},
		"garbage":     func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") },
		"refresh":     func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+p.RefreshToken) },
		"wrong-scheme": func(req *http.Request) { req.Header.Set("Authorization", "Basic "+p.AccessToken) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			mutate(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetSessionCookie(c, "tok", 30*24*time.Hour, true)
	got := w.Header().Get("Set-Cookie")
	assert.Contains(t, got, "token=tok")
	assert.Contains(t, got, "Max-Age=2592000")
	assert.Contains(t, got, "HttpOnly")
	assert.Contains(t, got, "SameSite=Lax")
	assert.Contains(t, got, "Secure")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	ClearSessionCookie(c, false)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

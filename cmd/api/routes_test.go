package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes_AuthBoundaries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	registerRoutes(r, routeDeps{authMW: deny})

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"POST /api/signup",
		"POST /api/login",
		"GET /api/twilio/voice",
		"POST /api/twilio/respond",
		"POST /api/calls/status",
		"POST /api/webhooks/recording",
		"POST /api/start-call",
		"GET /api/calls/logs",
		"PATCH /api/todos/:id",
		"GET /api/chat",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}

	for _, path := range []string{"/api/todos", "/api/calls/logs", "/api/me", "/api/chat"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSConfig(t *testing.T) {
	c := corsConfig([]string{"*"})
	assert.Empty(t, c.AllowOrigins)
	assert.True(t, c.AllowOriginFunc("https://app.example.com"))
	assert.True(t, c.AllowCredentials)

	c = corsConfig([]string{"https://app.example.com"})
	assert.Nil(t, c.AllowOriginFunc)
	assert.Equal(t, []string{"https://app.example.com"}, c.AllowOrigins)
	assert.True(t, strings.Contains(strings.Join(c.AllowHeaders, ","), "Authorization"))
}

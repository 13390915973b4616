package main

import (
	"voice-mentor/internal/calls"
	"voice-mentor/internal/httpapi"
	"voice-mentor/internal/mentor"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	api   httpapi.Handlers
	voice mentor.Handlers

	authMW gin.HandlerFunc
	// webhookMW guards provider callbacks (signature validation when enabled).
	webhookMW []gin.HandlerFunc
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d routeDeps) {
	// public
	r.GET("/healthz", httpapi.Healthz)

	public := r.Group("/api")
	{
		public.POST("/signup", d.api.Signup)
		public.POST("/login", d.api.Login)
		public.POST("/refresh", d.api.Refresh)
		public.POST("/logout", d.api.Logout)
	}

	// Provider webhooks. Always answered; never behind user auth.
	hooks := r.Group("", d.webhookMW...)
	{
		hooks.GET(mentor.VoicePath, d.voice.Voice)
		hooks.POST(mentor.VoicePath, d.voice.Voice)
		hooks.GET(mentor.RespondPath, d.voice.Respond)
		hooks.POST(mentor.RespondPath, d.voice.Respond)

		hooks.POST(calls.StatusPath, d.api.CallStatus)
		hooks.POST("/api/webhooks/status", d.api.CallStatus)
		hooks.POST("/api/webhooks/recording", d.api.Recording)
	}

	// protected API group
	api := r.Group("/api", d.authMW)
	{
		api.GET("/me", d.api.Me)

		api.GET("/todos", d.api.ListTodos)
		api.POST("/todos", d.api.CreateTodo)
		api.PATCH("/todos/:id", d.api.UpdateTodo)
		api.DELETE("/todos/:id", d.api.DeleteTodo)

		api.POST("/start-call", d.api.StartCall)
		api.GET("/calls/logs", d.api.CallLogs)
		api.GET("/calls/summary", d.api.CallSummary)

		api.POST("/generate-question", d.api.GenerateQuestion)
		api.POST("/generate-roadmaps", d.api.GenerateRoadmaps)
		api.POST("/chat", d.api.Chat)
		api.GET("/chat", d.api.ChatHistory)
	}
}

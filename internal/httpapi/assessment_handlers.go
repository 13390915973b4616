package httpapi

import (
	"errors"
	"io"
	"net/http"

	"voice-mentor/internal/ai"
	"voice-mentor/internal/assessment"

	"github.com/gin-gonic/gin"
)

type historyRequest struct {
	History []ai.QA `json:"history"`
}

// GenerateQuestion returns the next assessment question for the answers so far.
func (h Handlers) GenerateQuestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Assessment == nil {
		notConfigured(c, "assessment")
		return
	}
	var req historyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	q, err := h.Assessment.NextQuestion(c.Request.Context(), userID, req.History)
	if err != nil {
		internalError(c, "Failed to generate question", err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GenerateRoadmaps returns career roadmaps for a finished assessment.
func (h Handlers) GenerateRoadmaps(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Assessment == nil {
		notConfigured(c, "assessment")
		return
	}
	var req historyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	maps, err := h.Assessment.Roadmaps(c.Request.Context(), userID, req.History)
	if err != nil {
		internalError(c, "Failed to generate roadmaps", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roadmaps": maps})
}

func (h Handlers) Chat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Assessment == nil {
		notConfigured(c, "assessment")
		return
	}
	var req assessment.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	reply, err := h.Assessment.Chat(c.Request.Context(), userID, req)
	if errors.Is(err, assessment.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if err != nil {
		internalError(c, "Failed to get AI response", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (h Handlers) ChatHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Assessment == nil {
		notConfigured(c, "assessment")
		return
	}
	msgs, err := h.Assessment.Messages(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "Failed to fetch chat history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// bindOptionalJSON decodes the body into dst; an empty body leaves dst zero.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	return true
}

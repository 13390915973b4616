package httpapi

import (
	"errors"
	"net/http"

	"voice-mentor/internal/todos"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListTodos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Todos == nil {
		notConfigured(c, "todos")
		return
	}
	items, err := h.Todos.List(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "Failed to fetch todos", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handlers) CreateTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Todos == nil {
		notConfigured(c, "todos")
		return
	}
	var req todos.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// Source is server-assigned.
	req.Source = ""

	t, err := h.Todos.Create(c.Request.Context(), userID, req)
	if errors.Is(err, todos.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}
	if err != nil {
		internalError(c, "Failed to create todo", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h Handlers) UpdateTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Todos == nil {
		notConfigured(c, "todos")
		return
	}
	var p todos.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	t, err := h.Todos.Update(c.Request.Context(), userID, c.Param("id"), p)
	switch {
	case errors.Is(err, todos.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	case errors.Is(err, todos.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid status or priority"})
		return
	case err != nil:
		internalError(c, "Failed to update todo", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h Handlers) DeleteTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Todos == nil {
		notConfigured(c, "todos")
		return
	}
	err := h.Todos.Delete(c.Request.Context(), userID, c.Param("id"))
	if isAny(err, todos.ErrNotFound, todos.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to delete todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

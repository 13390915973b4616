package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"voice-mentor/internal/audit"
	"voice-mentor/internal/calls"
	"voice-mentor/internal/reporting"
	"voice-mentor/internal/telephony"
	"voice-mentor/pkg/logger"

	"github.com/gin-gonic/gin"
)

type startCallRequest struct {
	ToPhoneNumber string `json:"toPhoneNumber"`
	PhoneNumber   string `json:"phoneNumber"`
	CareerPath    string `json:"careerPath"`
}

// StartCall places a mentoring call to the caller-supplied number.
func (h Handlers) StartCall(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Calls == nil {
		notConfigured(c, "calls")
		return
	}
	var req startCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	to := strings.TrimSpace(req.ToPhoneNumber)
	if to == "" {
		to = strings.TrimSpace(req.PhoneNumber)
	}
	if to == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	ctx := c.Request.Context()
	res, err := h.Calls.StartCall(ctx, calls.StartCallRequest{UserID: userID, PhoneNumber: to, CareerPath: req.CareerPath})
	switch {
	case errors.Is(err, calls.ErrConfiguration):
		logger.FromGin(c).Error("call placement misconfigured", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Server configuration error",
			"details": "BASE_URL environment variable is not set",
		})
		return
	case errors.Is(err, calls.ErrTooManyCalls):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "A call is already in progress"})
		return
	case errors.Is(err, calls.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	case errors.Is(err, calls.ErrCallInitiationFailed):
		logger.FromGin(c).Error("call initiation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to initiate call",
			"details": err.Error(),
		})
		return
	case err != nil:
		internalError(c, "Failed to initiate call", err)
		return
	}

	if res.Pending != nil {
		h.Audit.Record(ctx, userID, audit.EventTypeVerificationRequested, c.ClientIP(), res.Pending.Reference, "")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Phone number needs verification",
			"details":         "A verification call has been placed to this number. Please answer it and enter the validation code, then try again.",
			"verificationSid": res.Pending.Reference,
			"validationCode":  res.Pending.Code,
		})
		return
	}

	h.Audit.Record(ctx, userID, audit.EventTypeCallPlaced, c.ClientIP(), res.Log.CallSID, res.Log.CareerPath)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"callSid": res.Log.CallSID,
		"message": "Call initiated successfully",
	})
}

// CallLogs lists the caller's calls, newest first.
func (h Handlers) CallLogs(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Calls == nil {
		notConfigured(c, "calls")
		return
	}
	logs, err := h.Calls.ListLogs(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "Failed to fetch call logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CallSummary reports call and todo figures, optionally bounded by RFC 3339
// `from` and `to` query parameters.
func (h Handlers) CallSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.Reporting == nil {
		notConfigured(c, "reporting")
		return
	}
	var rng reporting.TimeRange
	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"from", &rng.From}, {"to", &rng.To}} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": p.key + " must be an RFC 3339 timestamp"})
			return
		}
		*p.dst = t
	}

	out, err := h.Reporting.Summary(c.Request.Context(), reporting.SummaryRequest{UserID: userID, Range: rng})
	if errors.Is(err, reporting.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return
	}
	if err != nil {
		internalError(c, "Failed to build summary", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CallStatus receives the provider's call status callback.
func (h Handlers) CallStatus(c *gin.Context) {
	if h.Calls == nil {
		notConfigured(c, "calls")
		return
	}
	p, err := telephony.ReadParams(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable callback"})
		return
	}
	cb := telephony.ParseStatusCallback(p)
	if cb.CallSID != "" {
		logger.TagCallSID(c, cb.CallSID)
	}
	logger.FromGin(c).Info("call status received", "status", cb.CallStatus, "duration", cb.DurationSeconds)

	if err := h.Calls.HandleStatus(c.Request.Context(), cb); err != nil {
		internalError(c, "Failed to update call status", err)
		return
	}
	c.Status(http.StatusOK)
}

// Recording receives the provider's recording-ready callback.
func (h Handlers) Recording(c *gin.Context) {
	if h.Calls == nil {
		notConfigured(c, "calls")
		return
	}
	p, err := telephony.ReadParams(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable callback"})
		return
	}
	cb := telephony.ParseRecordingCallback(p)
	if cb.CallSID != "" {
		logger.TagCallSID(c, cb.CallSID)
	}
	logger.FromGin(c).Info("recording available", "recording_url", cb.RecordingURL)

	if err := h.Calls.HandleRecording(c.Request.Context(), cb); err != nil {
		internalError(c, "Failed to store recording", err)
		return
	}
	c.Status(http.StatusOK)
}

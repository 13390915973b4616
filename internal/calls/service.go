package calls

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"voice-mentor/internal/mentor"
	"voice-mentor/internal/telephony"
	"voice-mentor/pkg/logger"
)

var (
	ErrInvalidRequest       = errors.New("calls: invalid request")
	ErrConfiguration        = errors.New("calls: callback base url is not configured")
	ErrCallInitiationFailed = errors.New("calls: call initiation failed")
	ErrTooManyCalls         = errors.New("calls: too many active calls")
)

// StatusPath receives the provider's call status callbacks.
const StatusPath = "/api/calls/status"

// VerificationFriendlyName labels numbers submitted for caller verification.
const VerificationFriendlyName = "Career Mentor User"

type Config struct {
	// FromNumber is the account's outbound caller id.
	FromNumber string
	// BaseURL is the public origin the provider calls back into. Empty disables call placement.
	BaseURL string
}

type Service struct {
	repo    Repository
	gateway telephony.Gateway
	limiter Limiter
	cfg     Config
	clock   func() time.Time
}

// NewService wires call placement. limiter may be nil to disable the per-user cap.
func NewService(repo Repository, gateway telephony.Gateway, limiter Limiter, cfg Config) *Service {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Service{repo: repo, gateway: gateway, limiter: limiter, cfg: cfg, clock: time.Now}
}

type StartCallRequest struct {
	UserID      string
	PhoneNumber string
	CareerPath  string
}

// PendingVerification means the destination must confirm ownership before it can
// be dialed. The provider calls the number, and whoever answers keys in Code.
type PendingVerification struct {
	Reference string `json:"verificationSid"`
	Code      string `json:"validationCode"`
}

// StartCallResult carries either the placed call's log or a pending verification.
type StartCallResult struct {
	Log     CallLog
	Pending *PendingVerification
}

// StartCall places a mentoring call to req.PhoneNumber.
//
// Unverified destinations get a verification request instead of a call; no log is
// written in that case. A placed call is logged as initiated and holds one of the
// user's concurrency slots until its status callback arrives.
func (s *Service) StartCall(ctx context.Context, req StartCallRequest) (StartCallResult, error) {
	log := logger.From(ctx)

	to := strings.TrimSpace(req.PhoneNumber)
	if req.UserID == "" || to == "" {
		return StartCallResult{}, ErrInvalidRequest
	}
	careerPath := strings.TrimSpace(req.CareerPath)
	if careerPath == "" {
		careerPath = DefaultCareerPath
	}
	if s.cfg.BaseURL == "" {
		return StartCallResult{}, ErrConfiguration
	}

	verified, err := s.gateway.IsVerifiedCaller(ctx, to)
	if err != nil {
		return StartCallResult{}, fmt.Errorf("%w: %v", ErrCallInitiationFailed, err)
	}
	if !verified {
		v, err := s.gateway.RequestVerification(ctx, to, VerificationFriendlyName)
		if err != nil {
			return StartCallResult{}, fmt.Errorf("%w: %v", ErrCallInitiationFailed, err)
		}
		log.Info("destination needs verification", "user_id", req.UserID, "verification_ref", v.Reference)
		return StartCallResult{Pending: &PendingVerification{Reference: v.Reference, Code: v.Code}}, nil
	}

	if s.limiter != nil {
		ok, err := s.limiter.Acquire(ctx, req.UserID)
		switch {
		case err != nil:
			log.Warn("call concurrency cap unavailable, placing call uncapped", "err", err)
		case !ok:
			return StartCallResult{}, ErrTooManyCalls
		}
	}

	res, err := s.gateway.PlaceCall(ctx, telephony.PlaceCallRequest{
		To:                to,
		From:              s.cfg.FromNumber,
		AnswerURL:         mentor.VoiceURL(s.cfg.BaseURL, careerPath, req.UserID),
		StatusCallbackURL: s.cfg.BaseURL + StatusPath,
	})
	if err != nil {
		s.release(ctx, req.UserID)
		return StartCallResult{}, fmt.Errorf("%w: %v", ErrCallInitiationFailed, err)
	}

	now := s.clock().UTC()
	l := CallLog{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		CallSID:    res.ProviderCallID,
		To:         to,
		From:       s.cfg.FromNumber,
		CareerPath: careerPath,
		Status:     CallStatusInitiated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, l); err != nil {
		// The call is already ringing, so report it as placed. No status callback
		// will match a missing log; free the slot now.
		log.Error("call placed but log not saved", "user_id", req.UserID, "call_sid", l.CallSID, "err", err)
		s.release(ctx, req.UserID)
		return StartCallResult{Log: l}, nil
	}
	log.Info("call placed", "user_id", req.UserID, "call_sid", l.CallSID, "gateway", s.gateway.Name())
	return StartCallResult{Log: l}, nil
}

// HandleStatus applies a provider status callback. Unknown calls are ignored.
func (s *Service) HandleStatus(ctx context.Context, cb telephony.StatusCallback) error {
	if cb.CallSID == "" {
		return nil
	}
	status := StatusFromProvider(cb.CallStatus)
	prev, err := s.repo.UpdateStatus(ctx, cb.CallSID, status, cb.DurationSeconds, s.clock().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.From(ctx).Info("status for unknown call ignored", "call_sid", cb.CallSID)
			return nil
		}
		return err
	}
	// Only the callback that ends the initiated state frees the slot.
	if prev.Status == CallStatusInitiated {
		s.release(ctx, prev.UserID)
	}
	return nil
}

// HandleRecording attaches a recording to its call log. Unknown calls are ignored.
func (s *Service) HandleRecording(ctx context.Context, cb telephony.RecordingCallback) error {
	if cb.CallSID == "" || cb.RecordingURL == "" {
		return nil
	}
	err := s.repo.SetRecording(ctx, cb.CallSID, cb.RecordingURL, s.clock().UTC())
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) ListLogs(ctx context.Context, userID string) ([]CallLog, error) {
	if userID == "" {
		return nil, ErrInvalidRequest
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) release(ctx context.Context, userID string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Release(ctx, userID); err != nil {
		logger.From(ctx).Warn("call concurrency slot release failed", "user_id", userID, "err", err)
	}
}

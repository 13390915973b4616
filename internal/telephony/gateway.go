package telephony

import (
	"context"
	"errors"
)

// Gateway is the provider-agnostic outbound interface used by the calls module.
//
// Rules:
// - No provider SDK calls outside telephony adapters.
// - Implementations return provider errors wrapped; callers decide how to surface them.
type Gateway interface {
	Name() string

	// IsVerifiedCaller reports whether number may be dialed from this account.
	IsVerifiedCaller(ctx context.Context, number string) (bool, error)

	// RequestVerification starts out-of-band verification of number. The provider
	// calls the number and the person answering keys in Verification.Code.
	RequestVerification(ctx context.Context, number, friendlyName string) (Verification, error)

	PlaceCall(ctx context.Context, req PlaceCallRequest) (PlaceCallResult, error)
}

// Verification is a started caller-id verification.
type Verification struct {
	// Reference is the provider's handle for the verification call.
	Reference string `json:"reference"`
	// Code must be entered on the keypad during the verification call.
	Code string `json:"code"`
}

// PlaceCallRequest describes one outbound call.
type PlaceCallRequest struct {
	// To and From are E.164 where possible.
	To   string `json:"to"`
	From string `json:"from"`

	// AnswerURL is fetched by the provider when the callee picks up.
	AnswerURL string `json:"answer_url"`

	// StatusCallbackURL receives the terminal call status. Optional.
	StatusCallbackURL string `json:"status_callback_url,omitempty"`
}

type PlaceCallResult struct {
	// ProviderCallID is the provider's unique identifier for this call.
	ProviderCallID string `json:"provider_call_id"`
}

var ErrInvalidRequest = errors.New("telephony: invalid request")

func (r PlaceCallRequest) Validate() error {
	if r.To == "" || r.From == "" || r.AnswerURL == "" {
		return ErrInvalidRequest
	}
	return nil
}

package telephony

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// twilioAPI is the subset of the Twilio REST surface we call.
// *api.ApiService satisfies it; tests substitute a fake.
type twilioAPI interface {
	ListOutgoingCallerId(params *api.ListOutgoingCallerIdParams) ([]api.ApiV2010OutgoingCallerId, error)
	CreateValidationRequest(params *api.CreateValidationRequestParams) (*api.ApiV2010ValidationRequest, error)
	CreateCall(params *api.CreateCallParams) (*api.ApiV2010Call, error)
}

// TwilioGateway places calls and manages caller-id verification through the Twilio REST API.
type TwilioGateway struct {
	api twilioAPI
}

func NewTwilioGateway(accountSID, authToken string) (*TwilioGateway, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("telephony: twilio credentials are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{api: client.Api}, nil
}

func (g *TwilioGateway) Name() string { return "twilio" }

func (g *TwilioGateway) IsVerifiedCaller(ctx context.Context, number string) (bool, error) {
	params := &api.ListOutgoingCallerIdParams{}
	params.SetPhoneNumber(number)

	ids, err := g.api.ListOutgoingCallerId(params)
	if err != nil {
		return false, fmt.Errorf("telephony: list outgoing caller ids: %w", err)
	}
	for _, id := range ids {
		if id.PhoneNumber != nil && *id.PhoneNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (g *TwilioGateway) RequestVerification(ctx context.Context, number, friendlyName string) (Verification, error) {
	params := &api.CreateValidationRequestParams{}
	params.SetPhoneNumber(number)
	if friendlyName != "" {
		params.SetFriendlyName(friendlyName)
	}

	res, err := g.api.CreateValidationRequest(params)
	if err != nil {
		return Verification{}, fmt.Errorf("telephony: create validation request: %w", err)
	}
	if res == nil || res.ValidationCode == nil || *res.ValidationCode == "" {
		return Verification{}, errors.New("telephony: twilio returned no validation code")
	}
	v := Verification{Code: *res.ValidationCode}
	if res.CallSid != nil {
		v.Reference = *res.CallSid
	}
	return v, nil
}

func (g *TwilioGateway) PlaceCall(ctx context.Context, req PlaceCallRequest) (PlaceCallResult, error) {
	if err := req.Validate(); err != nil {
		return PlaceCallResult{}, err
	}

	params := &api.CreateCallParams{}
	params.SetTo(req.To)
	params.SetFrom(req.From)
	params.SetUrl(req.AnswerURL)
	if req.StatusCallbackURL != "" {
		params.SetStatusCallback(req.StatusCallbackURL)
		params.SetStatusCallbackMethod("POST")
	}

	call, err := g.api.CreateCall(params)
	if err != nil {
		return PlaceCallResult{}, err
	}
	if call == nil || call.Sid == nil || *call.Sid == "" {
		return PlaceCallResult{}, errors.New("telephony: twilio returned no call sid")
	}
	return PlaceCallResult{ProviderCallID: *call.Sid}, nil
}

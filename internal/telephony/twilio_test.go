package telephony

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeTwilioAPI struct {
	callerIDs []string
	createErr error

	validationCode string
	validations    []*api.CreateValidationRequestParams
	calls       []*api.CreateCallParams
}

func strPtr(s string) *string { return &s }

func (f *fakeTwilioAPI) ListOutgoingCallerId(params *api.ListOutgoingCallerIdParams) ([]api.ApiV2010OutgoingCallerId, error) {
	out := make([]api.ApiV2010OutgoingCallerId, 0, len(f.callerIDs))
	for _, n := range f.callerIDs {
		out = append(out, api.ApiV2010OutgoingCallerId{PhoneNumber: strPtr(n)})
	}
	return out, nil
}

func (f *fakeTwilioAPI) CreateValidationRequest(params *api.CreateValidationRequestParams) (*api.ApiV2010ValidationRequest, error) {
	f.validations = append(f.validations, params)
	res := &api.ApiV2010ValidationRequest{CallSid: strPtr("CAverify")}
	if f.validationCode != "" {
		res.ValidationCode = strPtr(f.validationCode)
	}
	return res, nil
}

func (f *fakeTwilioAPI) CreateCall(params *api.CreateCallParams) (*api.ApiV2010Call, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.calls = append(f.calls, params)
	return &api.ApiV2010Call{Sid: strPtr("CA123")}, nil
}

func TestTwilioGateway_IsVerifiedCaller(t *testing.T) {
	g := &TwilioGateway{api: &fakeTwilioAPI{callerIDs: []string{"+15550001111"}}}

	ok, err := g.IsVerifiedCaller(context.Background(), "+15550001111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.IsVerifiedCaller(context.Background(), "+15559999999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTwilioGateway_RequestVerification(t *testing.T) {
	fake := &fakeTwilioAPI{validationCode: "123456"}
	g := &TwilioGateway{api: fake}

	v, err := g.RequestVerification(context.Background(), "+15550001111", "Career Mentor User")
	require.NoError(t, err)
	assert.Equal(t, Verification{Reference: "CAverify", Code: "123456"}, v)
	require.Len(t, fake.validations, 1)
	assert.Equal(t, "+15550001111", *fake.validations[0].PhoneNumber)
	assert.Equal(t, "Career Mentor User", *fake.validations[0].FriendlyName)
}

func TestTwilioGateway_RequestVerificationWithoutCode(t *testing.T) {
	g := &TwilioGateway{api: &fakeTwilioAPI{}}

	_, err := g.RequestVerification(context.Background(), "+15550001111", "")
	require.Error(t, err)
}

func TestTwilioGateway_PlaceCall(t *testing.T) {
	fake := &fakeTwilioAPI{}
	g := &TwilioGateway{api: fake}

	res, err := g.PlaceCall(context.Background(), PlaceCallRequest{
		To:                "+15550001111",
		From:              "+15550002222",
		AnswerURL:         "https://m.example.com/api/twilio/voice?careerPath=Law",
		StatusCallbackURL: "https://m.example.com/api/calls/status",
	})
	require.NoError(t, err)
	assert.Equal(t, "CA123", res.ProviderCallID)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "+15550001111", *fake.calls[0].To)
	assert.Equal(t, "https://m.example.com/api/calls/status", *fake.calls[0].StatusCallback)
}

func TestTwilioGateway_PlaceCallErrors(t *testing.T) {
	g := &TwilioGateway{api: &fakeTwilioAPI{createErr: errors.New("21211 invalid 'To' number")}}

	_, err := g.PlaceCall(context.Background(), PlaceCallRequest{To: "x", From: "y", AnswerURL: "z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid 'To' number")

	_, err = g.PlaceCall(context.Background(), PlaceCallRequest{To: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNewTwilioGateway_RequiresCredentials(t *testing.T) {
	_, err := NewTwilioGateway("", "")
	require.Error(t, err)

	g, err := NewTwilioGateway("AC123", "token")
	require.NoError(t, err)
	assert.Equal(t, "twilio", g.Name())
}

func TestDryRunGateway(t *testing.T) {
	var gw Gateway = &DryRunGateway{}

	ok, err := gw.IsVerifiedCaller(context.Background(), "+15550001111")
	require.NoError(t, err)
	assert.True(t, ok)

	res, err := gw.PlaceCall(context.Background(), PlaceCallRequest{To: "+1", From: "+2", AnswerURL: "http://x"})
	require.NoError(t, err)
	assert.Regexp(t, `^CA[0-9a-f]{32}$`, res.ProviderCallID)

	v, err := gw.RequestVerification(context.Background(), "+15550001111", "")
	require.NoError(t, err)
	assert.Len(t, v.Code, 6)
}

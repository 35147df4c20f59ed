package services

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

const (
	VerificationApproved = "approved"
	VerificationPending  = "pending"
)

// Verifier sends one-time codes to a phone and checks them.
type Verifier interface {
	StartVerification(ctx context.Context, phone string) error
	// CheckVerification returns the provider's status for the code, e.g. "approved".
	CheckVerification(ctx context.Context, phone, code string) (string, error)
}

// TwilioVerifier runs verifications through a Twilio Verify service.
type TwilioVerifier struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioVerifier(accountSID, authToken, serviceSID string) *TwilioVerifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioVerifier{client: client, serviceSID: serviceSID}
}

func (v *TwilioVerifier) StartVerification(_ context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	_, err := v.client.VerifyV2.CreateVerification(v.serviceSID, params)
	return err
}

func (v *TwilioVerifier) CheckVerification(_ context.Context, phone, code string) (string, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := v.client.VerifyV2.CreateVerificationCheck(v.serviceSID, params)
	if err != nil {
		return "", err
	}
	if resp.Status == nil {
		return "", errors.New("verification check returned no status")
	}
	return *resp.Status, nil
}

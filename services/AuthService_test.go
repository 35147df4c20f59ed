package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchup/helper"
	"matchup/models"
)

func newAuth(f *fixture, verifier Verifier, secret string) *AuthService {
	return NewAuthService(f.userService, helper.NewTokenService(secret, time.Hour), verifier, f.metrics, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	f := newFixture()
	auth := newAuth(f, &fakeVerifier{}, "test-secret")
	ctx := context.Background()
	ron := f.register("ron@example.com", "0500000001")

	token, err := auth.Login(ctx, models.LoginInput{Email: "ron@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := auth.Tokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, ron.ID.Hex(), claims.ID)
	assert.Equal(t, "ron@example.com", claims.Email)

	profile, err := auth.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, ron.ID, profile.ID)
}

func TestRegisterReturnsProfile(t *testing.T) {
	f := newFixture()
	auth := newAuth(f, &fakeVerifier{}, "test-secret")

	profile, err := auth.Register(context.Background(), models.RegisterInput{
		Email: "dana@example.com", Password: "secret123", Name: "Dana", Phone: "0500000009",
	})
	require.NoError(t, err)
	assert.False(t, profile.ID.IsZero())
	assert.Equal(t, "dana@example.com", profile.Email)
	assert.NotNil(t, profile.OwnEvents)
	assert.Empty(t, profile.OwnEvents)
	assert.NotNil(t, profile.Notifications)
	assert.Empty(t, profile.RequestsReceived)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture()
	auth := newAuth(f, &fakeVerifier{}, "test-secret")
	ctx := context.Background()
	f.register("ron@example.com", "0500000001")

	_, err := auth.Login(ctx, models.LoginInput{Email: "ron@example.com", Password: "wrong-password"})
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid credentials.", appErr.Message)

	_, err = auth.Login(ctx, models.LoginInput{Email: "ghost@example.com", Password: "secret123"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = auth.Login(ctx, models.LoginInput{Email: "ron@example.com"})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestLoginWithoutSecret(t *testing.T) {
	f := newFixture()
	auth := newAuth(f, &fakeVerifier{}, "")
	f.register("ron@example.com", "0500000001")

	_, err := auth.Login(context.Background(), models.LoginInput{Email: "ron@example.com", Password: "secret123"})
	appErr := requireStatus(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Error loading JWT_SECRET.", appErr.Message)
}

func TestSendOTP(t *testing.T) {
	f := newFixture()
	verifier := &fakeVerifier{}
	auth := newAuth(f, verifier, "test-secret")
	ctx := context.Background()

	err := auth.SendOTP(ctx, "")
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid phone number", appErr.Message)
	assert.Empty(t, verifier.started)

	require.NoError(t, auth.SendOTP(ctx, "+972500000001"))
	assert.Equal(t, []string{"+972500000001"}, verifier.started)

	verifier.err = errors.New("twilio down")
	requireStatus(t, auth.SendOTP(ctx, "+972500000001"), http.StatusBadGateway)
}

func TestVerifyOTP(t *testing.T) {
	f := newFixture()
	verifier := &fakeVerifier{status: VerificationApproved}
	auth := newAuth(f, verifier, "test-secret")
	ctx := context.Background()
	phone := "+972500000001"

	_, err := auth.VerifyOTP(ctx, phone, "")
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid phone number or code", appErr.Message)

	token, err := auth.VerifyOTP(ctx, phone, "123456")
	require.NoError(t, err)
	claims, err := auth.Tokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, HashPhone(phone), claims.ID)
	assert.Equal(t, phone, claims.Email)
	assert.Len(t, claims.ID, 64)

	// the phone hash names no stored user
	_, err = auth.Me(ctx, claims)
	requireStatus(t, err, http.StatusNotFound)

	verifier.status = VerificationPending
	_, err = auth.VerifyOTP(ctx, phone, "000000")
	appErr = requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid verification code", appErr.Message)
	assert.Len(t, verifier.checked, 2)
}

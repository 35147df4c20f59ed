package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"matchup/helper"
	"matchup/metrics"
	"matchup/models"
)

type AuthService struct {
	users    *UserService
	tokens   *helper.TokenService
	verifier Verifier
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewAuthService(users *UserService, tokens *helper.TokenService, verifier Verifier, m *metrics.Metrics, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		metrics:  m,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

func (s *AuthService) Tokens() *helper.TokenService { return s.tokens }

// Register creates the account and answers with the populated profile.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.UserProfile, error) {
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.users.populate(ctx, u)
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (string, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return "", err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return "", helper.BadRequest("Invalid credentials.")
	}

	return s.tokens.Sign(u.ID.Hex(), u.Email)
}

func (s *AuthService) Me(ctx context.Context, claims *helper.Claims) (models.UserProfile, error) {
	return s.users.GetByID(ctx, claims.ID)
}

func (s *AuthService) SendOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return helper.BadRequest("Invalid phone number")
	}

	if err := s.verifier.StartVerification(ctx, phone); err != nil {
		s.recordOTP("send", "error")
		return &helper.AppError{Status: http.StatusBadGateway, Message: "Could not send verification code.", Err: err}
	}
	s.recordOTP("send", "sent")
	return nil
}

// VerifyOTP checks the code and issues a token keyed by the phone's hash.
// The token does not name a stored user.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	if phone == "" || code == "" {
		return "", helper.BadRequest("Invalid phone number or code")
	}

	status, err := s.verifier.CheckVerification(ctx, phone, code)
	if err != nil {
		s.recordOTP("verify", "error")
		return "", &helper.AppError{Status: http.StatusBadGateway, Message: "Could not verify code.", Err: err}
	}
	if status != VerificationApproved {
		s.recordOTP("verify", "rejected")
		return "", helper.BadRequest("Invalid verification code")
	}
	s.recordOTP("verify", "approved")

	id := HashPhone(phone)
	s.log.Warn().Str("id", id).Msg("otp login issued a token without a user record")
	return s.tokens.Sign(id, phone)
}

func (s *AuthService) recordOTP(op, outcome string) {
	if s.metrics != nil {
		s.metrics.OTPRequest(op, outcome)
	}
}

// HashPhone returns the hex SHA-256 of a phone number.
func HashPhone(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}

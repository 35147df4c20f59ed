package helper

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by the `token` cookie.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Sign(id, email string) (string, error) {
	if len(s.secret) == 0 {
		return "", missingSecret()
	}

	now := s.now()
	claims := Claims{
		ID:    id,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Internal("Could not sign token.", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, missingSecret()
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, &AppError{Status: http.StatusUnauthorized, Message: "Invalid or expired token.", Err: err}
	}
	return claims, nil
}

func missingSecret() *AppError {
	return Internal("Error loading JWT_SECRET.", nil)
}

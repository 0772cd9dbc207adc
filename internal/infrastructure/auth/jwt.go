// Package auth validates bearer tokens issued by the external identity
// provider. This service never issues or refreshes tokens.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
	"github.com/shopsight/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
	ErrWrongIssuer      = errors.New("token issued by unknown issuer")
	ErrWrongAudience    = errors.New("token not intended for this service")
)

// Claims represents the identity provider's token claims. The subject
// is the user ID; groups carry role membership such as "admin".
type Claims struct {
	jwt.RegisteredClaims
	Groups []string `json:"groups,omitempty"`
	Email  string   `json:"email,omitempty"`
}

// JWTValidator verifies tokens signed by the identity provider
type JWTValidator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTValidator creates a new JWTValidator
func NewJWTValidator(cfg config.JWTConfig) *JWTValidator {
	return &JWTValidator{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Validate parses and verifies a token, returning the caller identity
func (s *JWTValidator) Validate(tokenString string) (*shared.Caller, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	return &shared.Caller{
		UserID: userID,
		Groups: claims.Groups,
	}, nil
}

// parse verifies the signature and registered claims
func (s *JWTValidator) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrWrongIssuer
	}
	if s.audience != "" && !containsAudience(claims.Audience, s.audience) {
		return nil, ErrWrongAudience
	}

	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

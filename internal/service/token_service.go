package service

import (
	"fmt"
	"time"

	"piggy-bank/internal/core/ports"
	"piggy-bank/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenServiceImpl implements ports.TokenService with HMAC-signed JWTs.
type TokenServiceImpl struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenService creates a new TokenServiceImpl.
func NewTokenService(secret string, expiry time.Duration, issuer string) *TokenServiceImpl {
	return &TokenServiceImpl{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given user and returns it with its expiry.
func (s *TokenServiceImpl) Generate(userID uuid.UUID, username string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)

	claims := accessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token string, returning its claims.
func (s *TokenServiceImpl) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}

	return &ports.TokenClaims{
		UserID:   userID,
		Username: claims.Username,
	}, nil
}

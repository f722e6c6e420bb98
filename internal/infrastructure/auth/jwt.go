// Package auth provides JWT token issuing and validation. Users and
// credentials live in an upstream system; this package only verifies the
// tokens it hands out and resolves them to an engine identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiry
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the engine identity inside a JWT
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates access tokens
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTService creates a JWTService with an HMAC signing secret
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// GenerateToken issues a signed access token for an identity
func (s *JWTService) GenerateToken(identity shared.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: identity.Name,
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies a token and resolves the identity it carries
func (s *JWTService) ValidateToken(tokenString string) (shared.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Identity{}, ErrTokenExpired
		}
		return shared.Identity{}, ErrInvalidToken
	}
	if !token.Valid {
		return shared.Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return shared.Identity{}, ErrInvalidToken
	}
	role := shared.Role(claims.Role)
	if !role.IsValid() {
		return shared.Identity{}, ErrInvalidToken
	}

	return shared.NewIdentity(userID, claims.Name, role), nil
}

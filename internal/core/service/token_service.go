package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// MinSecretLen is the minimum signing key length for HS256 (256 bits).
const MinSecretLen = 32

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates HS256-signed bearer tokens. The signing
// key is fixed at construction and never mutated, so a single instance is
// safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("token service: signing secret must be at least %d bytes", MinSecretLen)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed token with subject=username, an "authorities"
// claim joining the roles with commas, and standard iat/exp timestamps.
func (s *TokenService) Issue(username string, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         username,
		"authorities": strings.Join(roles, ","),
		"iat":         now.Unix(),
		"exp":         now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry. Every failure mode collapses to
// domain.ErrInvalidToken; callers are not told why a token was rejected.
func (s *TokenService) Validate(token string) (ports.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ports.Identity{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return ports.Identity{}, domain.ErrInvalidToken
	}

	var roles []string
	if authorities, _ := claims["authorities"].(string); authorities != "" {
		roles = strings.Split(authorities, ",")
	}

	return ports.Identity{Username: sub, Roles: roles}, nil
}

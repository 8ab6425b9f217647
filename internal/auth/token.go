// Package auth issues and parses the opaque session tokens used by the
// local fallback login. Tokens are HS256 JWTs; parsing never fails loudly:
// a malformed token yields ErrInvalidToken and callers treat it as absent.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/clock"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload.
type Claims struct {
	UserID    int64       `json:"uid"`
	LoginName string      `json:"login"`
	Role      models.Role `json:"rol"`
	jwt.RegisteredClaims
}

// ExpiresAtTime returns the expiry, or the zero time if the token has none.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenCodec signs and verifies session tokens.
type TokenCodec struct {
	secret []byte
	clock  clock.Clock
}

func NewTokenCodec(secret []byte, clk clock.Clock) *TokenCodec {
	if clk == nil {
		clk = clock.Real()
	}
	return &TokenCodec{secret: secret, clock: clk}
}

// Issue serializes identity into a token valid for ttl.
func (c *TokenCodec) Issue(identity *models.Identity, ttl time.Duration) (string, error) {
	now := c.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    identity.ID,
		LoginName: identity.LoginName,
		Role:      identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Parse verifies the signature and decodes the claims. Expiry is not
// checked here; see IsExpired.
func (c *TokenCodec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether the claims' expiry is at or before now.
// Claims without an expiry are considered expired.
func (c *TokenCodec) IsExpired(claims *Claims) bool {
	exp := claims.ExpiresAtTime()
	return exp.IsZero() || !exp.After(c.clock.Now())
}

// Validate parses tokenString and rejects it when expired.
func (c *TokenCodec) Validate(tokenString string) (*Claims, error) {
	claims, err := c.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if c.IsExpired(claims) {
		return nil, common.ErrTokenExpired
	}
	return claims, nil
}

// Package auth resolves the calling profile from an HS256 bearer token.
// The token only identifies the caller; roles and activity are read from the
// user directory on every operation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/site-visits/internal/domain"
)

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned for a malformed, expired or badly signed token.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Principal is the authenticated caller.
type Principal struct {
	ProfileID domain.ProfileID
}

type principalKey struct{}

// WithPrincipal stores the principal in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Verifier checks bearer tokens signed with a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier for secret. An empty secret rejects every token.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// ParseHeader extracts and verifies the token in an Authorization header value.
func (v *Verifier) ParseHeader(header string) (Principal, error) {
	if strings.TrimSpace(header) == "" {
		return Principal{}, ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return Principal{}, fmt.Errorf("%w: authorization scheme must be Bearer", ErrInvalidToken)
	}
	return v.Parse(strings.TrimSpace(token))
}

// Parse verifies token and returns the profile named by its subject claim.
func (v *Verifier) Parse(token string) (Principal, error) {
	if len(v.secret) == 0 {
		return Principal{}, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := domain.ParseProfileID(claims.Subject)
	if err != nil || id.IsZero() {
		return Principal{}, fmt.Errorf("%w: subject is not a profile id", ErrInvalidToken)
	}
	return Principal{ProfileID: id}, nil
}

// Mint signs a token for profile id that expires after ttl.
// A zero ttl mints a token without expiry.
func Mint(secret string, id domain.ProfileID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  id.String(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("auth.Mint: %w", err)
	}
	return s, nil
}

// Package token inspects the session credential without verifying it.
//
// The backend is the only party able to check a signature, so the client only
// decodes the claims and compares the expiry against its own clock. A token
// that looks valid locally can still be rejected remotely; that case is
// handled by the request pipeline terminating the session on a 401.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedCredential = errors.New("malformed credential")

// TokenSource yields the raw credential, or "" when none is stored.
type TokenSource interface {
	Token(ctx context.Context) string
}

type payload struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode extracts the claims from a three-segment credential. Only the
// payload segment is read; header and signature are ignored.
func Decode(raw string) (*models.Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedCredential)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want 3 segments, got %d", ErrMalformedCredential, len(parts))
	}
	seg, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: decode payload: %w", ErrMalformedCredential, err)
	}
	var p payload
	if err := json.Unmarshal(seg, &p); err != nil {
		return nil, fmt.Errorf("%w: parse payload: %w", ErrMalformedCredential, err)
	}
	c := &models.Claims{
		Subject: p.Subject,
		Role:    p.Role,
	}
	if p.IssuedAt != nil {
		c.IssuedAt = p.IssuedAt.Unix()
	}
	if p.ExpiresAt != nil {
		c.ExpiresAt = p.ExpiresAt.Unix()
	}
	return c, nil
}

// Evaluator answers validity questions about the stored credential.
// Every call re-reads the source, so the answers follow logins and logouts
// without any cache invalidation.
type Evaluator struct {
	src TokenSource
	now func() time.Time
	log logging.Logger
}

type Option func(*Evaluator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func NewEvaluator(src TokenSource, log logging.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{
		src: src,
		now: time.Now,
		log: log.With("component", "token_evaluator"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Evaluator) HasCredential(ctx context.Context) bool {
	return e.src.Token(ctx) != ""
}

// Decode returns the claims of the stored credential, or nil when there is
// none or it cannot be decoded.
func (e *Evaluator) Decode(ctx context.Context) *models.Claims {
	raw := e.src.Token(ctx)
	if raw == "" {
		return nil
	}
	c, err := Decode(raw)
	if err != nil {
		e.log.Warn(ctx, "cannot decode credential", "err", err)
		return nil
	}
	return c
}

// IsExpired is true when there is no decodable credential or its expiry is
// not in the future. A credential without exp counts as expired.
func (e *Evaluator) IsExpired(ctx context.Context) bool {
	c := e.Decode(ctx)
	if c == nil {
		return true
	}
	return c.ExpiresAt <= e.now().Unix()
}

func (e *Evaluator) IsValid(ctx context.Context) bool {
	return e.HasCredential(ctx) && !e.IsExpired(ctx)
}

// TimeRemaining is the whole number of seconds until expiry, never negative.
func (e *Evaluator) TimeRemaining(ctx context.Context) time.Duration {
	c := e.Decode(ctx)
	if c == nil {
		return 0
	}
	left := time.Unix(c.ExpiresAt, 0).Sub(e.now())
	if left <= 0 {
		return 0
	}
	return left.Truncate(time.Second)
}

// Email returns the sub claim.
func (e *Evaluator) Email(ctx context.Context) string {
	if c := e.Decode(ctx); c != nil {
		return c.Subject
	}
	return ""
}

// Role returns the role claim, or RoleNone when absent or unknown.
func (e *Evaluator) Role(ctx context.Context) models.Role {
	c := e.Decode(ctx)
	if c == nil {
		return models.RoleNone
	}
	r, err := models.ParseRole(c.Role)
	if err != nil {
		return models.RoleNone
	}
	return r
}

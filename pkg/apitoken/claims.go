package apitoken

import (
	"fmt"
	"math"
	"time"
)

const (
	Algorithm = "HS256"
	TokenType = "JWT"
)

// maxLifetimeSeconds is the largest lifetime that still fits a time.Duration.
const maxLifetimeSeconds = math.MaxInt64 / int64(time.Second)

// Header is the first token segment. Field order is the wire order.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
	// SignType is a legacy field some verifiers still expect. It is only
	// emitted when set.
	SignType string `json:"sign_type,omitempty"`
}

// Claims is the token payload. Timestamps are Unix milliseconds.
type Claims struct {
	APIKey    string `json:"api_key"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"timestamp"`
}

// Lifetime returns the difference between expiration and issuance.
func (c Claims) Lifetime() time.Duration {
	return time.Duration(c.ExpiresAt-c.IssuedAt) * time.Millisecond
}

// BuildClaims returns the claims for a token issued to id at now and valid
// for seconds. The lifetime must be positive.
func BuildClaims(id string, now time.Time, seconds int64) (Claims, error) {
	return buildClaims(id, now, seconds, false)
}

func buildClaims(id string, now time.Time, seconds int64, allowZero bool) (Claims, error) {
	if seconds < 0 || (seconds == 0 && !allowZero) {
		return Claims{}, fmt.Errorf("%w: lifetime must be positive, got %ds", ErrInvalidDuration, seconds)
	}
	if seconds > maxLifetimeSeconds {
		return Claims{}, fmt.Errorf("%w: %ds overflows", ErrInvalidDuration, seconds)
	}
	exp := now.Add(time.Duration(seconds) * time.Second)
	if exp.Before(now) || !millisRepresentable(now) || !millisRepresentable(exp) {
		return Claims{}, fmt.Errorf("%w: %s + %ds", ErrClockError, now.UTC().Format(time.RFC3339), seconds)
	}
	return Claims{
		APIKey:    id,
		ExpiresAt: exp.UnixMilli(),
		IssuedAt:  now.UnixMilli(),
	}, nil
}

// millisRepresentable reports whether t in Unix milliseconds fits an int64.
func millisRepresentable(t time.Time) bool {
	s := t.Unix()
	return s > math.MinInt64/1000 && s < math.MaxInt64/1000
}

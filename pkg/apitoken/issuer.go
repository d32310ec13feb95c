// Package apitoken issues the short-lived HMAC-SHA256 tokens the chat API
// accepts in its Authorization header. A token is derived from an
// <id>.<secret> credential; the secret only ever keys the signature.
package apitoken

import (
	"fmt"
	"time"

	"github.com/domino14/bigmodel/pkg/clock"
)

// Issuer creates tokens. It holds no mutable state and is safe for
// concurrent use.
type Issuer struct {
	clock     clock.Clock
	signType  string
	allowZero bool
}

type Option func(*Issuer)

// WithClock sets the time source used by Issue.
func WithClock(c clock.Clock) Option {
	return func(i *Issuer) {
		if c != nil {
			i.clock = c
		}
	}
}

// WithSignType adds the legacy sign_type header field, e.g. "SIGN".
func WithSignType(signType string) Option {
	return func(i *Issuer) {
		i.signType = signType
	}
}

// AllowZeroLifetime permits tokens whose expiration equals issuance.
func AllowZeroLifetime() Option {
	return func(i *Issuer) {
		i.allowZero = true
	}
}

func NewIssuer(opts ...Option) *Issuer {
	i := &Issuer{clock: clock.Standard()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns a token for credential valid for seconds from now.
func (i *Issuer) Issue(credential string, seconds int64) (string, error) {
	return i.IssueAt(credential, seconds, i.clock.Now())
}

// IssueAt returns a token for credential issued at now.
func (i *Issuer) IssueAt(credential string, seconds int64, now time.Time) (string, error) {
	id, secret, err := SplitCredential(credential)
	if err != nil {
		return "", err
	}
	claims, err := buildClaims(id, now, seconds, i.allowZero)
	if err != nil {
		return "", err
	}
	header, err := EncodeSegment(Header{Alg: Algorithm, Typ: TokenType, SignType: i.signType})
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	payload, err := EncodeSegment(claims)
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}
	sig, err := Sign([]byte(secret), SigningInput(header, payload))
	if err != nil {
		return "", err
	}
	return Assemble(header, payload, encodeBytes(sig)), nil
}

var defaultIssuer = NewIssuer()

// Issue returns a token for credential using the wall clock and default
// header.
func Issue(credential string, seconds int64) (string, error) {
	return defaultIssuer.Issue(credential, seconds)
}

// IssueAt is Issue with an explicit issuance instant.
func IssueAt(credential string, seconds int64, now time.Time) (string, error) {
	return defaultIssuer.IssueAt(credential, seconds, now)
}

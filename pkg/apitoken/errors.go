package apitoken

import "errors"

var (
	// ErrInvalidCredentialFormat is returned when a credential does not split
	// into exactly one non-empty id and one non-empty secret.
	ErrInvalidCredentialFormat = errors.New("invalid credential format: expected <id>.<secret>")

	// ErrInvalidDuration is returned for a lifetime that cannot be represented
	// or that would not place the expiration after issuance.
	ErrInvalidDuration = errors.New("invalid token duration")

	// ErrClockError is returned when adding the lifetime to the current time
	// leaves the representable millisecond range.
	ErrClockError = errors.New("clock arithmetic overflow")

	// ErrSerialization is returned when a token segment cannot be encoded.
	ErrSerialization = errors.New("token segment serialization failed")
)

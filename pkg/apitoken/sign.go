package apitoken

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Sign computes the HMAC-SHA256 of signingInput keyed by secret. Any key
// length is accepted.
func Sign(secret []byte, signingInput string) ([]byte, error) {
	sig, err := jwt.SigningMethodHS256.Sign(signingInput, secret)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// SigningInput is the byte string the signature covers.
func SigningInput(header, payload string) string {
	return header + separator + payload
}

// Assemble joins the encoded header, payload and signature into a token.
func Assemble(header, payload, signature string) string {
	return strings.Join([]string{header, payload, signature}, separator)
}

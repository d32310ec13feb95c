package apitoken

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeSegment serializes v to JSON and encodes it with unpadded URL-safe
// base64. Key order is the struct field order; HTML characters are not
// escaped.
func EncodeSegment(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return encodeBytes(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func encodeBytes(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

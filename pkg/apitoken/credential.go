package apitoken

import "strings"

const separator = "."

// SplitCredential splits an API credential of the form <id>.<secret>.
func SplitCredential(credential string) (id, secret string, err error) {
	parts := strings.Split(credential, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidCredentialFormat
	}
	return parts[0], parts[1], nil
}

package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateID returns an opaque session token with 256 bits of entropy.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

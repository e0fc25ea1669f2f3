package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomString returns a URL-safe random string of n bytes entropy.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("failed to read random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

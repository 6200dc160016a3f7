package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// SaltLength is the number of characters of a password salt.
	SaltLength = 16
	// TokenLength is the number of characters of a bearer token.
	TokenLength = 64
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiased is the largest multiple of len(alphanumeric) that fits in a
// byte; bytes at or above it are rejected so every character is equally likely.
const maxUnbiased = 256 - 256%len(alphanumeric)

// randomString returns n characters drawn uniformly from the alphanumeric
// alphabet using entropy read from r.
func randomString(r io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)

	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphanumeric[int(b)%len(alphanumeric)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}

func randomAlphanumeric(n int) (string, error) {
	return randomString(rand.Reader, n)
}

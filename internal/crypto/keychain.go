// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Supported password hashing algorithms.
const (
	// AlgorithmSHA256 is base64(SHA-256(password ‖ salt)). It matches the
	// hashes of accounts created before argon2id support existed.
	AlgorithmSHA256 = "sha256"
	// AlgorithmArgon2id derives the hash with Argon2id. Encoded hashes carry
	// the argon2idPrefix so they can be told apart from legacy ones.
	AlgorithmArgon2id = "argon2id"
)

const argon2idPrefix = "argon2id$"

// ErrUnknownAlgorithm is returned by [NewKeyChainService] for an
// unsupported algorithm name.
var ErrUnknownAlgorithm = errors.New("unknown password hash algorithm")

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	algorithm string

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	random func(n int) (string, error)
}

// NewKeyChainService constructs a [KeyChainService] hashing new passwords
// with algorithm ("sha256" when empty). Argon2id uses the parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChainService(algorithm string) (KeyChainService, error) {
	switch algorithm {
	case "":
		algorithm = AlgorithmSHA256
	case AlgorithmSHA256, AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &keyChainService{
		algorithm:    algorithm,
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
		random:       randomAlphanumeric,
	}, nil
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() (string, error) {
	salt, err := k.random(SaltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// GenerateToken implements [KeyChainService].
func (k *keyChainService) GenerateToken() (string, error) {
	token, err := k.random(TokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// HashPassword implements [KeyChainService].
func (k *keyChainService) HashPassword(password, salt string) (string, error) {
	if salt == "" {
		return "", errors.New("empty salt")
	}

	if k.algorithm == AlgorithmArgon2id {
		return k.argon2idHash(password, salt), nil
	}
	return sha256Hash(password, salt), nil
}

// VerifyPassword implements [KeyChainService]. The comparison runs in
// constant time.
func (k *keyChainService) VerifyPassword(password, salt, hash string) bool {
	if hash == "" || salt == "" {
		return false
	}

	var computed string
	if strings.HasPrefix(hash, argon2idPrefix) {
		computed = k.argon2idHash(password, salt)
	} else {
		computed = sha256Hash(password, salt)
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func (k *keyChainService) argon2idHash(password, salt string) string {
	key := argon2.IDKey(
		[]byte(password),
		[]byte(salt),
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
	return argon2idPrefix + base64.RawStdEncoding.EncodeToString(key)
}

func sha256Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

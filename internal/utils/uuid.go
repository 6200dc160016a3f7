package utils

import "github.com/google/uuid"

// IDGenerator produces opaque unique identifiers for new records.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 identifiers, falling back to
// random UUIDv4 if the v7 generator fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// maxTraceIDLen bounds caller-supplied trace ids written to logs and
// response headers.
const maxTraceIDLen = 128

// TraceIDOrNew returns candidate when it is a usable trace id (non-empty,
// at most 128 characters from [A-Za-z0-9._:-]) and a fresh UUID otherwise.
func TraceIDOrNew(candidate string) string {
	if validTraceID(candidate) {
		return candidate
	}
	return uuid.NewString()
}

func validTraceID(s string) bool {
	if s == "" || len(s) > maxTraceIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

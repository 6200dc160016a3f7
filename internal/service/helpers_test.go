package service

import (
	"time"
)

type fixedIDs []string

func (f *fixedIDs) Generate() string {
	id := (*f)[0]
	*f = (*f)[1:]
	return id
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

var pngBytes = []byte("\x89PNG\r\n\x1a\n")

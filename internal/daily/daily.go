// internal/daily/daily.go
//
// Deterministic daily solution selection. Everyone who plays on the same
// date (UTC) with the same salt gets the same answer index; the salt keeps
// the sequence unpredictable without shipping the word anywhere.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using
// HMAC-SHA256(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// First 8 bytes as uint64 for the modulus distribution.
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

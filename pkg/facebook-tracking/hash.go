package facebook_tracking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashEmail normalizes an email per the Graph API matching rules
// (trim, lowercase) and returns the SHA-256 digest as lowercase hex.
// Empty input returns "" so the caller can omit the field entirely.
func HashEmail(raw string) string {
	return hashNormalized(strings.ToLower(strings.TrimSpace(raw)))
}

// HashPhone strips every non-digit character before hashing.
func HashPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return hashNormalized(digits.String())
}

// HashName handles first and last names.
func HashName(raw string) string {
	return hashNormalized(strings.ToLower(strings.TrimSpace(raw)))
}

func hashNormalized(v string) string {
	if v == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

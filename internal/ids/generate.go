// Package ids generates and matches the short identifiers used for work items.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"time"

	internalstrings "github.com/Austuin/HoneyBadgerTool/internal/strings"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 8

// Generate creates a deterministic lowercase base32 ID from input.
// IDs are content-addressed: hashing the same input always yields the
// same ID, which keeps test fixtures stable.
func Generate(input string, length int) string {
	if length <= 0 {
		return ""
	}

	digest := sha256.Sum256([]byte(input))
	encoded := internalstrings.NormalizeLower(base32.StdEncoding.EncodeToString(digest[:]))
	if length > len(encoded) {
		return encoded
	}
	return encoded[:length]
}

// GenerateWithTimestamp salts the input with a timestamp before
// hashing, so two items created with the same name get distinct IDs.
func GenerateWithTimestamp(input string, timestamp time.Time, length int) string {
	return Generate(input+timestamp.Format(time.RFC3339Nano), length)
}

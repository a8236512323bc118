// Package ids generates the opaque identifiers used for tasks,
// subtasks, and activity entries.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"strings"
	"time"
)

// Length is the length of every generated identifier.
const Length = 8

// New derives an identifier from the given seed text and timestamp.
// The same seed and timestamp always produce the same identifier,
// which keeps store fixtures reproducible.
func New(seed string, timestamp time.Time) string {
	return FromString(seed + timestamp.Format(time.RFC3339Nano))
}

// FromString derives an identifier from arbitrary input text.
func FromString(input string) string {
	sum := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(sum[:])
	return strings.ToLower(encoded[:Length])
}

// Package tag implements the asset-tag encoding scheme: a ledger id is
// rendered as a fixed-width, zero-padded base-36 string that is unique for
// the lifetime of the system because ids are never reused.
package tag

import (
	"fmt"
	"strings"
)

// Width is the fixed display width of an asset tag
const Width = 6

// Render converts a ledger id to its fixed-width asset-tag string.
// Ids that exceed the six-digit base-36 space render wider rather than
// truncate, so tags can never collide.
func Render(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("negative ledger id %d", id)
	}

	encoded := Encode(uint64(id))
	if len(encoded) >= Width {
		return encoded, nil
	}

	return strings.Repeat("0", Width-len(encoded)) + encoded, nil
}

// Parse converts an asset-tag string back to its ledger id. Zero padding and
// lowercase input are accepted.
func Parse(s string) (int64, error) {
	n, err := Decode(s)
	if err != nil {
		return 0, fmt.Errorf("invalid asset tag %q: %w", s, err)
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("asset tag %q exceeds the ledger id range", s)
	}

	return int64(n), nil
}

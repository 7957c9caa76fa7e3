package tag

import (
	"fmt"
	"math"
	"strings"
)

// alphabet is the base-36 digit set, most-significant digit first in output
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Encode converts a non-negative integer to its base-36 representation using
// digits 0-9A-Z. Encode(0) returns "0"; there are no leading zeros otherwise.
func Encode(n uint64) string {
	if n == 0 {
		return "0"
	}

	// 13 digits cover the full uint64 range in base 36
	buf := make([]byte, 0, 13)
	for n > 0 {
		buf = append(buf, alphabet[n%36])
		n /= 36
	}

	// Digits were produced least-significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// Decode converts a base-36 string back to its integer value. Input is
// case-insensitive; characters outside 0-9A-Z are rejected.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty base-36 string")
	}

	s = strings.ToUpper(s)

	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]

		var digit uint64
		switch {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'A' && c <= 'Z':
			digit = uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid base-36 character %q in %q", c, s)
		}

		if n > (math.MaxUint64-digit)/36 {
			return 0, fmt.Errorf("base-36 value %q overflows uint64", s)
		}
		n = n*36 + digit
	}

	return n, nil
}

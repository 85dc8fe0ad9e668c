package predict

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxPrefixSize is the largest prefix, in bytes, accepted from a surface.
	DefaultMaxPrefixSize = 256
	// EnvMaxPrefixSize overrides DefaultMaxPrefixSize.
	EnvMaxPrefixSize = "DWELLKEYS_MAX_PREFIX_SIZE"
)

// MaxLimit bounds the number of suggestions a surface may ask for.
const MaxLimit = 1000

var (
	ErrPrefixTooLarge  = errors.New("prefix exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("prefix contains invalid UTF-8 sequences")
	ErrLimitOutOfRange = errors.New("limit out of range")
)

// CheckLimit rejects limits outside [0, MaxLimit].
func CheckLimit(n int) (int, error) {
	if n < 0 || n > MaxLimit {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrLimitOutOfRange, n, MaxLimit)
	}
	return n, nil
}

// LimitFromFloat converts a JSON number limit. Fractions, NaN and values
// outside [0, MaxLimit] are rejected before the int conversion.
func LimitFromFloat(n float64) (int, error) {
	if !(n >= 0 && n <= MaxLimit) || n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: %v not in [0, %d]", ErrLimitOutOfRange, n, MaxLimit)
	}
	return int(n), nil
}

// SanitizePrefix validates a prefix received from outside the process.
// Oversized or invalid input is rejected rather than truncated so the same
// request always yields the same completions. Control characters are dropped.
func SanitizePrefix(prefix string) (string, error) {
	limit := maxPrefixSize()
	if len(prefix) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrPrefixTooLarge, len(prefix), limit)
	}
	if !utf8.ValidString(prefix) {
		return "", ErrInvalidUTF8
	}

	// Fast path
	if strings.IndexFunc(prefix, unicode.IsControl) < 0 {
		return prefix, nil
	}

	var b strings.Builder
	b.Grow(len(prefix))
	for _, r := range prefix {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxPrefixSize() int {
	if val := os.Getenv(EnvMaxPrefixSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxPrefixSize
}

package kernel

import (
	"strconv"
	"strings"
)

// Weight is a value object holding the free-text weight description attached
// to an order item, e.g. "1kg", "2.5 kg" or "about two kilos". The source data
// carries magnitude and unit in a single unstructured string, so parsing is
// best-effort: a leading numeric token is interpreted as kilograms and
// anything else is left to the caller's fallback.
//
// Weight never rejects its input. A malformed string is a valid Weight whose
// Magnitude reports no parseable value.
type Weight struct {
	raw string
}

// NewWeight creates a Weight from its free-text representation.
// The input is stored verbatim; no validation is performed.
func NewWeight(raw string) Weight {
	return Weight{raw: strings.TrimSpace(raw)}
}

// Raw returns the original free-text representation.
func (w Weight) Raw() string {
	return w.raw
}

// IsZero reports whether the weight carries no text at all.
func (w Weight) IsZero() bool {
	return w.raw == ""
}

// Magnitude extracts the leading numeric token as a kilogram magnitude.
// It returns the parsed value and true on success, or 0 and false when the
// string does not start with a number. Comma decimal separators are accepted.
//
// Example:
//
//	kernel.NewWeight("2.5 kg").Magnitude() // 2.5, true
//	kernel.NewWeight("heavy").Magnitude()  // 0, false
func (w Weight) Magnitude() (float64, bool) {
	token := leadingNumericToken(w.raw)
	if token == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// leadingNumericToken returns the longest prefix of s that forms a decimal
// number, allowing one decimal separator ('.' or ',').
func leadingNumericToken(s string) string {
	var (
		end       int
		seenDigit bool
		seenSep   bool
	)

	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '.' || c == ',') && !seenSep && seenDigit:
			seenSep = true
		default:
			goto done
		}
		end++
	}

done:
	if !seenDigit {
		return ""
	}
	// A trailing separator belongs to the surrounding text, not the number.
	if seenSep && (s[end-1] == '.' || s[end-1] == ',') {
		end--
	}
	return s[:end]
}

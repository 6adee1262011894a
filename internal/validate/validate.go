package validate

import (
	"strings"
	"time"
)

// DateLayout is the wire format for all caller-supplied dates.
const DateLayout = "2006-01-02"

// MinAdvanceNotice is how far in the future a departure must be at booking time.
const MinAdvanceNotice = 24 * time.Hour

// IATACode reports whether code is a well-formed IATA airport code:
// exactly 3 ASCII letters, already uppercase.
func IATACode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MeetsAdvanceNotice reports whether departure is far enough from now to book.
func MeetsAdvanceNotice(departure, now time.Time) bool {
	return !departure.Before(now.Add(MinAdvanceNotice))
}

var seatPrefs = map[string]struct{}{
	"window": {},
	"aisle":  {},
	"middle": {},
}

// NormalizeSeatPref lowercases a seat preference and coerces anything
// outside window/aisle/middle to middle.
func NormalizeSeatPref(pref string) string {
	lowered := strings.ToLower(pref)
	if _, ok := seatPrefs[lowered]; ok {
		return lowered
	}
	return "middle"
}

package tickets

import (
	"strconv"
	"strings"
	"unicode"
)

// Number synthesizes the canonical ticket identifier for one seat on one
// departure. It is deterministic and shared by the booking and
// cancellation paths; the two must never diverge or cross-referencing
// tickets breaks.
//
// Construction: the seat label is trimmed and, when it is a deck letter
// plus a single digit, the digit is zero-padded ("U7" -> "U07");
// dashes are stripped from the date and dots from the timing; the parts
// are concatenated as slNo+date+timing+seat; finally every 'L' becomes
// '0', every 'U' becomes '1' and whitespace is removed.
//
// The result is an opaque identifier: equality and lookup only, no
// arithmetic. Uniqueness per (route, date, timing, seat) is enforced by
// the remote service, not here.
func Number(slNo int, date, timing, seatLabel string) string {
	seat := strings.TrimSpace(seatLabel)
	if len(seat) == 2 {
		seat = seat[:1] + "0" + seat[1:]
	}

	raw := strconv.Itoa(slNo) +
		strings.ReplaceAll(date, "-", "") +
		strings.ReplaceAll(timing, ".", "") +
		seat

	raw = strings.ReplaceAll(raw, "L", "0")
	raw = strings.ReplaceAll(raw, "U", "1")

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// Package calendar implements the scheduling core: timezone-safe date
// keys, the month/week/day cell matrix, per-day appointment indexing,
// the fixed time-slot grid, and overlap resolution for simultaneous
// appointments. Everything here is pure computation; storage and
// rendering live elsewhere.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrBadDateKey = errors.New("calendar: malformed date key")

const dateKeyLayout = "2006-01-02"

// DateKey canonicalizes a date to its local YYYY-MM-DD key. The key is
// built from the time's own year/month/day fields, never via a UTC
// conversion, so dates near midnight do not drift by a day.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateKey, key)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

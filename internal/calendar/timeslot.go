package calendar

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSlotMinutes is the vertical timeline granularity used by the
// week and day views.
const DefaultSlotMinutes = 30

const minutesPerDay = 24 * 60

// SlotGrid maps wall-clock times onto a fixed vertical timeline. Row 0
// is a dedicated all-day slot; rows 1..N cover 24 hours at the
// configured granularity (49 rows total at 30 minutes).
type SlotGrid struct {
	Granularity int
}

func NewSlotGrid(granularityMinutes int) SlotGrid {
	if granularityMinutes <= 0 || granularityMinutes > minutesPerDay {
		granularityMinutes = DefaultSlotMinutes
	}
	return SlotGrid{Granularity: granularityMinutes}
}

// Rows returns the total row count including the all-day slot.
func (g SlotGrid) Rows() int {
	return 1 + minutesPerDay/g.Granularity
}

// SlotIndexFor returns the 1-indexed row for a HH:mm start time. An
// empty start time is the all-day slot 0. Malformed input also lands
// on slot 0; callers that care filter it out beforehand via ParseClock.
func (g SlotGrid) SlotIndexFor(startTime string) int {
	mins, ok := ParseClock(startTime)
	if !ok {
		return 0
	}
	return 1 + mins/g.Granularity
}

// RowSpanFor returns how many rows a duration covers, at least 1.
func (g SlotGrid) RowSpanFor(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 1
	}
	return (durationMinutes + g.Granularity - 1) / g.Granularity
}

// ParseClock parses a 24-hour HH:mm string into minutes from midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// TimeToHour extracts the hour from a HH:mm string for coarse hourly
// grouping. Malformed input reports ok=false rather than panicking.
func TimeToHour(s string) (int, bool) {
	mins, ok := ParseClock(s)
	if !ok {
		return 0, false
	}
	return mins / 60, true
}

var (
	// "2:30 PM", "11 am"
	twelveHourPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*([AaPp])\.?[Mm]?\.?$`)
	// Arabic locale marker pair: ص (AM) / م (PM), on either side.
	rtlHourPattern = regexp.MustCompile(`^(?:([صم])\s*(\d{1,2})(?::(\d{2}))?|(\d{1,2})(?::(\d{2}))?\s*([صم]))$`)
	// 24-hour fallback: "14:30" or bare "14".
	twentyFourHourPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)
)

// ParseDisplayHour recovers the hour (0..23) from a rendered, possibly
// localized time label. It understands 12-hour AM/PM labels, the
// Arabic ص/م marker pair, and plain 24-hour text. Unrecognized labels
// report ok=false; they are never an error.
func ParseDisplayHour(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	if m := twelveHourPattern.FindStringSubmatch(label); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 1 || hour > 12 {
			return 0, false
		}
		pm := m[3] == "P" || m[3] == "p"
		return twelveTo24(hour, pm), true
	}

	if m := rtlHourPattern.FindStringSubmatch(label); m != nil {
		marker, raw := m[1], m[2]
		if marker == "" {
			marker, raw = m[6], m[4]
		}
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 1 || hour > 12 {
			return 0, false
		}
		return twelveTo24(hour, marker == "م"), true
	}

	if m := twentyFourHourPattern.FindStringSubmatch(label); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 0 || hour > 23 {
			return 0, false
		}
		return hour, true
	}

	return 0, false
}

func twelveTo24(hour int, pm bool) int {
	hour = hour % 12
	if pm {
		hour += 12
	}
	return hour
}

package calendar

import "testing"

func TestSlotGridRows(t *testing.T) {
	if got := NewSlotGrid(30).Rows(); got != 49 {
		t.Fatalf("expected 49 rows at 30-minute granularity, got %d", got)
	}
	if got := NewSlotGrid(60).Rows(); got != 25 {
		t.Fatalf("expected 25 rows at 60-minute granularity, got %d", got)
	}
}

func TestSlotIndexFor(t *testing.T) {
	grid := NewSlotGrid(30)
	cases := []struct {
		start string
		want  int
	}{
		{"", 0},
		{"00:00", 1},
		{"00:29", 1},
		{"00:30", 2},
		{"09:30", 20}, // 1 + 570/30
		{"23:59", 48},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := grid.SlotIndexFor(tc.start); got != tc.want {
			t.Fatalf("SlotIndexFor(%q): expected %d, got %d", tc.start, tc.want, got)
		}
	}
}

func TestRowSpanFor(t *testing.T) {
	grid := NewSlotGrid(30)
	cases := []struct {
		duration int
		want     int
	}{
		{0, 1},
		{-10, 1},
		{1, 1},
		{30, 1},
		{31, 2},
		{45, 2},
		{90, 3},
	}
	for _, tc := range cases {
		if got := grid.RowSpanFor(tc.duration); got != tc.want {
			t.Fatalf("RowSpanFor(%d): expected %d, got %d", tc.duration, tc.want, got)
		}
	}
}

func TestRowSpanMonotonicInDuration(t *testing.T) {
	grid := NewSlotGrid(30)
	prev := 0
	for d := 1; d <= 240; d++ {
		span := grid.RowSpanFor(d)
		if span < prev {
			t.Fatalf("row span decreased at duration %d: %d < %d", d, span, prev)
		}
		prev = span
	}
}

func TestTimeToHour(t *testing.T) {
	if hour, ok := TimeToHour("14:45"); !ok || hour != 14 {
		t.Fatalf("expected (14, true), got (%d, %v)", hour, ok)
	}
	for _, bad := range []string{"", "abc", "25:00", "10:99", "10"} {
		if _, ok := TimeToHour(bad); ok {
			t.Fatalf("expected malformed time %q to report ok=false", bad)
		}
	}
}

func TestParseDisplayHour(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"2:30 PM", 14, true},
		{"12 AM", 0, true},
		{"12 PM", 12, true},
		{"11 am", 11, true},
		{"م 2:30", 14, true},
		{"2:30 م", 14, true},
		{"ص 9", 9, true},
		{"14:30", 14, true},
		{"23", 23, true},
		{"not a time", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseDisplayHour(tc.label)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseDisplayHour(%q): expected (%d, %v), got (%d, %v)", tc.label, tc.want, tc.ok, got, ok)
		}
	}
}

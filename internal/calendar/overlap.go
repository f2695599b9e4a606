package calendar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sandeepkv93/clinicd/internal/model"
)

var (
	ErrUnknownOverlapPolicy = errors.New("calendar: unknown overlap policy")
	ErrUnknownGrouping      = errors.New("calendar: unknown grouping strategy")
)

// OverlapPolicy decides what happens when appointments collide at the
// same start time. The two behaviors are contradictory product
// decisions; exactly one is active at a time.
type OverlapPolicy string

const (
	// PolicyStack places colliding appointments side by side.
	PolicyStack OverlapPolicy = "stack"
	// PolicyDropDuplicates keeps only the first appointment (by
	// snapshot order) of each collision group.
	PolicyDropDuplicates OverlapPolicy = "drop-duplicates"
)

func (p OverlapPolicy) IsValid() bool {
	return p == PolicyStack || p == PolicyDropDuplicates
}

// Grouping selects the collision key for timed appointments.
type Grouping string

const (
	// GroupByExactStart groups on exact HH:mm string equality. Stable
	// and order independent; two appointments starting at different
	// minutes never share a lateral group even if their intervals
	// overlap.
	GroupByExactStart Grouping = "exact-start"
	// GroupByInterval clusters appointments whose time ranges truly
	// overlap (start1 < end2 && start2 < end1).
	GroupByInterval Grouping = "interval"
)

func (g Grouping) IsValid() bool {
	return g == GroupByExactStart || g == GroupByInterval
}

// Lateral layout constants, in percent of the day column width.
const (
	lateralMarginPct = 2.0
	lateralGapPct    = 1.0
)

// TimelinePosition places one appointment inside the week/day grid.
// Rows are 1-indexed below the all-day slot; Column/Columns describe
// the lateral stack, with OffsetPct/WidthPct as the resolved fractions.
type TimelinePosition struct {
	RowStart  int
	RowSpan   int
	Column    int
	Columns   int
	OffsetPct float64
	WidthPct  float64
	AllDay    bool
}

// Resolver lays out one day's appointments on the slot grid.
type Resolver struct {
	Grid     SlotGrid
	Policy   OverlapPolicy
	Grouping Grouping
}

func NewResolver(grid SlotGrid, policy OverlapPolicy, grouping Grouping) (Resolver, error) {
	if !policy.IsValid() {
		return Resolver{}, fmt.Errorf("%w: %q", ErrUnknownOverlapPolicy, policy)
	}
	if !grouping.IsValid() {
		return Resolver{}, fmt.Errorf("%w: %q", ErrUnknownGrouping, grouping)
	}
	return Resolver{Grid: grid, Policy: policy, Grouping: grouping}, nil
}

// Layout maps appointment ids to their timeline positions. Appointments
// with malformed times or non-positive durations are skipped with a
// warning; the rest of the day still lays out.
func (r Resolver) Layout(appointments []model.Appointment) (map[string]TimelinePosition, []Warning) {
	positions := make(map[string]TimelinePosition, len(appointments))
	var warnings []Warning

	timed := make([]model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.AllDay() {
			// All-day entries sit in slot 0 at full width and never
			// join a lateral group.
			positions[apt.ID] = TimelinePosition{
				RowStart: 0,
				RowSpan:  1,
				Column:   0,
				Columns:  1,
				WidthPct: 100,
				AllDay:   true,
			}
			continue
		}
		if _, ok := ParseClock(apt.StartTime); !ok {
			warnings = append(warnings, Warning{
				AppointmentID: apt.ID,
				Reason:        fmt.Sprintf("malformed start time %q, excluded from timeline", apt.StartTime),
			})
			continue
		}
		if apt.DurationMinutes <= 0 {
			warnings = append(warnings, Warning{
				AppointmentID: apt.ID,
				Reason:        fmt.Sprintf("non-positive duration %d, excluded from timeline", apt.DurationMinutes),
			})
			continue
		}
		timed = append(timed, apt)
	}

	if r.Policy == PolicyDropDuplicates {
		timed = dropSameStart(timed)
	}

	for _, group := range r.groups(timed) {
		r.placeGroup(group, positions)
	}
	return positions, warnings
}

// groups partitions timed appointments into lateral collision groups
// per the configured strategy. Group member order is snapshot order;
// placeGroup re-sorts deterministically.
func (r Resolver) groups(timed []model.Appointment) [][]model.Appointment {
	if r.Grouping == GroupByInterval {
		return intervalGroups(timed)
	}

	byStart := make(map[string][]model.Appointment)
	order := make([]string, 0)
	for _, apt := range timed {
		if _, seen := byStart[apt.StartTime]; !seen {
			order = append(order, apt.StartTime)
		}
		byStart[apt.StartTime] = append(byStart[apt.StartTime], apt)
	}

	out := make([][]model.Appointment, 0, len(order))
	for _, start := range order {
		out = append(out, byStart[start])
	}
	return out
}

// intervalGroups clusters appointments whose [start, end) ranges
// transitively overlap.
func intervalGroups(timed []model.Appointment) [][]model.Appointment {
	sorted := make([]model.Appointment, len(timed))
	copy(sorted, timed)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := ParseClock(sorted[i].StartTime)
		sj, _ := ParseClock(sorted[j].StartTime)
		return si < sj
	})

	var out [][]model.Appointment
	var current []model.Appointment
	clusterEnd := -1
	for _, apt := range sorted {
		start, _ := ParseClock(apt.StartTime)
		end := start + apt.DurationMinutes
		if len(current) > 0 && start < clusterEnd {
			current = append(current, apt)
			if end > clusterEnd {
				clusterEnd = end
			}
			continue
		}
		if len(current) > 0 {
			out = append(out, current)
		}
		current = []model.Appointment{apt}
		clusterEnd = end
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// dropSameStart keeps the first appointment of each exact start time,
// in snapshot order.
func dropSameStart(timed []model.Appointment) []model.Appointment {
	seen := make(map[string]bool, len(timed))
	out := make([]model.Appointment, 0, len(timed))
	for _, apt := range timed {
		if seen[apt.StartTime] {
			continue
		}
		seen[apt.StartTime] = true
		out = append(out, apt)
	}
	return out
}

func (r Resolver) placeGroup(group []model.Appointment, positions map[string]TimelinePosition) {
	// Deterministic left-to-right order: lexicographic by id.
	sort.SliceStable(group, func(i, j int) bool { return group[i].ID < group[j].ID })

	n := len(group)
	usable := 100.0
	if n > 1 {
		usable = 100.0 - 2*lateralMarginPct - float64(n-1)*lateralGapPct
	}
	width := usable / float64(n)

	for i, apt := range group {
		offset := 0.0
		if n > 1 {
			offset = lateralMarginPct + float64(i)*(width+lateralGapPct)
		}
		positions[apt.ID] = TimelinePosition{
			RowStart:  r.Grid.SlotIndexFor(apt.StartTime),
			RowSpan:   r.Grid.RowSpanFor(apt.DurationMinutes),
			Column:    i,
			Columns:   n,
			OffsetPct: offset,
			WidthPct:  width,
		}
	}
}

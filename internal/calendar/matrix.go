package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

var ErrUnknownView = errors.New("calendar: unknown view")

type View string

const (
	ViewMonthly View = "monthly"
	ViewWeekly  View = "weekly"
	ViewDaily   View = "daily"
)

func (v View) IsValid() bool {
	switch v {
	case ViewMonthly, ViewWeekly, ViewDaily:
		return true
	default:
		return false
	}
}

// WeekStart selects which weekday opens a week. It applies to month
// padding, the weekly view and day-name ordering alike.
type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

func (w WeekStart) IsValid() bool {
	return w == WeekStartMonday || w == WeekStartSunday
}

// offset returns how many days wd lies after the start of the week.
func (w WeekStart) offset(wd time.Weekday) int {
	if w == WeekStartSunday {
		return int(wd)
	}
	// Monday start: Sunday wraps to position 6.
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// MonthVisibleLimit caps inline appointments per month-view cell;
// the remainder is surfaced as an overflow count.
const MonthVisibleLimit = 2

// MonthCells is the fixed month grid size: 6 full weeks.
const MonthCells = 42

// Cell is one day in the rendered grid.
type Cell struct {
	Date                time.Time
	InFocusedPeriod     bool
	IsToday             bool
	VisibleAppointments []model.Appointment
	OverflowCount       int
}

// MatrixBuilder produces the ordered day cells for a view mode and
// anchor date.
type MatrixBuilder struct {
	WeekStart WeekStart
}

func NewMatrixBuilder(weekStart WeekStart) MatrixBuilder {
	if !weekStart.IsValid() {
		weekStart = WeekStartMonday
	}
	return MatrixBuilder{WeekStart: weekStart}
}

// Build returns the cells for the given view anchored at anchor.
// Monthly grids are always 42 cells, weekly 7, daily 1. An unknown
// view is a configuration error and fails the whole call.
func (b MatrixBuilder) Build(view View, anchor, today time.Time, idx *Index) ([]Cell, error) {
	switch view {
	case ViewMonthly:
		return b.buildMonth(anchor, today, idx), nil
	case ViewWeekly:
		return b.buildWeek(anchor, today, idx), nil
	case ViewDaily:
		return []Cell{b.makeCell(anchor, true, today, idx, 0)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

// StartOfWeek returns the first day of the week containing t, per the
// configured week-start convention.
func (b MatrixBuilder) StartOfWeek(t time.Time) time.Time {
	return midnight(t).AddDate(0, 0, -b.WeekStart.offset(t.Weekday()))
}

func (b MatrixBuilder) buildMonth(anchor, today time.Time, idx *Index) []Cell {
	year, month, _ := anchor.Date()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, anchor.Location()).Day()

	cells := make([]Cell, 0, MonthCells)

	// Left padding: trailing days of the previous month.
	for pad := b.WeekStart.offset(firstOfMonth.Weekday()); pad > 0; pad-- {
		day := firstOfMonth.AddDate(0, 0, -pad)
		cells = append(cells, b.makeCell(day, false, today, idx, 0))
	}

	for d := 0; d < daysInMonth; d++ {
		day := firstOfMonth.AddDate(0, 0, d)
		cells = append(cells, b.makeCell(day, true, today, idx, MonthVisibleLimit))
	}

	// Right padding: leading days of the next month up to 6 weeks.
	next := firstOfMonth.AddDate(0, 1, 0)
	for d := 0; len(cells) < MonthCells; d++ {
		day := next.AddDate(0, 0, d)
		cells = append(cells, b.makeCell(day, false, today, idx, 0))
	}

	return cells
}

func (b MatrixBuilder) buildWeek(anchor, today time.Time, idx *Index) []Cell {
	start := b.StartOfWeek(anchor)
	cells := make([]Cell, 0, 7)
	for d := 0; d < 7; d++ {
		cells = append(cells, b.makeCell(start.AddDate(0, 0, d), true, today, idx, 0))
	}
	return cells
}

// makeCell derives one day cell. visibleLimit 0 means unlimited.
func (b MatrixBuilder) makeCell(day time.Time, focused bool, today time.Time, idx *Index, visibleLimit int) Cell {
	day = midnight(day)
	appointments := idx.ForDate(day)
	visible := appointments
	overflow := 0
	if visibleLimit > 0 && len(appointments) > visibleLimit {
		visible = appointments[:visibleLimit]
		overflow = len(appointments) - visibleLimit
	}
	return Cell{
		Date:                day,
		InFocusedPeriod:     focused,
		IsToday:             SameDay(day, today),
		VisibleAppointments: visible,
		OverflowCount:       overflow,
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

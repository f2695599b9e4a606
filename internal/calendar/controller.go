package calendar

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/clinicd/internal/locale"
	"github.com/sandeepkv93/clinicd/internal/model"
)

// StatusChange is emitted when the controller applies a status edit to
// its in-memory snapshot. Persisting it is the caller's job; the
// controller never talks to storage.
type StatusChange struct {
	AppointmentID string
	NewStatus     model.AppointmentStatus
}

// RenderModel is the complete derived output of one render pass. It is
// recomputed whole on every transition and holds no references into
// controller state other than the immutable snapshot values.
type RenderModel struct {
	View     View
	Anchor   time.Time
	Cells    []Cell
	Timeline map[string]TimelinePosition
	Warnings []Warning
	Locale   locale.Locale
}

// Controller is the state machine over {view, anchor, snapshot,
// locale}. It is pure computation plus a little owned state; it must
// only be driven from a single goroutine (the UI event loop).
type Controller struct {
	view          View
	anchor        time.Time
	loc           locale.Locale
	builder       MatrixBuilder
	resolver      Resolver
	snapshot      []model.Appointment
	index         *Index
	indexWarnings []Warning
	now           func() time.Time
}

// ControllerConfig carries the layout choices the controller applies
// uniformly across views.
type ControllerConfig struct {
	WeekStart   WeekStart
	SlotMinutes int
	Policy      OverlapPolicy
	Grouping    Grouping
	Locale      locale.Locale
	Now         func() time.Time
}

func NewController(cfg ControllerConfig) (*Controller, error) {
	resolver, err := NewResolver(NewSlotGrid(cfg.SlotMinutes), cfg.Policy, cfg.Grouping)
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		view:     ViewMonthly,
		anchor:   now(),
		loc:      cfg.Locale,
		builder:  NewMatrixBuilder(cfg.WeekStart),
		resolver: resolver,
		now:      now,
	}
	c.SetAppointments(nil)
	return c, nil
}

func (c *Controller) View() View            { return c.view }
func (c *Controller) Anchor() time.Time     { return c.anchor }
func (c *Controller) Locale() locale.Locale { return c.loc }

// Snapshot returns the current appointment snapshot. Callers must not
// mutate it; edits go through ChangeStatus or SetAppointments.
func (c *Controller) Snapshot() []model.Appointment { return c.snapshot }

// SetView switches the zoom level. The anchor is kept, so switching
// month -> week shows the week containing the anchor.
func (c *Controller) SetView(v View) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	c.view = v
	return nil
}

// PreviousPeriod shifts the anchor back one month, week or day.
func (c *Controller) PreviousPeriod() { c.shift(-1) }

// NextPeriod shifts the anchor forward one month, week or day.
func (c *Controller) NextPeriod() { c.shift(1) }

func (c *Controller) shift(delta int) {
	switch c.view {
	case ViewMonthly:
		c.anchor = c.anchor.AddDate(0, delta, 0)
	case ViewWeekly:
		c.anchor = c.anchor.AddDate(0, 0, 7*delta)
	default:
		c.anchor = c.anchor.AddDate(0, 0, delta)
	}
}

// GoToToday resets the anchor to the current date.
func (c *Controller) GoToToday() {
	c.anchor = c.now()
}

// GoToDate jumps the anchor to an arbitrary day.
func (c *Controller) GoToDate(day time.Time) {
	c.anchor = day
}

func (c *Controller) SetLocale(loc locale.Locale) {
	c.loc = loc
}

// SetAppointments replaces the snapshot and rebuilds the index.
func (c *Controller) SetAppointments(appointments []model.Appointment) {
	c.snapshot = appointments
	c.index, c.indexWarnings = NewIndex(appointments)
}

// ChangeStatus replaces the snapshot with a copy where the target
// appointment carries the new status, and returns the event for the
// caller to persist. The previous snapshot slice is left untouched so
// concurrent readers of an older render stay valid.
func (c *Controller) ChangeStatus(id string, status model.AppointmentStatus) (StatusChange, error) {
	if !status.IsValid() {
		return StatusChange{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	found := false
	next := make([]model.Appointment, len(c.snapshot))
	for i, apt := range c.snapshot {
		if apt.ID == id {
			next[i] = apt.WithStatus(status)
			found = true
			continue
		}
		next[i] = apt
	}
	if !found {
		return StatusChange{}, fmt.Errorf("calendar: appointment %q not in snapshot", id)
	}
	c.SetAppointments(next)
	return StatusChange{AppointmentID: id, NewStatus: status}, nil
}

// Render recomputes the full cell matrix and, for week/day views, the
// per-appointment timeline positions. Data-quality warnings ride along
// with the output; only an invalid view fails the call.
func (c *Controller) Render() (RenderModel, error) {
	today := c.now()
	cells, err := c.builder.Build(c.view, c.anchor, today, c.index)
	if err != nil {
		return RenderModel{}, err
	}

	out := RenderModel{
		View:     c.view,
		Anchor:   c.anchor,
		Cells:    cells,
		Locale:   c.loc,
		Warnings: append([]Warning(nil), c.indexWarnings...),
	}

	if c.view == ViewWeekly || c.view == ViewDaily {
		out.Timeline = make(map[string]TimelinePosition)
		for _, cell := range cells {
			positions, warnings := c.resolver.Layout(c.index.ForDate(cell.Date))
			for id, pos := range positions {
				out.Timeline[id] = pos
			}
			out.Warnings = append(out.Warnings, warnings...)
		}
	}
	return out, nil
}

// DayNames returns the localized weekday header in week-start order.
func (c *Controller) DayNames() []string {
	return c.loc.DayNames(c.builder.WeekStart == WeekStartSunday)
}

package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/clinicd/internal/locale"
	"github.com/sandeepkv93/clinicd/internal/model"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c, err := NewController(ControllerConfig{
		WeekStart:   WeekStartMonday,
		SlotMinutes: 30,
		Policy:      PolicyStack,
		Grouping:    GroupByExactStart,
		Locale:      locale.ForLanguage(locale.LangEnglish),
		Now: func() time.Time {
			return time.Date(2026, 2, 9, 10, 0, 0, 0, time.Local)
		},
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func TestControllerDefaultsToMonthlyAtToday(t *testing.T) {
	c := newTestController(t)
	if c.View() != ViewMonthly {
		t.Fatalf("expected monthly default, got %q", c.View())
	}
	out, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out.Cells) != MonthCells {
		t.Fatalf("expected 42 cells, got %d", len(out.Cells))
	}
	if out.Timeline != nil {
		t.Fatal("monthly render must not produce a timeline")
	}
}

func TestControllerNavigationShiftsByMode(t *testing.T) {
	c := newTestController(t)

	c.NextPeriod()
	if got := DateKey(c.Anchor()); got != "2026-03-09" {
		t.Fatalf("monthly next: expected 2026-03-09, got %s", got)
	}
	c.PreviousPeriod()

	if err := c.SetView(ViewWeekly); err != nil {
		t.Fatalf("set weekly: %v", err)
	}
	c.NextPeriod()
	if got := DateKey(c.Anchor()); got != "2026-02-16" {
		t.Fatalf("weekly next: expected 2026-02-16, got %s", got)
	}

	if err := c.SetView(ViewDaily); err != nil {
		t.Fatalf("set daily: %v", err)
	}
	c.PreviousPeriod()
	if got := DateKey(c.Anchor()); got != "2026-02-15" {
		t.Fatalf("daily previous: expected 2026-02-15, got %s", got)
	}

	c.GoToToday()
	if got := DateKey(c.Anchor()); got != "2026-02-09" {
		t.Fatalf("go to today: expected 2026-02-09, got %s", got)
	}
}

func TestControllerSetViewKeepsAnchor(t *testing.T) {
	c := newTestController(t)
	c.GoToDate(time.Date(2026, 5, 20, 0, 0, 0, 0, time.Local))
	if err := c.SetView(ViewWeekly); err != nil {
		t.Fatalf("set view: %v", err)
	}
	if got := DateKey(c.Anchor()); got != "2026-05-20" {
		t.Fatalf("expected anchor kept across view switch, got %s", got)
	}
}

func TestControllerRejectsUnknownView(t *testing.T) {
	c := newTestController(t)
	if err := c.SetView(View("quarterly")); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got: %v", err)
	}
}

func TestControllerWeeklyRenderProducesTimeline(t *testing.T) {
	c := newTestController(t)
	c.SetAppointments([]model.Appointment{
		{ID: "apt-1", Date: "2026-02-09", StartTime: "09:30", DurationMinutes: 45, Status: model.StatusUpcoming},
		{ID: "apt-2", Date: "2026-02-11", StartTime: "", Status: model.StatusPending},
	})
	if err := c.SetView(ViewWeekly); err != nil {
		t.Fatalf("set view: %v", err)
	}

	out, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out.Cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(out.Cells))
	}
	pos, ok := out.Timeline["apt-1"]
	if !ok {
		t.Fatal("expected timeline position for apt-1")
	}
	if pos.RowStart != 20 || pos.RowSpan != 2 {
		t.Fatalf("unexpected position: %+v", pos)
	}
	if !out.Timeline["apt-2"].AllDay {
		t.Fatal("expected apt-2 in the all-day slot")
	}
}

func TestControllerChangeStatusReplacesSnapshot(t *testing.T) {
	c := newTestController(t)
	original := []model.Appointment{
		{ID: "apt-1", Date: "2026-02-09", StartTime: "09:00", DurationMinutes: 30, Status: model.StatusPending},
	}
	c.SetAppointments(original)

	change, err := c.ChangeStatus("apt-1", model.StatusComplete)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if change.AppointmentID != "apt-1" || change.NewStatus != model.StatusComplete {
		t.Fatalf("unexpected change event: %+v", change)
	}
	if original[0].Status != model.StatusPending {
		t.Fatal("original snapshot mutated in place")
	}
	if c.Snapshot()[0].Status != model.StatusComplete {
		t.Fatalf("expected new snapshot with COMPLETE, got %q", c.Snapshot()[0].Status)
	}
}

func TestControllerChangeStatusValidation(t *testing.T) {
	c := newTestController(t)
	c.SetAppointments([]model.Appointment{
		{ID: "apt-1", Date: "2026-02-09", StartTime: "09:00", DurationMinutes: 30, Status: model.StatusPending},
	})

	if _, err := c.ChangeStatus("apt-1", model.AppointmentStatus("DONE")); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
	if _, err := c.ChangeStatus("missing", model.StatusComplete); err == nil {
		t.Fatal("expected error for unknown appointment id")
	}
}

func TestControllerRenderCarriesIndexWarnings(t *testing.T) {
	c := newTestController(t)
	c.SetAppointments([]model.Appointment{
		{ID: "apt-bad", Date: "not-a-date", StartTime: "09:00", DurationMinutes: 30},
		{ID: "apt-ok", Date: "2026-02-09", StartTime: "09:00", DurationMinutes: 30},
	})
	out, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out.Warnings) != 1 || out.Warnings[0].AppointmentID != "apt-bad" {
		t.Fatalf("expected index warning for apt-bad, got %v", out.Warnings)
	}
}

func TestControllerRenderIdempotent(t *testing.T) {
	c := newTestController(t)
	c.SetAppointments([]model.Appointment{
		{ID: "apt-1", Date: "2026-02-09", StartTime: "10:00", DurationMinutes: 30, Status: model.StatusUpcoming},
	})
	if err := c.SetView(ViewDaily); err != nil {
		t.Fatalf("set view: %v", err)
	}
	first, err := c.Render()
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := c.Render()
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if len(first.Cells) != len(second.Cells) || len(first.Timeline) != len(second.Timeline) {
		t.Fatal("identical inputs produced different renders")
	}
	if first.Timeline["apt-1"] != second.Timeline["apt-1"] {
		t.Fatalf("timeline positions differ: %+v vs %+v", first.Timeline["apt-1"], second.Timeline["apt-1"])
	}
}

func TestControllerDayNamesFollowWeekStart(t *testing.T) {
	c := newTestController(t)
	names := c.DayNames()
	if names[0] != "Mon" {
		t.Fatalf("expected Monday-first day names, got %v", names)
	}
}

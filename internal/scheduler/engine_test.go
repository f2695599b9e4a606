package scheduler

import (
	"testing"
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(AppointmentReminder{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(AppointmentReminder{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitReminder(t, engine.C(), time.Second)
	second := waitReminder(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(AppointmentReminder{
			ID:        "rem",
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule reminder: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped reminders > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(AppointmentReminder{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleUpcomingFiltersSnapshot(t *testing.T) {
	engine := NewEngine(8)

	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.Local)
	snapshot := []model.Appointment{
		// Starts later today: reminder scheduled.
		{ID: "apt-1", PatientName: "Sara", Date: "2026-02-09", StartTime: "10:00", DurationMinutes: 30},
		// Already past trigger: skipped.
		{ID: "apt-2", PatientName: "Omar", Date: "2026-02-09", StartTime: "08:05", DurationMinutes: 30},
		// All-day: skipped.
		{ID: "apt-3", PatientName: "Lina", Date: "2026-02-09"},
		// Malformed date: skipped.
		{ID: "apt-4", PatientName: "Nour", Date: "bogus", StartTime: "12:00", DurationMinutes: 30},
	}

	scheduled := engine.ScheduleUpcoming(snapshot, 15*time.Minute, now)
	if scheduled != 1 {
		t.Fatalf("expected 1 scheduled reminder, got %d", scheduled)
	}

	rem, ok := engine.peek()
	if !ok {
		t.Fatal("expected a queued reminder")
	}
	if rem.AppointmentID != "apt-1" {
		t.Fatalf("expected reminder for apt-1, got %s", rem.AppointmentID)
	}
	want := time.Date(2026, 2, 9, 9, 45, 0, 0, time.Local)
	if !rem.TriggerAt.Equal(want) {
		t.Fatalf("expected trigger at %s, got %s", want, rem.TriggerAt)
	}
}

func waitReminder(t *testing.T, ch <-chan AppointmentReminder, timeout time.Duration) AppointmentReminder {
	t.Helper()
	select {
	case rem := <-ch:
		return rem
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for reminder")
		return AppointmentReminder{}
	}
}

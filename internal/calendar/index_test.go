package calendar

import (
	"testing"
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

func TestIndexForDatePreservesOrder(t *testing.T) {
	snapshot := []model.Appointment{
		{ID: "apt-1", Date: "2026-02-09", StartTime: "10:00"},
		{ID: "apt-2", Date: "2026-02-10", StartTime: "09:00"},
		{ID: "apt-3", Date: "2026-02-09", StartTime: "08:00"},
	}
	idx, warnings := NewIndex(snapshot)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	day := time.Date(2026, 2, 9, 15, 30, 0, 0, time.Local)
	got := idx.ForDate(day)
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
	if got[0].ID != "apt-1" || got[1].ID != "apt-3" {
		t.Fatalf("expected snapshot order [apt-1 apt-3], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestIndexExcludesMalformedDatesWithWarning(t *testing.T) {
	snapshot := []model.Appointment{
		{ID: "apt-ok", Date: "2026-02-09"},
		{ID: "apt-bad", Date: "09/02/2026"},
		{ID: "apt-empty", Date: ""},
	}
	idx, warnings := NewIndex(snapshot)
	if idx.Len() != 1 {
		t.Fatalf("expected 1 indexed appointment, got %d", idx.Len())
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].AppointmentID != "apt-bad" || warnings[1].AppointmentID != "apt-empty" {
		t.Fatalf("unexpected warning ids: %v", warnings)
	}
}

func TestIndexForKeyMissingDay(t *testing.T) {
	idx, _ := NewIndex(nil)
	if got := idx.ForKey("2026-02-09"); len(got) != 0 {
		t.Fatalf("expected empty bucket, got %d", len(got))
	}
}

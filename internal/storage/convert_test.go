package storage

import (
	"testing"
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

func TestDomainRoundTrip(t *testing.T) {
	created := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	row := Appointment{
		ID:              "apt-1",
		PatientID:       "pat-1",
		PatientName:     "Sara Ahmed",
		Date:            "2026-02-09",
		StartTime:       "10:00",
		EndTime:         "10:30",
		DurationMinutes: 30,
		Status:          "UPCOMING",
		Notes:           "first visit",
		ClinicID:        "cl-1",
		ClinicName:      "Downtown",
		ClinicRoom:      "3",
		DentistID:       "den-1",
		DentistName:     "Dr. Hassan",
		CreatedAt:       created,
	}

	apt := row.Domain()
	if apt.Status != model.StatusUpcoming {
		t.Fatalf("unexpected status: %q", apt.Status)
	}
	if apt.Clinic == nil || apt.Clinic.Name != "Downtown" || apt.Clinic.Room != "3" {
		t.Fatalf("unexpected clinic: %+v", apt.Clinic)
	}
	if apt.Dentist == nil || apt.Dentist.Name != "Dr. Hassan" {
		t.Fatalf("unexpected dentist: %+v", apt.Dentist)
	}

	back := FromDomain(apt, created)
	if back != row {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, row)
	}
}

func TestDomainOmitsEmptyClinicAndDentist(t *testing.T) {
	apt := Appointment{ID: "apt-2", PatientName: "Omar", Date: "2026-02-10", Status: "PENDING"}.Domain()
	if apt.Clinic != nil || apt.Dentist != nil {
		t.Fatalf("expected nil clinic and dentist, got %+v %+v", apt.Clinic, apt.Dentist)
	}
}

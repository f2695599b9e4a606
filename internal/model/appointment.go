package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid appointment status")
	ErrInvalidDate     = errors.New("model: invalid appointment date")
	ErrInvalidDuration = errors.New("model: invalid appointment duration")
)

type AppointmentStatus string

const (
	StatusComplete AppointmentStatus = "COMPLETE"
	StatusUpcoming AppointmentStatus = "UPCOMING"
	StatusPending  AppointmentStatus = "PENDING"
	StatusCancel   AppointmentStatus = "CANCEL"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusComplete, StatusUpcoming, StatusPending, StatusCancel:
		return true
	default:
		return false
	}
}

// Label returns the display label for a status. Unknown values fall
// through to the raw string so that bad data is visible, not hidden.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusComplete:
		return "Complete"
	case StatusUpcoming:
		return "Upcoming"
	case StatusPending:
		return "Pending"
	case StatusCancel:
		return "Cancel"
	default:
		return string(s)
	}
}

// Severity maps a status to the render severity used by the status
// legend and appointment tags.
func (s AppointmentStatus) Severity() Severity {
	switch s {
	case StatusComplete:
		return SeveritySuccess
	case StatusUpcoming:
		return SeverityInfo
	case StatusPending:
		return SeverityWarn
	case StatusCancel:
		return SeverityDanger
	default:
		return SeveritySecondary
	}
}

type Severity string

const (
	SeveritySuccess   Severity = "success"
	SeverityInfo      Severity = "info"
	SeverityWarn      Severity = "warn"
	SeverityDanger    Severity = "danger"
	SeveritySecondary Severity = "secondary"
)

// AllStatuses is the fixed status legend ordering.
func AllStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusComplete, StatusUpcoming, StatusPending, StatusCancel}
}

type Clinic struct {
	ID   string
	Name string
	Room string
}

type Dentist struct {
	ID   string
	Name string
}

// Appointment is a single scheduled visit. Date is a local calendar
// day key (YYYY-MM-DD); StartTime is HH:mm or empty for an all-day
// entry, in which case DurationMinutes is ignored.
type Appointment struct {
	ID              string
	PatientName     string
	PatientID       string
	Date            string
	StartTime       string
	EndTime         string
	DurationMinutes int
	Status          AppointmentStatus
	Notes           string
	Clinic          *Clinic
	Dentist         *Dentist
}

func (a Appointment) AllDay() bool {
	return strings.TrimSpace(a.StartTime) == ""
}

func (a Appointment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: appointment id is required")
	}
	if strings.TrimSpace(a.PatientName) == "" {
		return errors.New("model: appointment patient name is required")
	}
	if !dateKeyPattern(a.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, a.Date)
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if !a.AllDay() && a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, a.DurationMinutes)
	}
	return nil
}

// WithStatus returns a copy with the status replaced. Appointments are
// treated as immutable values; callers swap whole records.
func (a Appointment) WithStatus(s AppointmentStatus) Appointment {
	a.Status = s
	return a
}

func dateKeyPattern(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

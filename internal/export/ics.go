// Package export serializes appointment snapshots to iCalendar files so
// schedules can be opened in external calendar clients.
package export

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sandeepkv93/clinicd/internal/calendar"
	"github.com/sandeepkv93/clinicd/internal/model"
)

const productID = "-//clinicd//calendar//EN"

// Warning reports an appointment that could not be exported.
type Warning struct {
	AppointmentID string
	Reason        string
}

// Calendar builds an iCalendar document from the snapshot. Appointments
// with unparseable dates or times are skipped and reported as warnings
// rather than aborting the export.
func Calendar(appointments []model.Appointment) (*ical.Calendar, []Warning) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	warnings := make([]Warning, 0)
	for _, apt := range appointments {
		day, err := calendar.ParseDateKey(apt.Date)
		if err != nil {
			warnings = append(warnings, Warning{AppointmentID: apt.ID, Reason: fmt.Sprintf("bad date %q", apt.Date)})
			continue
		}

		var start, end time.Time
		allDay := apt.AllDay()
		if allDay {
			start = day
			end = day.AddDate(0, 0, 1)
		} else {
			mins, ok := calendar.ParseClock(apt.StartTime)
			if !ok {
				warnings = append(warnings, Warning{AppointmentID: apt.ID, Reason: fmt.Sprintf("bad start time %q", apt.StartTime)})
				continue
			}
			duration := apt.DurationMinutes
			if duration <= 0 {
				duration = calendar.DefaultSlotMinutes
			}
			start = day.Add(time.Duration(mins) * time.Minute)
			end = start.Add(time.Duration(duration) * time.Minute)
		}

		ev := cal.AddEvent(apt.ID + "@clinicd")
		ev.SetSummary(apt.PatientName)
		if apt.Notes != "" {
			ev.SetDescription(apt.Notes)
		}
		if apt.Clinic != nil && apt.Clinic.Name != "" {
			ev.SetLocation(apt.Clinic.Name)
		}
		ev.SetProperty(ical.ComponentPropertyStatus, string(apt.Status))
		if allDay {
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(end)
		} else {
			ev.SetStartAt(start)
			ev.SetEndAt(end)
		}
	}
	return cal, warnings
}

// WriteFile serializes the snapshot and writes it to path.
func WriteFile(path string, appointments []model.Appointment) ([]Warning, error) {
	cal, warnings := Calendar(appointments)
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return warnings, fmt.Errorf("export: write %s: %w", path, err)
	}
	return warnings, nil
}

package storage

import (
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

// Domain converts a stored row into the calendar domain value.
func (a Appointment) Domain() model.Appointment {
	out := model.Appointment{
		ID:              a.ID,
		PatientName:     a.PatientName,
		PatientID:       a.PatientID,
		Date:            a.Date,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes,
		Status:          model.AppointmentStatus(a.Status),
		Notes:           a.Notes,
	}
	if a.ClinicID != "" || a.ClinicName != "" {
		out.Clinic = &model.Clinic{ID: a.ClinicID, Name: a.ClinicName, Room: a.ClinicRoom}
	}
	if a.DentistID != "" || a.DentistName != "" {
		out.Dentist = &model.Dentist{ID: a.DentistID, Name: a.DentistName}
	}
	return out
}

// FromDomain flattens a domain appointment into a storable row.
func FromDomain(apt model.Appointment, createdAt time.Time) Appointment {
	out := Appointment{
		ID:              apt.ID,
		PatientID:       apt.PatientID,
		PatientName:     apt.PatientName,
		Date:            apt.Date,
		StartTime:       apt.StartTime,
		EndTime:         apt.EndTime,
		DurationMinutes: apt.DurationMinutes,
		Status:          string(apt.Status),
		Notes:           apt.Notes,
		CreatedAt:       createdAt,
	}
	if apt.Clinic != nil {
		out.ClinicID = apt.Clinic.ID
		out.ClinicName = apt.Clinic.Name
		out.ClinicRoom = apt.Clinic.Room
	}
	if apt.Dentist != nil {
		out.DentistID = apt.Dentist.ID
		out.DentistName = apt.Dentist.Name
	}
	return out
}

// DomainAll converts a list of stored rows.
func DomainAll(rows []Appointment) []model.Appointment {
	out := make([]model.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Domain())
	}
	return out
}

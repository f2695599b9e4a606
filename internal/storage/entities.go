package storage

import "time"

type Appointment struct {
	ID              string
	PatientID       string
	PatientName     string
	Date            string
	StartTime       string
	EndTime         string
	DurationMinutes int
	Status          string
	Notes           string
	ClinicID        string
	ClinicName      string
	ClinicRoom      string
	DentistID       string
	DentistName     string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type Patient struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Notes     string
	CreatedAt time.Time
}

type AppointmentListFilter struct {
	Status   string
	DateFrom string
	DateTo   string
	Limit    int
	Offset   int
}

type PatientListFilter struct {
	Limit  int
	Offset int
}

package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateAppointment(ctx context.Context, in Appointment) error
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	UpdateAppointment(ctx context.Context, in Appointment) error
	UpdateAppointmentStatus(ctx context.Context, id, status string) error
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, filter AppointmentListFilter) ([]Appointment, error)

	CreatePatient(ctx context.Context, in Patient) error
	GetPatient(ctx context.Context, id string) (Patient, error)
	UpdatePatient(ctx context.Context, in Patient) error
	DeletePatient(ctx context.Context, id string) error
	ListPatients(ctx context.Context, filter PatientListFilter) ([]Patient, error)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateAppointment(ctx context.Context, in Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (id, patient_id, patient_name, date, start_time, end_time, duration_minutes, status, notes,
			clinic_id, clinic_name, clinic_room, dentist_id, dentist_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.PatientID, in.PatientName, in.Date, in.StartTime, in.EndTime, in.DurationMinutes, in.Status, in.Notes,
		in.ClinicID, in.ClinicName, in.ClinicRoom, in.DentistID, in.DentistName, mustTime(in.CreatedAt), nullTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, patient_name, date, start_time, end_time, duration_minutes, status, notes,
			clinic_id, clinic_name, clinic_room, dentist_id, dentist_name, created_at, updated_at
		FROM appointments WHERE id = ?`, id)
	apt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return apt, nil
}

func (r *SQLiteRepository) UpdateAppointment(ctx context.Context, in Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET patient_id = ?, patient_name = ?, date = ?, start_time = ?, end_time = ?, duration_minutes = ?, status = ?, notes = ?,
			clinic_id = ?, clinic_name = ?, clinic_room = ?, dentist_id = ?, dentist_name = ?, updated_at = ?
		WHERE id = ?`,
		in.PatientID, in.PatientName, in.Date, in.StartTime, in.EndTime, in.DurationMinutes, in.Status, in.Notes,
		in.ClinicID, in.ClinicName, in.ClinicRoom, in.DentistID, in.DentistName, nullTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`,
		status, mustTime(time.Now()), id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteAppointment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListAppointments(ctx context.Context, filter AppointmentListFilter) ([]Appointment, error) {
	query := `SELECT id, patient_id, patient_name, date, start_time, end_time, duration_minutes, status, notes,
		clinic_id, clinic_name, clinic_room, dentist_id, dentist_name, created_at, updated_at FROM appointments`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.DateFrom != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.DateTo)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date ASC, start_time ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		apt, scanErr := scanAppointment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, apt)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreatePatient(ctx context.Context, in Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, phone, email, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Phone, in.Email, in.Notes, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetPatient(ctx context.Context, id string) (Patient, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, phone, email, notes, created_at FROM patients WHERE id = ?`, id)
	item, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Patient{}, ErrNotFound
		}
		return Patient{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdatePatient(ctx context.Context, in Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients SET name = ?, phone = ?, email = ?, notes = ? WHERE id = ?`,
		in.Name, in.Phone, in.Email, in.Notes, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeletePatient(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListPatients(ctx context.Context, filter PatientListFilter) ([]Patient, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, name, phone, email, notes, created_at FROM patients ORDER BY name ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Patient, 0)
	for rows.Next() {
		item, scanErr := scanPatient(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(s scanner) (Appointment, error) {
	var out Appointment
	var created string
	var updated sql.NullString
	if err := s.Scan(&out.ID, &out.PatientID, &out.PatientName, &out.Date, &out.StartTime, &out.EndTime, &out.DurationMinutes,
		&out.Status, &out.Notes, &out.ClinicID, &out.ClinicName, &out.ClinicRoom, &out.DentistID, &out.DentistName,
		&created, &updated); err != nil {
		return Appointment{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Appointment{}, err
	}
	updatedAt, err := parseNullableTime(updated)
	if err != nil {
		return Appointment{}, err
	}
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanPatient(s scanner) (Patient, error) {
	var out Patient
	var created string
	if err := s.Scan(&out.ID, &out.Name, &out.Phone, &out.Email, &out.Notes, &created); err != nil {
		return Patient{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Patient{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

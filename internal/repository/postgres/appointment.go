package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_uid, doctor_id, appointment_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PatientUID,
		apt.DoctorID,
		apt.AppointmentDate,
		apt.Reason,
		apt.Status,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, model.AppointmentStatusCancelled, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientUID string) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.patient_uid, a.doctor_id, a.appointment_date, a.reason, a.status,
			a.created_at, a.updated_at, d.name AS doctor_name
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.patient_uid = $1
		ORDER BY a.appointment_date DESC
	`
	var apts []*model.Appointment
	if err := r.db.SelectContext(ctx, &apts, query, patientUID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.patient_uid, a.doctor_id, a.appointment_date, a.reason, a.status,
			a.created_at, a.updated_at, p.name AS patient_name
		FROM appointments a
		JOIN patients p ON a.patient_uid = p.uid
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC
	`
	var apts []*model.Appointment
	if err := r.db.SelectContext(ctx, &apts, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
)

type medicalRecordRepository struct {
	db *sqlx.DB
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) CreateWithMedications(ctx context.Context, record *model.MedicalRecord, meds []*model.PrescribedMedication) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO medical_records (id, patient_uid, doctor_id, record_date, disease_history, prescriptions)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, query,
		record.ID,
		record.PatientUID,
		record.DoctorID,
		record.RecordDate,
		record.DiseaseHistory,
		record.Prescriptions,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}

	medQuery := `
		INSERT INTO prescribed_medications (id, patient_uid, record_id, name, dosage,
			instructions, frequency, alert_times, is_active, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, med := range meds {
		med.CreatedAt = time.Now()
		_, err = tx.ExecContext(ctx, medQuery,
			med.ID,
			med.PatientUID,
			med.RecordID,
			med.Name,
			med.Dosage,
			med.Instructions,
			med.Frequency,
			med.AlertTimes,
			med.IsActive,
			med.EndDate,
			med.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create prescribed medication: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientUID string) ([]*model.MedicalRecord, error) {
	query := `
		SELECT mr.id, mr.patient_uid, mr.doctor_id, mr.record_date, mr.disease_history,
			mr.prescriptions, d.name AS doctor_name
		FROM medical_records mr
		JOIN doctors d ON mr.doctor_id = d.id
		WHERE mr.patient_uid = $1
		ORDER BY mr.record_date DESC
	`
	var records []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &records, query, patientUID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

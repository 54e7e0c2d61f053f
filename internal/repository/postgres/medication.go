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

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) ListActiveForPatient(ctx context.Context, patientUID string, today time.Time) ([]*model.PrescribedMedication, error) {
	// Active means the flag is set and the prescription has not expired.
	query := `
		SELECT * FROM prescribed_medications
		WHERE patient_uid = $1 AND is_active = TRUE
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY created_at DESC
	`
	var meds []*model.PrescribedMedication
	if err := r.db.SelectContext(ctx, &meds, query, patientUID, today); err != nil {
		return nil, fmt.Errorf("failed to list active medications: %w", err)
	}
	return meds, nil
}

func (r *medicationRepository) ListAllActive(ctx context.Context, today time.Time) ([]*model.PrescribedMedication, error) {
	query := `
		SELECT * FROM prescribed_medications
		WHERE is_active = TRUE
			AND (end_date IS NULL OR end_date >= $1)
		ORDER BY patient_uid, created_at DESC
	`
	var meds []*model.PrescribedMedication
	if err := r.db.SelectContext(ctx, &meds, query, today); err != nil {
		return nil, fmt.Errorf("failed to list active medications: %w", err)
	}
	return meds, nil
}

func (r *medicationRepository) ListForRecord(ctx context.Context, recordID uuid.UUID) ([]*model.PrescribedMedication, error) {
	query := `SELECT * FROM prescribed_medications WHERE record_id = $1`
	var meds []*model.PrescribedMedication
	if err := r.db.SelectContext(ctx, &meds, query, recordID); err != nil {
		return nil, fmt.Errorf("failed to list medications for record: %w", err)
	}
	return meds, nil
}

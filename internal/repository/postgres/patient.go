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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) CreateWithUser(ctx context.Context, user *model.User, patient *model.Patient) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := insertUser(ctx, tx, user); err != nil {
		return err
	}

	patient.CreatedAt = now
	patient.UpdatedAt = now
	query := `
		INSERT INTO patients (id, user_id, uid, name, date_of_birth, gender, contact_info,
			emergency_contact_name, emergency_contact_relationship, emergency_contact_phone,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, query,
		patient.ID,
		patient.UserID,
		patient.UID,
		patient.Name,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactInfo,
		patient.EmergencyContactName,
		patient.EmergencyContactRelationship,
		patient.EmergencyContactPhone,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByUID(ctx context.Context, uid string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE uid = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, uid); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE user_id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET date_of_birth = $1, gender = $2, contact_info = $3,
			emergency_contact_name = $4, emergency_contact_relationship = $5,
			emergency_contact_phone = $6, updated_at = $7
		WHERE uid = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactInfo,
		patient.EmergencyContactName,
		patient.EmergencyContactRelationship,
		patient.EmergencyContactPhone,
		time.Now(),
		patient.UID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

func (r *patientRepository) ExistsUID(ctx context.Context, uid string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM patients WHERE uid = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, uid); err != nil {
		return false, fmt.Errorf("failed to check patient UID: %w", err)
	}
	return exists, nil
}

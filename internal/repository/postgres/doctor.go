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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error {
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

	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	query := `
		INSERT INTO doctors (id, user_id, name, specialization, license_number, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.Name,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.ContactInfo,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE user_id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ExistsLicense(ctx context.Context, licenseNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM doctors WHERE license_number = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, licenseNumber); err != nil {
		return false, fmt.Errorf("failed to check license number: %w", err)
	}
	return exists, nil
}

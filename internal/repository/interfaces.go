package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vitalrec/health-api/internal/model"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
}

type PatientRepository interface {
	// CreateWithUser inserts the user account and patient profile in one
	// transaction; a failure on either side rolls back both.
	CreateWithUser(ctx context.Context, user *model.User, patient *model.Patient) error
	GetByUID(ctx context.Context, uid string) (*model.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	ExistsUID(ctx context.Context, uid string) (bool, error)
}

type DoctorRepository interface {
	CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
	ExistsLicense(ctx context.Context, licenseNumber string) (bool, error)
}

type MedicalRecordRepository interface {
	// CreateWithMedications inserts the record and its medication rows in
	// one transaction; a failure on any row rolls back the whole group.
	CreateWithMedications(ctx context.Context, record *model.MedicalRecord, meds []*model.PrescribedMedication) error
	ListByPatient(ctx context.Context, patientUID string) ([]*model.MedicalRecord, error)
}

type MedicationRepository interface {
	ListActiveForPatient(ctx context.Context, patientUID string, today time.Time) ([]*model.PrescribedMedication, error)
	ListForRecord(ctx context.Context, recordID uuid.UUID) ([]*model.PrescribedMedication, error)
	// ListAllActive feeds the reminder worker: every non-expired active
	// prescription across all patients.
	ListAllActive(ctx context.Context, today time.Time) ([]*model.PrescribedMedication, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientUID string) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
}

// TokenRepository stores issued refresh tokens so logout can revoke them.
type TokenRepository interface {
	Save(ctx context.Context, userID uuid.UUID, token string, expiry time.Duration) error
	IsValid(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
}

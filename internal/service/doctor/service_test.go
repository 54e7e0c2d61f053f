package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalrec/health-api/internal/model"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
)

type stubPatientRepo struct {
	existing map[string]*model.Patient
	created  *model.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{existing: map[string]*model.Patient{}}
}

func (s *stubPatientRepo) CreateWithUser(ctx context.Context, user *model.User, patient *model.Patient) error {
	s.created = patient
	s.existing[patient.UID] = patient
	return nil
}
func (s *stubPatientRepo) GetByUID(ctx context.Context, uid string) (*model.Patient, error) {
	p, ok := s.existing[uid]
	if !ok {
		return nil, errors.New("sql: no rows in result set")
	}
	return p, nil
}
func (s *stubPatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	return nil, errors.New("sql: no rows in result set")
}
func (s *stubPatientRepo) Update(ctx context.Context, patient *model.Patient) error { return nil }
func (s *stubPatientRepo) ExistsUID(ctx context.Context, uid string) (bool, error) {
	_, ok := s.existing[uid]
	return ok, nil
}

type stubDoctorRepo struct{}

func (stubDoctorRepo) CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error {
	return nil
}
func (stubDoctorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	return nil, errors.New("sql: no rows in result set")
}
func (stubDoctorRepo) ExistsLicense(ctx context.Context, licenseNumber string) (bool, error) {
	return false, nil
}

type stubRecordRepo struct {
	record *model.MedicalRecord
	meds   []*model.PrescribedMedication
	err    error
}

func (s *stubRecordRepo) CreateWithMedications(ctx context.Context, record *model.MedicalRecord, meds []*model.PrescribedMedication) error {
	if s.err != nil {
		return s.err
	}
	s.record = record
	s.meds = meds
	return nil
}
func (s *stubRecordRepo) ListByPatient(ctx context.Context, patientUID string) ([]*model.MedicalRecord, error) {
	return nil, nil
}

type stubAppointmentRepo struct{}

func (stubAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (stubAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, errors.New("not found")
}
func (stubAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID) error { return nil }
func (stubAppointmentRepo) ListByPatient(ctx context.Context, patientUID string) ([]*model.Appointment, error) {
	return nil, nil
}
func (stubAppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func newTestService(patients *stubPatientRepo, records *stubRecordRepo) *Service {
	return NewService(stubDoctorRepo{}, patients, records, stubAppointmentRepo{})
}

func TestRegisterPatientCreatesShadowAccount(t *testing.T) {
	patients := newStubPatientRepo()
	svc := newTestService(patients, &stubRecordRepo{})

	patient, err := svc.RegisterPatient(context.Background(), &model.RegisterPatientRequest{
		UID:  "clinic-0042",
		Name: "Jo Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "clinic-0042", patient.UID)
	require.NotNil(t, patients.created)
}

func TestRegisterPatientUIDConflict(t *testing.T) {
	patients := newStubPatientRepo()
	patients.existing["clinic-0042"] = &model.Patient{UID: "clinic-0042"}
	svc := newTestService(patients, &stubRecordRepo{})

	_, err := svc.RegisterPatient(context.Background(), &model.RegisterPatientRequest{
		UID:  "clinic-0042",
		Name: "Jo Doe",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestAddMedicalRecordPacksHistory(t *testing.T) {
	patients := newStubPatientRepo()
	patients.existing["uid-1"] = &model.Patient{UID: "uid-1"}
	records := &stubRecordRepo{}
	svc := newTestService(patients, records)

	doctorID := uuid.New()
	record, err := svc.AddMedicalRecord(context.Background(), doctorID, &model.CreateMedicalRecordRequest{
		PatientUID:        "uid-1",
		SymptomsDiagnosis: "Seasonal flu",
		Allergies:         "Penicillin",
		Medications: []model.CreateMedicationRequest{
			{Name: "Oseltamivir", Dosage: "75mg", AlertTimes: "08:00,20:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Symptoms & Diagnosis: Seasonal flu\n--- Allergies: Penicillin", record.DiseaseHistory)
	assert.Equal(t, doctorID, record.DoctorID)

	require.Len(t, records.meds, 1)
	med := records.meds[0]
	assert.True(t, med.IsActive)
	require.NotNil(t, med.RecordID)
	assert.Equal(t, record.ID, *med.RecordID)
}

func TestAddMedicalRecordUnknownPatient(t *testing.T) {
	svc := newTestService(newStubPatientRepo(), &stubRecordRepo{})

	_, err := svc.AddMedicalRecord(context.Background(), uuid.New(), &model.CreateMedicalRecordRequest{
		PatientUID:        "missing",
		SymptomsDiagnosis: "Seasonal flu",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestAddMedicalRecordStoreFailure(t *testing.T) {
	patients := newStubPatientRepo()
	patients.existing["uid-1"] = &model.Patient{UID: "uid-1"}
	svc := newTestService(patients, &stubRecordRepo{err: errors.New("connection refused")})

	_, err := svc.AddMedicalRecord(context.Background(), uuid.New(), &model.CreateMedicalRecordRequest{
		PatientUID:        "uid-1",
		SymptomsDiagnosis: "Seasonal flu",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
}

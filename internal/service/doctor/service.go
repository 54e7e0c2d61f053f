package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
	"github.com/vitalrec/health-api/pkg/history"
	"github.com/vitalrec/health-api/pkg/security"
)

const bcryptCost = 12

type Service struct {
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	recordRepo  repository.MedicalRecordRepository
	aptRepo     repository.AppointmentRepository
	hasher      security.PasswordHasher
}

func NewService(
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	recordRepo repository.MedicalRecordRepository,
	aptRepo repository.AppointmentRepository,
) *Service {
	return &Service{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		recordRepo:  recordRepo,
		aptRepo:     aptRepo,
		hasher:      security.NewBcryptHasher(bcryptCost),
	}
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("doctor profile", err)
	}
	return doctor, nil
}

// PatientOverview is what a doctor sees after a UID lookup.
type PatientOverview struct {
	Patient      *model.Patient       `json:"patient"`
	Records      []model.RecordView   `json:"records"`
	Appointments []*model.Appointment `json:"appointments"`
}

// LookupPatient loads a patient's details plus full record and appointment
// history (both date-descending) for the doctor dashboard.
func (s *Service) LookupPatient(ctx context.Context, uid string) (*PatientOverview, error) {
	patient, err := s.patientRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	records, err := s.recordRepo.ListByPatient(ctx, uid)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	appointments, err := s.aptRepo.ListByPatient(ctx, uid)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	overview := &PatientOverview{
		Patient:      patient,
		Records:      make([]model.RecordView, 0, len(records)),
		Appointments: appointments,
	}
	for _, record := range records {
		symptoms, allergies := history.Decode(record.DiseaseHistory)
		overview.Records = append(overview.Records, model.RecordView{
			RecordDate:        record.RecordDate,
			SymptomsDiagnosis: symptoms,
			Allergies:         allergies,
			Prescriptions:     record.Prescriptions,
			DoctorName:        record.DoctorName,
		})
	}
	return overview, nil
}

// RegisterPatient creates a patient on a doctor's behalf. The shadow user
// account gets the UID as its username and an unguessable random password;
// the patient can claim it later through an out-of-band reset.
func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	exists, err := s.patientRepo.ExistsUID(ctx, req.UID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf("patient with UID %q already exists", req.UID), nil)
	}

	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Username:     req.UID,
		PasswordHash: hash,
		Role:         model.RolePatient,
	}
	patient := &model.Patient{
		Base:                         model.Base{ID: uuid.New()},
		UserID:                       user.ID,
		UID:                          req.UID,
		Name:                         req.Name,
		DateOfBirth:                  req.DateOfBirth,
		Gender:                       req.Gender,
		ContactInfo:                  req.ContactInfo,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		EmergencyContactPhone:        req.EmergencyContactPhone,
	}

	if err := s.patientRepo.CreateWithUser(ctx, user, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

// UpdatePatient lets a doctor edit an existing patient's details, name
// included.
func (s *Service) UpdatePatient(ctx context.Context, uid string, req *model.RegisterPatientRequest) (*model.Patient, error) {
	patient, err := s.patientRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	patient.Name = req.Name
	patient.DateOfBirth = req.DateOfBirth
	patient.Gender = req.Gender
	patient.ContactInfo = req.ContactInfo
	patient.EmergencyContactName = req.EmergencyContactName
	patient.EmergencyContactRelationship = req.EmergencyContactRelationship
	patient.EmergencyContactPhone = req.EmergencyContactPhone

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

// AddMedicalRecord packs the free-text fields through the history codec and
// writes the record together with any structured medication rows in one
// transaction. Records are immutable once written.
func (s *Service) AddMedicalRecord(ctx context.Context, doctorID uuid.UUID, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	exists, err := s.patientRepo.ExistsUID(ctx, req.PatientUID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.NotFound("patient", nil)
	}

	record := &model.MedicalRecord{
		ID:             uuid.New(),
		PatientUID:     req.PatientUID,
		DoctorID:       doctorID,
		RecordDate:     time.Now(),
		DiseaseHistory: history.Encode(req.SymptomsDiagnosis, req.Allergies),
		Prescriptions:  req.Prescriptions,
	}

	meds := make([]*model.PrescribedMedication, 0, len(req.Medications))
	for _, m := range req.Medications {
		recordID := record.ID
		meds = append(meds, &model.PrescribedMedication{
			ID:           uuid.New(),
			PatientUID:   req.PatientUID,
			RecordID:     &recordID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Instructions: m.Instructions,
			Frequency:    m.Frequency,
			AlertTimes:   m.AlertTimes,
			IsActive:     true,
			EndDate:      m.EndDate,
		})
	}

	if err := s.recordRepo.CreateWithMedications(ctx, record, meds); err != nil {
		return nil, apperrors.Internal(err)
	}
	return record, nil
}

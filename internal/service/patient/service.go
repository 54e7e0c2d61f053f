package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
	"github.com/vitalrec/health-api/pkg/history"
)

const (
	uidCacheTTL     = 15 * time.Minute
	uidCacheCleanup = 1 * time.Hour
)

type Service struct {
	repo       repository.PatientRepository
	recordRepo repository.MedicalRecordRepository

	// uidCache maps account ID to patient UID so each request resolves
	// the identity once instead of re-querying per handler.
	uidCache *cache.Cache
}

func NewService(repo repository.PatientRepository, recordRepo repository.MedicalRecordRepository) *Service {
	return &Service{
		repo:       repo,
		recordRepo: recordRepo,
		uidCache:   cache.New(uidCacheTTL, uidCacheCleanup),
	}
}

// ResolveUID returns the patient UID owned by the given user account.
func (s *Service) ResolveUID(ctx context.Context, userID uuid.UUID) (string, error) {
	if uid, found := s.uidCache.Get(userID.String()); found {
		return uid.(string), nil
	}

	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", apperrors.NotFound("patient profile", err)
	}

	s.uidCache.Set(userID.String(), patient.UID, cache.DefaultExpiration)
	return patient.UID, nil
}

func (s *Service) GetByUID(ctx context.Context, uid string) (*model.Patient, error) {
	patient, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}
	return patient, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("patient profile", err)
	}
	return patient, nil
}

// UpdateProfile applies a patient's own edits. The name field is owned by
// the registering doctor and stays untouched here.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdatePatientProfileRequest) (*model.Patient, error) {
	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFound("patient profile", err)
	}

	applyProfileUpdate(patient, req)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update profile: %w", err))
	}
	return patient, nil
}

// SearchRecords returns the caller's medical record history for the given
// UID. A UID that is not the caller's own is refused without revealing
// whether it exists.
func (s *Service) SearchRecords(ctx context.Context, userID uuid.UUID, requestedUID string) ([]model.RecordView, error) {
	ownUID, err := s.ResolveUID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requestedUID != ownUID {
		return nil, apperrors.Forbidden("you can only view your own records", nil)
	}

	records, err := s.recordRepo.ListByPatient(ctx, ownUID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	views := make([]model.RecordView, 0, len(records))
	for _, record := range records {
		symptoms, allergies := history.Decode(record.DiseaseHistory)
		views = append(views, model.RecordView{
			RecordDate:        record.RecordDate,
			SymptomsDiagnosis: symptoms,
			Allergies:         allergies,
			Prescriptions:     record.Prescriptions,
			DoctorName:        record.DoctorName,
		})
	}
	return views, nil
}

func applyProfileUpdate(patient *model.Patient, req *model.UpdatePatientProfileRequest) {
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.ContactInfo != nil {
		patient.ContactInfo = *req.ContactInfo
	}
	if req.EmergencyContactName != nil {
		patient.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactRelationship != nil {
		patient.EmergencyContactRelationship = *req.EmergencyContactRelationship
	}
	if req.EmergencyContactPhone != nil {
		patient.EmergencyContactPhone = *req.EmergencyContactPhone
	}
}

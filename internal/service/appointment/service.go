package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitalrec/health-api/internal/email"
	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
)

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	userRepo    repository.UserRepository
	emailSvc    email.Service
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// Create books an appointment between a patient and a doctor. Both parties
// are verified before the insert; a notification failure is logged but does
// not undo the booking.
func (s *Service) Create(ctx context.Context, patientUID string, doctorID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.patientRepo.GetByUID(ctx, patientUID)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	doctor, err := s.doctorRepo.GetByUserID(ctx, doctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor selection", err)
	}

	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientUID:      patient.UID,
		DoctorID:        doctor.ID,
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
		Status:          model.AppointmentStatusScheduled,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, apperrors.Internal(err)
	}

	when := apt.AppointmentDate.Format("2006-01-02 15:04")
	if err := s.emailSvc.SendAppointmentConfirmation(ctx, patient.ContactInfo, patient.Name, doctor.Name, when, apt.Reason); err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to send confirmation email")
	}

	return apt, nil
}

// Cancel marks an appointment cancelled after verifying the caller owns it:
// patients may cancel their own, doctors those they are booked on. The
// denial carries no detail about the target appointment.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, callerUserID uuid.UUID, role model.Role) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("appointment", err)
	}

	switch role {
	case model.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, callerUserID)
		if err != nil || patient.UID != apt.PatientUID {
			return apperrors.Forbidden("you do not have permission to cancel this appointment", nil)
		}
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, callerUserID)
		if err != nil || doctor.ID != apt.DoctorID {
			return apperrors.Forbidden("you do not have permission to cancel this appointment", nil)
		}
	default:
		return apperrors.Forbidden("you do not have permission to cancel this appointment", nil)
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return apperrors.Internal(err)
	}

	if patient, err := s.patientRepo.GetByUID(ctx, apt.PatientUID); err == nil {
		when := apt.AppointmentDate.Format("2006-01-02 15:04")
		if err := s.emailSvc.SendAppointmentCancellation(ctx, patient.ContactInfo, patient.Name, when); err != nil {
			log.Warn().Err(err).Str("appointment_id", id.String()).Msg("failed to send cancellation email")
		}
	}

	return nil
}

// ListForUser returns the caller's appointments, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, role model.Role) ([]*model.Appointment, error) {
	switch role {
	case model.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, apperrors.NotFound("patient profile", err)
		}
		return s.repo.ListByPatient(ctx, patient.UID)
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, apperrors.NotFound("doctor profile", err)
		}
		return s.repo.ListByDoctor(ctx, doctor.ID)
	default:
		return nil, apperrors.Forbidden(fmt.Sprintf("unsupported role %q", role), nil)
	}
}

// ParseDoctorUser resolves the doctor_id field of a booking request, which
// patients supply as the doctor's user account ID.
func (s *Service) ParseDoctorUser(req *model.CreateAppointmentRequest) (uuid.UUID, error) {
	id, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("invalid doctor ID", err)
	}
	return id, nil
}

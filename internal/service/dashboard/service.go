package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	"github.com/vitalrec/health-api/internal/service/medication"
	"github.com/vitalrec/health-api/pkg/history"
)

const storeUnavailableNotice = "Some of your health data could not be loaded. Please try again later."

// Service aggregates a patient's medications, records and appointments into
// the dashboard view-model. Data flows one way: stored rows in, derived
// view-model out; nothing here writes.
type Service struct {
	patientRepo     repository.PatientRepository
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	medicationSvc   *medication.Service
	conditionRules  []ConditionRule
}

func NewService(
	patientRepo repository.PatientRepository,
	recordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	medicationSvc *medication.Service,
) *Service {
	return &Service{
		patientRepo:     patientRepo,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		medicationSvc:   medicationSvc,
		conditionRules:  defaultConditionRules,
	}
}

// Build assembles the dashboard for the patient owning userID. Any store
// failure degrades to a default view-model with a user-visible notice;
// callers never see a partially aggregated dashboard.
func (s *Service) Build(ctx context.Context, patientUID string, now time.Time) *model.PatientDashboard {
	empty := &model.PatientDashboard{
		Allergies:         []string{},
		Conditions:        []string{},
		ActiveMedications: []*model.PrescribedMedication{},
		Records:           []model.RecordView{},
		Appointments:      []*model.Appointment{},
	}

	patient, err := s.patientRepo.GetByUID(ctx, patientUID)
	if err != nil {
		log.Error().Err(err).Str("patient_uid", patientUID).Msg("dashboard: patient lookup failed")
		empty.Notice = storeUnavailableNotice
		return empty
	}

	records, err := s.recordRepo.ListByPatient(ctx, patientUID)
	if err != nil {
		log.Error().Err(err).Str("patient_uid", patientUID).Msg("dashboard: record lookup failed")
		empty.Notice = storeUnavailableNotice
		return empty
	}

	appointments, err := s.appointmentRepo.ListByPatient(ctx, patientUID)
	if err != nil {
		log.Error().Err(err).Str("patient_uid", patientUID).Msg("dashboard: appointment lookup failed")
		empty.Notice = storeUnavailableNotice
		return empty
	}

	meds, err := s.medicationSvc.ListActive(ctx, patientUID, now)
	if err != nil {
		log.Error().Err(err).Str("patient_uid", patientUID).Msg("dashboard: medication lookup failed")
		empty.Notice = storeUnavailableNotice
		return empty
	}

	dash := &model.PatientDashboard{
		Patient:             patient,
		ActiveMedications:   meds,
		NextDose:            s.medicationSvc.SoonestDose(meds, now),
		Appointments:        appointments,
		UpcomingAppointment: upcomingAppointment(appointments, now),
	}

	allergySet := map[string]bool{}
	conditionSet := map[string]bool{}
	for _, record := range records {
		symptoms, allergies := history.Decode(record.DiseaseHistory)

		dash.Records = append(dash.Records, model.RecordView{
			RecordDate:        record.RecordDate,
			SymptomsDiagnosis: symptoms,
			Allergies:         allergies,
			Prescriptions:     record.Prescriptions,
			DoctorName:        record.DoctorName,
		})

		for _, allergy := range splitAllergies(allergies) {
			if !allergySet[allergy] {
				allergySet[allergy] = true
				dash.Allergies = append(dash.Allergies, allergy)
			}
		}

		for _, label := range matchConditions(s.conditionRules, symptoms) {
			if !conditionSet[label] {
				conditionSet[label] = true
				dash.Conditions = append(dash.Conditions, label)
			}
		}
	}

	if dash.Allergies == nil {
		dash.Allergies = []string{}
	}
	if dash.Conditions == nil {
		dash.Conditions = []string{}
	}
	if dash.Records == nil {
		dash.Records = []model.RecordView{}
	}
	return dash
}

// splitAllergies tokenizes a decoded allergy string, dropping empty entries
// and the literal "none" (any case). Tokens are deduplicated by the caller
// with exact case: "Peanuts" and "peanuts" stay distinct entries.
func splitAllergies(allergies string) []string {
	if allergies == "" || strings.EqualFold(allergies, "none") {
		return nil
	}

	var out []string
	for _, raw := range strings.Split(allergies, ",") {
		token := strings.TrimSpace(raw)
		if token == "" || strings.EqualFold(token, "none") {
			continue
		}
		out = append(out, token)
	}
	return out
}

func upcomingAppointment(appointments []*model.Appointment, now time.Time) *model.Appointment {
	var upcoming *model.Appointment
	for _, apt := range appointments {
		if apt.Status != model.AppointmentStatusScheduled || apt.AppointmentDate.Before(now) {
			continue
		}
		if upcoming == nil || apt.AppointmentDate.Before(upcoming.AppointmentDate) {
			upcoming = apt
		}
	}
	return upcoming
}

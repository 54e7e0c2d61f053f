package medication

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
)

type Service struct {
	repo repository.MedicationRepository
}

func NewService(repo repository.MedicationRepository) *Service {
	return &Service{repo: repo}
}

// NextDose evaluates every alert time of one medication and returns the
// soonest next occurrence. Malformed alert times are skipped with a warning
// and do not reject the medication. Returns nil when no valid alert time
// exists.
func (s *Service) NextDose(med *model.PrescribedMedication, now time.Time) *model.DoseEvent {
	var next *model.DoseEvent
	for _, alert := range parseAlertTimes(med.AlertTimes) {
		occurrence, err := NextOccurrence(alert, now)
		if err != nil {
			log.Warn().
				Str("alert_time", alert).
				Str("medication", med.Name).
				Str("patient_uid", med.PatientUID).
				Msg("skipping malformed alert time")
			continue
		}
		if next == nil || occurrence.Before(next.NextDose) {
			next = &model.DoseEvent{Medication: med, NextDose: occurrence}
		}
	}
	return next
}

// SoonestDose returns the minimum next occurrence over all (medication,
// alert-time) pairs. Ties break on whichever medication was seen first.
func (s *Service) SoonestDose(meds []*model.PrescribedMedication, now time.Time) *model.DoseEvent {
	var soonest *model.DoseEvent
	for _, med := range meds {
		candidate := s.NextDose(med, now)
		if candidate == nil {
			continue
		}
		if soonest == nil || candidate.NextDose.Before(soonest.NextDose) {
			soonest = candidate
		}
	}
	return soonest
}

// ListDue returns one entry per alert time currently inside the due window
// across the patient's active medications.
func (s *Service) ListDue(ctx context.Context, patientUID string, now time.Time) ([]*model.DueMedication, error) {
	meds, err := s.repo.ListActiveForPatient(ctx, patientUID, today(now))
	if err != nil {
		return nil, fmt.Errorf("failed to load active medications: %w", err)
	}

	due := []*model.DueMedication{}
	for _, med := range meds {
		for _, alert := range parseAlertTimes(med.AlertTimes) {
			isDue, err := dueAt(alert, now)
			if err != nil {
				log.Warn().
					Str("alert_time", alert).
					Str("medication", med.Name).
					Str("patient_uid", med.PatientUID).
					Msg("skipping malformed alert time")
				continue
			}
			if isDue {
				due = append(due, &model.DueMedication{
					Name:         med.Name,
					Dosage:       med.Dosage,
					Instructions: med.Instructions,
					Frequency:    med.Frequency,
					DueTime:      alert,
				})
			}
		}
	}
	return due, nil
}

// ListActive returns the patient's prescriptions that are flagged active
// and not yet expired.
func (s *Service) ListActive(ctx context.Context, patientUID string, now time.Time) ([]*model.PrescribedMedication, error) {
	return s.repo.ListActiveForPatient(ctx, patientUID, today(now))
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

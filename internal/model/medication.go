package model

import (
	"time"

	"github.com/google/uuid"
)

// PrescribedMedication is one prescribed drug with its daily alert times.
// AlertTimes is a comma-separated list of HH:MM (24-hour) strings, no
// timezone; each entry is a recurring daily time-of-day.
type PrescribedMedication struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientUID   string     `db:"patient_uid" json:"patient_uid"`
	RecordID     *uuid.UUID `db:"record_id" json:"record_id,omitempty"`
	Name         string     `db:"name" json:"name"`
	Dosage       string     `db:"dosage" json:"dosage"`
	Instructions string     `db:"instructions" json:"instructions"`
	Frequency    string     `db:"frequency" json:"frequency"`
	AlertTimes   string     `db:"alert_times" json:"alert_times"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type CreateMedicationRequest struct {
	Name         string     `json:"name" binding:"required"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions"`
	Frequency    string     `json:"frequency"`
	AlertTimes   string     `json:"alert_times"`
	EndDate      *time.Time `json:"end_date"`
}

// DoseEvent is a derived, non-persisted next occurrence of one alert time.
type DoseEvent struct {
	Medication *PrescribedMedication `json:"medication"`
	NextDose   time.Time             `json:"next_dose"`
}

// DueMedication is one alert-time entry currently inside the due window,
// carrying the original un-normalized time string for display.
type DueMedication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Frequency    string `json:"frequency"`
	DueTime      string `json:"due_time"`
}

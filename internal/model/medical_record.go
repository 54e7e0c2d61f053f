package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is immutable once written: there is no update or delete
// path. DiseaseHistory holds the packed symptoms+allergies text (see
// pkg/history). Prescriptions carries free text in the legacy shape; in the
// evolved shape medications live in prescribed_medications rows linked back
// via RecordID.
type MedicalRecord struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientUID     string    `db:"patient_uid" json:"patient_uid"`
	DoctorID       uuid.UUID `db:"doctor_id" json:"doctor_id"`
	RecordDate     time.Time `db:"record_date" json:"record_date"`
	DiseaseHistory string    `db:"disease_history" json:"disease_history"`
	Prescriptions  string    `db:"prescriptions" json:"prescriptions"`
	DoctorName     string    `db:"doctor_name" json:"doctor_name,omitempty"`
}

// RecordView is a decoded record for display.
type RecordView struct {
	RecordDate        time.Time `json:"record_date"`
	SymptomsDiagnosis string    `json:"symptoms_diagnosis"`
	Allergies         string    `json:"allergies"`
	Prescriptions     string    `json:"prescriptions"`
	DoctorName        string    `json:"doctor_name"`
}

type CreateMedicalRecordRequest struct {
	PatientUID        string                    `json:"patient_uid" binding:"required"`
	SymptomsDiagnosis string                    `json:"symptoms_diagnosis" binding:"required"`
	Allergies         string                    `json:"allergies"`
	Prescriptions     string                    `json:"prescriptions"`
	Medications       []CreateMedicationRequest `json:"medications"`
}

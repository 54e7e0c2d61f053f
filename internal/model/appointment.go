package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	Base
	PatientUID      string            `db:"patient_uid" json:"patient_uid"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	Reason          string            `db:"reason" json:"reason"`
	Status          AppointmentStatus `db:"status" json:"status"`
	DoctorName      string            `db:"doctor_name" json:"doctor_name,omitempty"`
	PatientName     string            `db:"patient_name" json:"patient_name,omitempty"`
}

type CreateAppointmentRequest struct {
	// PatientUID is required when a doctor books; ignored for patients, who
	// always book for themselves.
	PatientUID      string    `json:"patient_uid"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Reason          string    `json:"reason" binding:"required"`
}

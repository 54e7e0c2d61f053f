package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the demographic profile attached to a user account. UID is the
// patient-facing identifier handed out to doctors and embedded in emergency
// report URLs; it is distinct from the internal account ID.
type Patient struct {
	Base
	UserID                       uuid.UUID  `db:"user_id" json:"user_id"`
	UID                          string     `db:"uid" json:"uid"`
	Name                         string     `db:"name" json:"name"`
	DateOfBirth                  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender                       string     `db:"gender" json:"gender"`
	ContactInfo                  string     `db:"contact_info" json:"contact_info"`
	EmergencyContactName         string     `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactRelationship string     `db:"emergency_contact_relationship" json:"emergency_contact_relationship"`
	EmergencyContactPhone        string     `db:"emergency_contact_phone" json:"emergency_contact_phone"`
}

type UpdatePatientProfileRequest struct {
	DateOfBirth                  *time.Time `json:"date_of_birth"`
	Gender                       *string    `json:"gender"`
	ContactInfo                  *string    `json:"contact_info"`
	EmergencyContactName         *string    `json:"emergency_contact_name"`
	EmergencyContactRelationship *string    `json:"emergency_contact_relationship"`
	EmergencyContactPhone        *string    `json:"emergency_contact_phone"`
}

// RegisterPatientRequest is used by doctors registering a patient with a
// chosen UID. A shadow user account is created for the patient.
type RegisterPatientRequest struct {
	UID                          string     `json:"uid" binding:"required"`
	Name                         string     `json:"name" binding:"required"`
	DateOfBirth                  *time.Time `json:"date_of_birth"`
	Gender                       string     `json:"gender"`
	ContactInfo                  string     `json:"contact_info"`
	EmergencyContactName         string     `json:"emergency_contact_name"`
	EmergencyContactRelationship string     `json:"emergency_contact_relationship"`
	EmergencyContactPhone        string     `json:"emergency_contact_phone"`
}

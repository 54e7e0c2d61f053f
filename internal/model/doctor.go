package model

import "github.com/google/uuid"

type Doctor struct {
	Base
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	LicenseNumber  string    `db:"license_number" json:"license_number"`
	ContactInfo    string    `db:"contact_info" json:"contact_info"`
}

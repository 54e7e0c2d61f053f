package model

import "time"

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Role         Role      `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Role        Role   `json:"role" binding:"required,oneof=patient doctor"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`

	// Patient fields
	DateOfBirth                  *time.Time `json:"date_of_birth"`
	Gender                       string     `json:"gender"`
	EmergencyContactName         string     `json:"emergency_contact_name"`
	EmergencyContactRelationship string     `json:"emergency_contact_relationship"`
	EmergencyContactPhone        string     `json:"emergency_contact_phone"`

	// Doctor fields
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

package model

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

type User struct {
	Base
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

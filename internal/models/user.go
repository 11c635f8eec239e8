package models

import "time"

// Roles recognized at registration time.
const (
	RoleOperator = "Operator"
	RoleEngineer = "Engineer"
	RoleManager  = "Manager"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"` // Operator | Engineer | Manager
	PasswordHash string    `json:"-"`    // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether the role is one of the recognized values.
func ValidRole(role string) bool {
	switch role {
	case RoleOperator, RoleEngineer, RoleManager:
		return true
	}
	return false
}

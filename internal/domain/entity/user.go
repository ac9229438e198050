package entity

import "time"

// User roles, from least to most privileged.
const (
	RoleOperator = "operator"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User is an operator account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// User is a staff account allowed through the login gate.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import "time"

// User is the persisted account record. PasswordHash holds an argon2id PHC
// string and must never cross the service boundary outward.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

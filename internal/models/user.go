package models

import "time"

// Profile holds optional personal details of a user.
type Profile struct {
	FullName    string `json:"fullName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Location    string `json:"location,omitempty"`
}

// User is the canonical user record. Password holds an encoded argon2id hash.
type User struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	Password     string               `json:"password"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Profile      Profile              `json:"profile"`
	Applications []ApplicationSummary `json:"applications"`
}

// SessionUser is the "who is logged in" snapshot. It has no password field
// so the credential cannot be serialized into it.
type SessionUser struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Profile      Profile              `json:"profile"`
	Applications []ApplicationSummary `json:"applications"`
}

// Snapshot returns a password-free copy of u.
func (u User) Snapshot() SessionUser {
	apps := make([]ApplicationSummary, len(u.Applications))
	copy(apps, u.Applications)
	return SessionUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		Profile:      u.Profile,
		Applications: apps,
	}
}

// ProfilePatch carries profile changes; nil fields are left untouched.
// Email is accepted so callers can pass whole forms, but it is never applied.
type ProfilePatch struct {
	FullName    *string `json:"fullName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Location    *string `json:"location,omitempty"`
	Email       *string `json:"email,omitempty"`
}

package models

import (
	"strings"
	"time"
)

// User captures the account fields returned by the auth and users endpoints.
type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username,omitempty"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsStaff    bool       `json:"is_staff,omitempty"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
}

// DisplayName prefers the full name and falls back to the email address.
func (u User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}

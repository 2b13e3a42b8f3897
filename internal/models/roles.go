package models

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Profile holds the per-user settings exposed by /profiles/.
type Profile struct {
	ID         int64  `json:"id"`
	User       int64  `json:"user"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
}

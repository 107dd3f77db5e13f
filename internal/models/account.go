package models

import "time"

// Account represents a login identity in the system. Every employee is
// backed by exactly one account; staff accounts additionally unlock the
// administrative operations.
type Account struct {
	ID           int64     `json:"id"`         // Unique identifier for the account
	Username     string    `json:"username"`   // Login name, unique across the system
	PasswordHash string    `json:"-"`          // Bcrypt hash of the password, never serialized
	FullName     string    `json:"full_name"`  // Display name of the account holder
	IsActive     bool      `json:"is_active"`  // Whether the account may log in
	IsStaff      bool      `json:"is_staff"`   // Whether the account holds administrative rights
	CreatedAt    time.Time `json:"created_at"` // Timestamp of when the account was registered
}

// Viewer is the authenticated caller of a request, resolved from the
// access token. Handlers use it to narrow data access for non-staff.
type Viewer struct {
	AccountID    int64  `json:"account_id"`  // Account behind the token
	Username     string `json:"username"`    // Login name of the caller
	FullName     string `json:"full_name"`   // Display name of the caller
	IsStaff      bool   `json:"is_staff"`    // Administrative rights flag
	EmployeeID   int64  `json:"-"`           // Internal id of the linked employee row
	EmployeeCode string `json:"employee_id"` // Public employee identifier, e.g. "EMP042"
}

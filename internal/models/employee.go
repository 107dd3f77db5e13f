package models

import "time"

// Employee represents an individual employee in the system.
// It carries the public employee identifier, organizational placement,
// and the identity fields joined from the backing account.
type Employee struct {
	ID          int64     `json:"-"`           // Internal row identifier
	AccountID   int64     `json:"-"`           // Backing account identifier
	EmployeeID  string    `json:"employee_id"` // Public identifier, e.g. "EMP042"
	Department  string    `json:"department"`  // Department code, empty when unset
	Designation string    `json:"designation"` // Job title of the employee
	JoinedOn    time.Time `json:"joined_on"`   // Date the employee joined
	Username    string    `json:"username"`    // Login name from the backing account
	FullName    string    `json:"full_name"`   // Display name from the backing account
	IsActive    bool      `json:"is_active"`   // Whether the backing account is active
	CreatedAt   time.Time `json:"created_at"`  // When the backing account was registered
}

// Departments maps each known department code to its display label.
var Departments = map[string]string{
	"IT":    "Information Technology",
	"HR":    "Human Resources",
	"FIN":   "Finance",
	"MKT":   "Marketing",
	"OPS":   "Operations",
	"ENG":   "Engineering",
	"SALES": "Sales",
	"ADMIN": "Administration",
}

// IsValidDepartment reports whether code is one of the known department codes.
// The empty string is not a department; callers treat it as "unset" separately.
func IsValidDepartment(code string) bool {
	_, ok := Departments[code]

	return ok
}

package models

import "time"

// Leave request statuses. A request starts as pending and moves exactly once
// to approved or rejected; decided requests never change again.
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// Leave represents a single leave request of an employee.
type Leave struct {
	ID         int64      `json:"id"`          // Unique identifier for the request
	EmployeeID int64      `json:"-"`           // Internal id of the requesting employee
	StartDate  time.Time  `json:"start_date"`  // First day of the requested leave
	EndDate    time.Time  `json:"end_date"`    // Last day of the requested leave, inclusive
	Reason     string     `json:"reason"`      // Free-form reason given by the employee
	Status     string     `json:"status"`      // One of LeavePending, LeaveApproved, LeaveRejected
	AppliedAt  time.Time  `json:"applied_at"`  // When the request was submitted
	ApprovedBy *int64     `json:"-"`           // Account id of the decider, nil while pending
	ApprovedAt *time.Time `json:"approved_at"` // When the decision was made, nil while pending
}

// LeaveRecord is a leave request joined with the requester and decider
// identities, used for listings and exports.
type LeaveRecord struct {
	ID           int64      `json:"id"`          // Unique identifier for the request
	EmployeeID   string     `json:"employee_id"` // Public identifier of the requester
	Name         string     `json:"name"`        // Display name of the requester
	StartDate    time.Time  `json:"start_date"`  // First day of the requested leave
	EndDate      time.Time  `json:"end_date"`    // Last day of the requested leave, inclusive
	Reason       string     `json:"reason"`      // Free-form reason given by the employee
	Status       string     `json:"status"`      // Current status of the request
	AppliedAt    time.Time  `json:"applied_at"`  // When the request was submitted
	DecidedBy    string     `json:"decided_by"`  // Display name of the decider, empty while pending
	ApprovedAt   *time.Time `json:"approved_at"` // When the decision was made, nil while pending
	DurationDays int        `json:"duration"`    // Inclusive day span of the request
}

// LeaveDuration returns the inclusive day span between two leave dates.
func LeaveDuration(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

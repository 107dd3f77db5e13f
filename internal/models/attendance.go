package models

import "time"

// Attendance is one employee-day attendance row. Clock fields are nil until
// the matching action is marked; WorkedSeconds is recomputed on every save.
type Attendance struct {
	ID            int64      `json:"id"`             // Unique identifier for the row
	EmployeeID    int64      `json:"-"`              // Internal id of the owning employee
	Date          time.Time  `json:"date"`           // Calendar day the row belongs to
	ClockIn       *time.Time `json:"clock_in"`       // First half of the day pair, nil until marked
	ClockOut      *time.Time `json:"clock_out"`      // Second half of the day pair, nil until marked
	WorkedSeconds int64      `json:"worked_seconds"` // Derived duration, clamped at zero
}

// AttendanceRecord is an attendance row joined with the employee identity,
// used for listings and exports.
type AttendanceRecord struct {
	EmployeeID    string     `json:"employee_id"`    // Public employee identifier
	Name          string     `json:"name"`           // Display name of the employee
	Department    string     `json:"department"`     // Department code of the employee
	Date          time.Time  `json:"date"`           // Calendar day of the row
	ClockIn       *time.Time `json:"clock_in"`       // Clock-in timestamp, nil when absent
	ClockOut      *time.Time `json:"clock_out"`      // Clock-out timestamp, nil when absent
	WorkedSeconds int64      `json:"worked_seconds"` // Derived duration, clamped at zero
}

// MonthlyStat is the per-employee aggregation of one calendar month of
// attendance: how many days carry a clock-in and the summed worked time.
type MonthlyStat struct {
	EmployeeID   string // Public employee identifier
	Name         string // Display name of the employee
	Department   string // Department code of the employee
	DaysPresent  int    // Days in the month with a non-null clock-in
	TotalSeconds int64  // Sum of worked seconds over the month
}

// ComputeWorkedSeconds derives the stored duration from a clock pair.
// Either side missing, or an out before the in, yields zero.
func ComputeWorkedSeconds(clockIn, clockOut *time.Time) int64 {
	if clockIn == nil || clockOut == nil {
		return 0
	}

	secs := int64(clockOut.Sub(*clockIn).Seconds())
	if secs < 0 {
		return 0
	}

	return secs
}

// Package report assembles the monthly attendance report and renders it to
// the download formats.
package report

import (
	"fmt"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
)

// Row is one employee line of the monthly report.
type Row struct {
	EmployeeID        string `json:"employee_id"`        // Public employee identifier
	Name              string `json:"name"`               // Display name of the employee
	Department        string `json:"department"`         // Department code of the employee
	DaysPresent       int    `json:"days_present"`       // Days of the month with a clock-in
	TotalTime         string `json:"total_time"`         // Worked time as "8h 30m"
	TotalSeconds      int64  `json:"-"`                  // Worked time in seconds
	AttendancePercent string `json:"attendance_percent"` // Presence vs working days, one decimal
}

// Summary carries the totals of one report.
type Summary struct {
	Employees         int    `json:"employees"`          // Number of employees in the report
	WorkingDays       int    `json:"working_days"`       // Calendar days of the month
	TotalHours        string `json:"total_hours"`        // Summed worked time as "168h"
	AverageAttendance string `json:"average_attendance"` // Mean presence across all employees
}

// Report is the assembled monthly attendance report.
type Report struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Rows    []Row      `json:"rows"`
	Summary Summary    `json:"summary"`
}

// PeriodLabel returns the human-readable period of the report, e.g. "March 2025".
func (r Report) PeriodLabel() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}

// Build assembles the report from the per-employee month aggregates. Working
// days are the calendar days of the month. The row order of stats is kept.
// With no employees at all the average attendance reads "0%".
func Build(year int, month time.Month, stats []models.MonthlyStat) Report {
	workingDays := daysInMonth(year, month)

	rep := Report{
		Year:  year,
		Month: month,
		Rows:  make([]Row, 0, len(stats)),
	}

	var totalSeconds int64
	var totalPresent int
	for _, stat := range stats {
		rep.Rows = append(rep.Rows, Row{
			EmployeeID:        stat.EmployeeID,
			Name:              stat.Name,
			Department:        stat.Department,
			DaysPresent:       stat.DaysPresent,
			TotalTime:         FormatDuration(stat.TotalSeconds),
			TotalSeconds:      stat.TotalSeconds,
			AttendancePercent: formatPercent(float64(stat.DaysPresent) / float64(workingDays) * 100),
		})
		totalSeconds += stat.TotalSeconds
		totalPresent += stat.DaysPresent
	}

	rep.Summary = Summary{
		Employees:         len(stats),
		WorkingDays:       workingDays,
		TotalHours:        fmt.Sprintf("%dh", totalSeconds/3600),
		AverageAttendance: "0%",
	}
	if len(stats) > 0 {
		average := float64(totalPresent) / float64(len(stats)*workingDays) * 100
		rep.Summary.AverageAttendance = formatPercent(average)
	}

	return rep
}

// FormatDuration renders worked seconds as "8h 30m". Leftover seconds below
// a minute are dropped.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

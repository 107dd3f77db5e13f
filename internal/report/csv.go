package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	timestampLayout = "2006-01-02 15:04:05"
)

// WriteReportCSV writes the monthly report rows as CSV.
func WriteReportCSV(w io.Writer, rep Report) error {
	writer := csv.NewWriter(w)

	header := []string{"Employee ID", "Name", "Department", "Days Present", "Total Time", "Attendance %"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rep.Rows {
		record := []string{
			row.EmployeeID,
			row.Name,
			row.Department,
			strconv.Itoa(row.DaysPresent),
			row.TotalTime,
			row.AttendancePercent,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report csv: %w", err)
	}

	return nil
}

// WriteAttendanceCSV writes attendance rows as CSV. Missing clock fields
// stay empty.
func WriteAttendanceCSV(w io.Writer, records []models.AttendanceRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"Employee ID", "Name", "Department", "Date", "Clock In", "Clock Out", "Worked Hours"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write attendance header: %w", err)
	}

	for _, rec := range records {
		record := []string{
			rec.EmployeeID,
			rec.Name,
			rec.Department,
			rec.Date.Format(dateLayout),
			formatClock(rec.ClockIn),
			formatClock(rec.ClockOut),
			FormatDuration(rec.WorkedSeconds),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write attendance row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush attendance csv: %w", err)
	}

	return nil
}

// WriteEmployeesCSV writes the employee directory as CSV.
func WriteEmployeesCSV(w io.Writer, employees []models.Employee) error {
	writer := csv.NewWriter(w)

	header := []string{"employee_id", "username", "full_name", "department", "designation", "date_joined"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write employees header: %w", err)
	}

	for _, emp := range employees {
		record := []string{
			emp.EmployeeID,
			emp.Username,
			emp.FullName,
			emp.Department,
			emp.Designation,
			emp.JoinedOn.Format(dateLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write employee row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush employees csv: %w", err)
	}

	return nil
}

// WriteLeavesCSV writes leave requests as CSV. The approver column stays
// empty for pending requests.
func WriteLeavesCSV(w io.Writer, records []models.LeaveRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"Employee ID", "Name", "Start Date", "End Date", "Reason", "Status", "Applied At", "Approved By"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write leaves header: %w", err)
	}

	for _, rec := range records {
		record := []string{
			rec.EmployeeID,
			rec.Name,
			rec.StartDate.Format(dateLayout),
			rec.EndDate.Format(dateLayout),
			rec.Reason,
			rec.Status,
			rec.AppliedAt.Format(timestampLayout),
			rec.DecidedBy,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write leave row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush leaves csv: %w", err)
	}

	return nil
}

func formatClock(ts *time.Time) string {
	if ts == nil {
		return ""
	}

	return ts.Format(timeLayout)
}

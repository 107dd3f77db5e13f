package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
)

// ErrUnknownAction is returned when an attendance action is neither "IN" nor "OUT".
var ErrUnknownAction = errors.New("unknown attendance action")

// Attendance actions accepted by MarkAttendance.
const (
	ActionClockIn  = "IN"
	ActionClockOut = "OUT"
)

// MarkAttendance records a clock action for one employee-day. The row for the
// day is created on first contact, then locked, so two concurrent marks for
// the same employee and day serialize on the same single row. A repeated
// action overwrites the earlier timestamp. The stored worked duration is
// recomputed from the clock pair on every save.
func (r *Repository) MarkAttendance(
	ctx context.Context, employeeID int64, day time.Time, action string, timestamp time.Time,
) (models.Attendance, error) {
	if action != ActionClockIn && action != ActionClockOut {
		return models.Attendance{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // omitted because checking for errors will not affect the function

	if _, err = tx.Exec(ctx, InsertAttendanceDaySQL, employeeID, day); err != nil {
		return models.Attendance{}, fmt.Errorf("failed to insert attendance day: %w", err)
	}

	var att models.Attendance
	err = tx.QueryRow(ctx, LockAttendanceDaySQL, employeeID, day).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.WorkedSeconds,
	)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("failed to lock attendance day: %w", err)
	}

	if action == ActionClockIn {
		att.ClockIn = &timestamp
	} else {
		att.ClockOut = &timestamp
	}
	att.WorkedSeconds = models.ComputeWorkedSeconds(att.ClockIn, att.ClockOut)

	_, err = tx.Exec(ctx, UpdateAttendanceClocksSQL, att.ID, att.ClockIn, att.ClockOut, att.WorkedSeconds)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("failed to update attendance clocks: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Attendance{}, fmt.Errorf("failed to commit attendance mark: %w", err)
	}

	return att, nil
}

// ListMonthAttendance returns the attendance rows of one calendar month with
// the employee identity joined in, ordered by date. A non-nil employeeID
// narrows the listing to that employee.
func (r *Repository) ListMonthAttendance(
	ctx context.Context, year int, month time.Month, employeeID *int64,
) ([]models.AttendanceRecord, error) {
	from, to := monthRange(year, month)

	rows, err := r.db.Query(ctx, ListMonthAttendanceSQL, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		err = rows.Scan(
			&rec.EmployeeID, &rec.Name, &rec.Department,
			&rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.WorkedSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return records, nil
}

// GetMonthlyStats aggregates one calendar month of attendance per employee:
// days with a clock-in and total worked seconds. Employees without any
// attendance in the month still appear, with zero in both numbers. The
// result is ordered by employee ID. A department code narrows to that
// department, a non-nil employeeID to that single employee.
func (r *Repository) GetMonthlyStats(
	ctx context.Context, year int, month time.Month, department string, employeeID *int64,
) ([]models.MonthlyStat, error) {
	from, to := monthRange(year, month)

	rows, err := r.db.Query(ctx, MonthlyStatsSQL, from, to, department, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []models.MonthlyStat
	for rows.Next() {
		var stat models.MonthlyStat
		err = rows.Scan(&stat.EmployeeID, &stat.Name, &stat.Department, &stat.DaysPresent, &stat.TotalSeconds)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly stat row: %w", err)
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read monthly stat rows: %w", err)
	}

	return stats, nil
}

// monthRange returns the first day of the month and the first day of the
// next month, the half-open interval used by the date filters.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 1, 0)
}

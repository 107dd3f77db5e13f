package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrLeaveNotFound is returned when no leave request matches the given id.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrLeaveAlreadyDecided is returned when a decision targets a request
	// that already left the pending state.
	ErrLeaveAlreadyDecided = errors.New("leave request is already decided")
)

// CreateLeave submits a new pending leave request for an employee.
func (r *Repository) CreateLeave(
	ctx context.Context, employeeID int64, start, end time.Time, reason string,
) (models.Leave, error) {
	leave := models.Leave{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
	}

	err := r.db.QueryRow(ctx, CreateLeaveSQL, employeeID, start, end, reason).
		Scan(&leave.ID, &leave.Status, &leave.AppliedAt)
	if err != nil {
		return models.Leave{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return leave, nil
}

// ListLeaves returns leave requests with the requester identity joined in,
// newest applications first. A non-nil employeeID narrows to one employee,
// a non-empty status to one status.
func (r *Repository) ListLeaves(
	ctx context.Context, employeeID *int64, status string,
) ([]models.LeaveRecord, error) {
	rows, err := r.db.Query(ctx, ListLeavesSQL, employeeID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var records []models.LeaveRecord
	for rows.Next() {
		var rec models.LeaveRecord
		err = rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Name, &rec.StartDate, &rec.EndDate,
			&rec.Reason, &rec.Status, &rec.AppliedAt, &rec.DecidedBy, &rec.ApprovedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		rec.DurationDays = models.LeaveDuration(rec.StartDate, rec.EndDate)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave rows: %w", err)
	}

	return records, nil
}

// DecideLeave approves or rejects a pending leave request and returns the
// decided request with the requester identity joined in. The request row is
// locked first and the transition is one-way: a request that already left
// the pending state is never changed again, the call fails with
// ErrLeaveAlreadyDecided instead. The decider and decision time are stored
// in the same update as the status.
func (r *Repository) DecideLeave(
	ctx context.Context, leaveID, deciderAccountID int64, approve bool,
) (models.LeaveRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.LeaveRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // omitted because checking for errors will not affect the function

	var rec models.LeaveRecord
	err = tx.QueryRow(ctx, LockLeaveSQL, leaveID).Scan(
		&rec.ID, &rec.Status, &rec.StartDate, &rec.EndDate, &rec.EmployeeID, &rec.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LeaveRecord{}, ErrLeaveNotFound
		}
		return models.LeaveRecord{}, fmt.Errorf("failed to lock leave request: %w", err)
	}

	if rec.Status != models.LeavePending {
		return models.LeaveRecord{}, ErrLeaveAlreadyDecided
	}

	newStatus := models.LeaveRejected
	if approve {
		newStatus = models.LeaveApproved
	}

	if _, err = tx.Exec(ctx, DecideLeaveSQL, leaveID, newStatus, deciderAccountID); err != nil {
		return models.LeaveRecord{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.LeaveRecord{}, fmt.Errorf("failed to commit leave decision: %w", err)
	}

	rec.Status = newStatus
	rec.DurationDays = models.LeaveDuration(rec.StartDate, rec.EndDate)

	return rec, nil
}

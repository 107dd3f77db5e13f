package repository

import (
	"context"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
)

type Repository struct {
	db Database
}

// EmployeeManager defines the repository operations for account and employee
// management: registration, credential lookup, directory search, profile
// edits, activation toggling, and the irreversible purge.
type EmployeeManager interface {
	RegisterEmployee(ctx context.Context, acc models.Account, emp models.Employee) (models.Employee, error)
	GetAccountByUsername(ctx context.Context, username string) (models.Account, error)
	GetViewer(ctx context.Context, accountID int64) (models.Viewer, error)
	GetEmployeeByCode(ctx context.Context, code string) (models.Employee, error)
	ListEmployees(ctx context.Context, query string, page int) ([]models.Employee, int, error)
	SearchEmployees(ctx context.Context, query string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, code, department, designation string) error
	SetAccountActive(ctx context.Context, code string, active bool) error
}

// AttendanceManager defines the repository operations around the daily
// attendance rows and their monthly aggregation.
type AttendanceManager interface {
	MarkAttendance(
		ctx context.Context, employeeID int64, day time.Time, action string, timestamp time.Time,
	) (models.Attendance, error)
	ListMonthAttendance(
		ctx context.Context, year int, month time.Month, employeeID *int64,
	) ([]models.AttendanceRecord, error)
	GetMonthlyStats(
		ctx context.Context, year int, month time.Month, department string, employeeID *int64,
	) ([]models.MonthlyStat, error)
}

// LeaveManager defines the repository operations of the leave workflow.
type LeaveManager interface {
	CreateLeave(ctx context.Context, employeeID int64, start, end time.Time, reason string) (models.Leave, error)
	ListLeaves(ctx context.Context, employeeID *int64, status string) ([]models.LeaveRecord, error)
	DecideLeave(ctx context.Context, leaveID, deciderAccountID int64, approve bool) (models.LeaveRecord, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database) *Repository {
	return &Repository{db: db}
}

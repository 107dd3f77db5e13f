package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PageSize is the number of rows per page in the employee directory.
const PageSize = 20

const uniqueViolation = "23505"

var (
	// ErrEmployeeNotFound is returned when no employee matches the given identifier.
	ErrEmployeeNotFound = errors.New("employee with this identifier not found")
	// ErrAccountNotFound is returned when no account matches the given username.
	ErrAccountNotFound = errors.New("account with this username not found")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("this username is already registered")
	// ErrEmployeeIDTaken is returned when the employee ID is already registered.
	ErrEmployeeIDTaken = errors.New("this employee ID is already registered")
)

// RegisterEmployee creates an account and its employee profile in a single
// transaction. The account carries the credentials and flags, the employee
// carries the public identifier and placement. A duplicate username or
// employee ID rolls the whole registration back, so no orphan account can
// remain behind a failed employee insert.
func (r *Repository) RegisterEmployee(
	ctx context.Context, acc models.Account, emp models.Employee,
) (models.Employee, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // omitted because checking for errors will not affect the function

	err = tx.QueryRow(ctx, CreateAccountSQL, acc.Username, acc.PasswordHash, acc.FullName, acc.IsStaff).
		Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to insert account: %w", mapUniqueViolation(err))
	}

	emp.AccountID = acc.ID
	err = tx.QueryRow(ctx, CreateEmployeeSQL, acc.ID, emp.EmployeeID, emp.Department, emp.Designation).
		Scan(&emp.ID, &emp.JoinedOn)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to insert employee: %w", mapUniqueViolation(err))
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Employee{}, fmt.Errorf("failed to commit registration: %w", err)
	}

	emp.Username = acc.Username
	emp.FullName = acc.FullName
	emp.IsActive = true
	emp.CreatedAt = acc.CreatedAt

	return emp, nil
}

// mapUniqueViolation converts a PostgreSQL unique violation into the matching
// sentinel error, based on which constraint fired.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "accounts_username_key":
		return ErrUsernameTaken
	case "employees_employee_id_key":
		return ErrEmployeeIDTaken
	default:
		return err
	}
}

// GetAccountByUsername retrieves an account with its password hash for
// credential verification.
func (r *Repository) GetAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	var acc models.Account

	err := r.db.QueryRow(ctx, GetAccountByUsernameSQL, username).Scan(
		&acc.ID, &acc.Username, &acc.PasswordHash, &acc.FullName, &acc.IsActive, &acc.IsStaff, &acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	return acc, nil
}

// GetViewer resolves the caller snapshot for an active account. Deactivated
// accounts resolve to ErrAccountNotFound, which invalidates their tokens.
func (r *Repository) GetViewer(ctx context.Context, accountID int64) (models.Viewer, error) {
	var viewer models.Viewer

	err := r.db.QueryRow(ctx, GetViewerSQL, accountID).Scan(
		&viewer.AccountID, &viewer.Username, &viewer.FullName,
		&viewer.IsStaff, &viewer.EmployeeID, &viewer.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Viewer{}, ErrAccountNotFound
		}
		return models.Viewer{}, fmt.Errorf("failed to get viewer: %w", err)
	}

	return viewer, nil
}

// GetEmployeeByCode retrieves an employee by the public employee identifier.
func (r *Repository) GetEmployeeByCode(ctx context.Context, code string) (models.Employee, error) {
	return r.getEmployee(ctx, GetEmployeeByCodeSQL, code)
}

// GetEmployeeByUsername retrieves an employee by the backing account username.
func (r *Repository) GetEmployeeByUsername(ctx context.Context, username string) (models.Employee, error) {
	return r.getEmployee(ctx, GetEmployeeByUsernameSQL, username)
}

func (r *Repository) getEmployee(ctx context.Context, query, key string) (models.Employee, error) {
	var emp models.Employee

	err := r.db.QueryRow(ctx, query, key).Scan(
		&emp.ID, &emp.AccountID, &emp.EmployeeID, &emp.Department, &emp.Designation, &emp.JoinedOn,
		&emp.Username, &emp.FullName, &emp.IsActive, &emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrEmployeeNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to get employee data: %w", err)
	}

	return emp, nil
}

// ListEmployees returns one page of active employees matching the search
// query, newest accounts first, along with the total match count. The query
// is a case-insensitive substring match over the employee ID, username and
// full name; an empty query matches everyone.
func (r *Repository) ListEmployees(ctx context.Context, query string, page int) ([]models.Employee, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	var total int
	if err := r.db.QueryRow(ctx, CountEmployeesSQL, query).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	rows, err := r.db.Query(ctx, ListEmployeesSQL, query, PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// SearchEmployees returns every active employee matching the search query,
// without pagination. Used for exports where the whole filtered set is wanted.
func (r *Repository) SearchEmployees(ctx context.Context, query string) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, SearchEmployeesSQL, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListAllEmployees returns the whole directory, deactivated accounts
// included, ordered by the public employee identifier.
func (r *Repository) ListAllEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, ListAllEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query all employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListInactiveEmployees returns every employee whose account is deactivated.
func (r *Repository) ListInactiveEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, ListInactiveEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query inactive employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListEmployeesByDepartment returns every employee of one department,
// active or not.
func (r *Repository) ListEmployeesByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, ListEmployeesByDepartmentSQL, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by department: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]models.Employee, error) {
	var employees []models.Employee

	for rows.Next() {
		var emp models.Employee
		err := rows.Scan(
			&emp.ID, &emp.AccountID, &emp.EmployeeID, &emp.Department, &emp.Designation, &emp.JoinedOn,
			&emp.Username, &emp.FullName, &emp.IsActive, &emp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// UpdateEmployee changes the department and designation of an employee.
func (r *Repository) UpdateEmployee(ctx context.Context, code, department, designation string) error {
	cmdTag, err := r.db.Exec(ctx, UpdateEmployeeSQL, code, department, designation)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", code, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// SetAccountActive toggles the is_active flag of the account behind an
// employee. Termination and re-activation never touch the employee data.
func (r *Repository) SetAccountActive(ctx context.Context, code string, active bool) error {
	cmdTag, err := r.db.Exec(ctx, SetAccountActiveSQL, code, active)
	if err != nil {
		return fmt.Errorf("failed to set account active state for %s: %w", code, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// PurgeResult counts the rows removed by one hard delete.
type PurgeResult struct {
	AttendanceRows int64 // Attendance rows removed
	LeaveRows      int64 // Leave rows removed
}

// HardDeleteEmployee irreversibly removes an employee and every row that
// references it, child tables first: attendance, then leaves, then the
// employee, then the account. The whole sequence runs in one transaction.
func (r *Repository) HardDeleteEmployee(ctx context.Context, emp models.Employee) (PurgeResult, error) {
	var result PurgeResult

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // omitted because checking for errors will not affect the function

	cmdTag, err := tx.Exec(ctx, DeleteAttendanceByEmployeeSQL, emp.ID)
	if err != nil {
		return result, fmt.Errorf("failed to delete attendance of %s: %w", emp.EmployeeID, err)
	}
	result.AttendanceRows = cmdTag.RowsAffected()

	cmdTag, err = tx.Exec(ctx, DeleteLeavesByEmployeeSQL, emp.ID)
	if err != nil {
		return result, fmt.Errorf("failed to delete leaves of %s: %w", emp.EmployeeID, err)
	}
	result.LeaveRows = cmdTag.RowsAffected()

	if _, err = tx.Exec(ctx, DeleteEmployeeSQL, emp.ID); err != nil {
		return result, fmt.Errorf("failed to delete employee %s: %w", emp.EmployeeID, err)
	}

	if _, err = tx.Exec(ctx, DeleteAccountSQL, emp.AccountID); err != nil {
		return result, fmt.Errorf("failed to delete account of %s: %w", emp.EmployeeID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("failed to commit hard delete: %w", err)
	}

	return result, nil
}

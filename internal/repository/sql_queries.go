package repository

const CreateAccountSQL = `
INSERT INTO accounts (username, password_hash, full_name, is_staff)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`

const CreateEmployeeSQL = `
INSERT INTO employees (account_id, employee_id, department, designation)
VALUES ($1, $2, $3, $4)
RETURNING id, joined_on;
`

const GetAccountByUsernameSQL = `
SELECT id, username, password_hash, full_name, is_active, is_staff, created_at
FROM accounts
WHERE username = $1;
`

const GetViewerSQL = `
SELECT a.id, a.username, a.full_name, a.is_staff, e.id, e.employee_id
FROM accounts a
JOIN employees e ON e.account_id = a.id
WHERE a.id = $1 AND a.is_active = TRUE;
`

const employeeColumns = `
    e.id, e.account_id, e.employee_id, e.department, e.designation, e.joined_on,
    a.username, a.full_name, a.is_active, a.created_at
`

const GetEmployeeByCodeSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE e.employee_id = $1;
`

const GetEmployeeByUsernameSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE a.username = $1;
`

const ListEmployeesSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE a.is_active = TRUE
    AND ($1::text = ''
        OR e.employee_id ILIKE '%' || $1 || '%'
        OR a.username ILIKE '%' || $1 || '%'
        OR a.full_name ILIKE '%' || $1 || '%')
ORDER BY a.created_at DESC
LIMIT $2 OFFSET $3;
`

const CountEmployeesSQL = `
SELECT count(*)
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE a.is_active = TRUE
    AND ($1::text = ''
        OR e.employee_id ILIKE '%' || $1 || '%'
        OR a.username ILIKE '%' || $1 || '%'
        OR a.full_name ILIKE '%' || $1 || '%');
`

const SearchEmployeesSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE a.is_active = TRUE
    AND ($1::text = ''
        OR e.employee_id ILIKE '%' || $1 || '%'
        OR a.username ILIKE '%' || $1 || '%'
        OR a.full_name ILIKE '%' || $1 || '%')
ORDER BY a.created_at DESC;
`

const ListAllEmployeesSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
ORDER BY e.employee_id ASC;
`

const ListInactiveEmployeesSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE a.is_active = FALSE
ORDER BY e.employee_id ASC;
`

const ListEmployeesByDepartmentSQL = `
SELECT` + employeeColumns + `
FROM employees e
JOIN accounts a ON a.id = e.account_id
WHERE e.department = $1
ORDER BY e.employee_id ASC;
`

const UpdateEmployeeSQL = `
UPDATE employees
SET department = $2, designation = $3
WHERE employee_id = $1;
`

const SetAccountActiveSQL = `
UPDATE accounts
SET is_active = $2
WHERE id = (SELECT account_id FROM employees WHERE employee_id = $1);
`

const InsertAttendanceDaySQL = `
INSERT INTO attendance (employee_id, date)
VALUES ($1, $2)
ON CONFLICT (employee_id, date) DO NOTHING;
`

const LockAttendanceDaySQL = `
SELECT id, employee_id, date, clock_in, clock_out, worked_seconds
FROM attendance
WHERE employee_id = $1 AND date = $2
FOR UPDATE;
`

const UpdateAttendanceClocksSQL = `
UPDATE attendance
SET clock_in = $2, clock_out = $3, worked_seconds = $4
WHERE id = $1;
`

const ListMonthAttendanceSQL = `
SELECT e.employee_id, a.full_name, e.department, att.date, att.clock_in, att.clock_out, att.worked_seconds
FROM attendance att
JOIN employees e ON e.id = att.employee_id
JOIN accounts a ON a.id = e.account_id
WHERE att.date >= $1 AND att.date < $2
    AND ($3::bigint IS NULL OR att.employee_id = $3)
ORDER BY att.date ASC, e.employee_id ASC;
`

const MonthlyStatsSQL = `
SELECT
    e.employee_id,
    a.full_name,
    e.department,
    count(att.id) FILTER (WHERE att.clock_in IS NOT NULL) AS days_present,
    COALESCE(sum(att.worked_seconds), 0) AS total_seconds
FROM employees e
JOIN accounts a ON a.id = e.account_id
LEFT JOIN attendance att
    ON att.employee_id = e.id
    AND att.date >= $1 AND att.date < $2
WHERE ($3::text = '' OR e.department = $3)
    AND ($4::bigint IS NULL OR e.id = $4)
GROUP BY e.employee_id, a.full_name, e.department
ORDER BY e.employee_id ASC;
`

const CreateLeaveSQL = `
INSERT INTO leaves (employee_id, start_date, end_date, reason)
VALUES ($1, $2, $3, $4)
RETURNING id, status, applied_at;
`

const ListLeavesSQL = `
SELECT
    l.id, e.employee_id, a.full_name, l.start_date, l.end_date, l.reason,
    l.status, l.applied_at, COALESCE(NULLIF(ap.full_name, ''), ap.username, ''), l.approved_at
FROM leaves l
JOIN employees e ON e.id = l.employee_id
JOIN accounts a ON a.id = e.account_id
LEFT JOIN accounts ap ON ap.id = l.approved_by
WHERE ($1::bigint IS NULL OR l.employee_id = $1)
    AND ($2::text = '' OR l.status = $2)
ORDER BY l.applied_at DESC;
`

const LockLeaveSQL = `
SELECT l.id, l.status, l.start_date, l.end_date, e.employee_id, a.full_name
FROM leaves l
JOIN employees e ON e.id = l.employee_id
JOIN accounts a ON a.id = e.account_id
WHERE l.id = $1
FOR UPDATE OF l;
`

const DecideLeaveSQL = `
UPDATE leaves
SET status = $2, approved_by = $3, approved_at = now()
WHERE id = $1;
`

const DeleteAttendanceByEmployeeSQL = `
DELETE FROM attendance WHERE employee_id = $1;
`

const DeleteLeavesByEmployeeSQL = `
DELETE FROM leaves WHERE employee_id = $1;
`

const DeleteEmployeeSQL = `
DELETE FROM employees WHERE id = $1;
`

const DeleteAccountSQL = `
DELETE FROM accounts WHERE id = $1;
`

package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/chronos/internal/auth"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	accountColumns := []string{"id", "created_at"}

	t.Run("error - invalid input", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/register",
			`{"username": "jdoe", "full_name": "John Doe", "employee_id": "EMP042"}`))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - unknown department", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/register",
			`{"username": "jdoe", "password": "password123", "full_name": "John Doe",
			  "employee_id": "EMP042", "department": "SPACE"}`))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.JSONEq(t, `{"error": "unknown department"}`, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - duplicate username rolls back", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(repository.CreateAccountSQL)).
			WithArgs("jdoe", pgxmock.AnyArg(), "John Doe", false).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})
		mock.ExpectRollback()

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/register",
			`{"username": "jdoe", "password": "password123", "full_name": "John Doe", "employee_id": "EMP042"}`))

		require.Equal(t, http.StatusConflict, rr.Code)
		require.JSONEq(t, `{"error": "username already taken"}`, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - account and employee created together", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		createdAt := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
		joinedOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(repository.CreateAccountSQL)).
			WithArgs("jdoe", pgxmock.AnyArg(), "John Doe", false).
			WillReturnRows(pgxmock.NewRows(accountColumns).AddRow(int64(1), createdAt))
		mock.ExpectQuery(regexp.QuoteMeta(repository.CreateEmployeeSQL)).
			WithArgs(int64(1), "EMP042", "ENG", "Engineer").
			WillReturnRows(pgxmock.NewRows([]string{"id", "joined_on"}).AddRow(int64(10), joinedOn))
		mock.ExpectCommit()

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/register",
			`{"username": "jdoe", "password": "password123", "full_name": "John Doe",
			  "employee_id": "EMP042", "department": "ENG", "designation": "Engineer"}`))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"employee_id":"EMP042"`)
		assert.Contains(t, rr.Body.String(), `"username":"jdoe"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	passwordHash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	accountColumns := []string{"id", "username", "password_hash", "full_name", "is_active", "is_staff", "created_at"}
	accountRow := func() *pgxmock.Rows {
		return pgxmock.NewRows(accountColumns).
			AddRow(int64(1), "jdoe", passwordHash, "John Doe", true, false, time.Now())
	}

	t.Run("error - unknown username", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetAccountByUsernameSQL)).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/login",
			`{"username": "ghost", "password": "whatever"}`))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.JSONEq(t, `{"error": "invalid credentials"}`, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - wrong password", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetAccountByUsernameSQL)).
			WithArgs("jdoe").
			WillReturnRows(accountRow())

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/login",
			`{"username": "jdoe", "password": "wrong-password"}`))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.JSONEq(t, `{"error": "invalid credentials"}`, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - deactivated account", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetAccountByUsernameSQL)).
			WithArgs("jdoe").
			WillReturnRows(accountRow())
		mock.ExpectQuery(regexp.QuoteMeta(repository.GetViewerSQL)).
			WithArgs(int64(1)).
			WillReturnError(pgx.ErrNoRows)

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/login",
			`{"username": "jdoe", "password": "correct-password"}`))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - token and viewer returned", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetAccountByUsernameSQL)).
			WithArgs("jdoe").
			WillReturnRows(accountRow())
		expectViewer(mock, 1, false, 10, "EMP042")

		rr := doRequest(srv, jsonRequest(http.MethodPost, "/api/login",
			`{"username": "jdoe", "password": "correct-password"}`))

		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			AccessToken string `json:"access_token"`
			User        struct {
				Username   string `json:"username"`
				EmployeeID string `json:"employee_id"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body.AccessToken)
		assert.Equal(t, "jdoe", body.User.Username)
		assert.Equal(t, "EMP042", body.User.EmployeeID)

		claims, err := auth.ParseAccessToken(body.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "EMP042", claims.EmployeeCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMeHandler(t *testing.T) {
	t.Parallel()

	t.Run("error - missing authorization", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t)

		rr := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.JSONEq(t, `{"error": "missing authorization"}`, rr.Body.String())
	})

	t.Run("error - garbage token", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := doRequest(srv, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.JSONEq(t, `{"error": "invalid token"}`, rr.Body.String())
	})

	t.Run("error - token of deactivated account", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GetViewerSQL)).
			WithArgs(int64(1)).
			WillReturnError(pgx.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", bearerToken(t, 1, false, "EMP042"))
		rr := doRequest(srv, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.JSONEq(t, `{"error": "account is not active"}`, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - viewer snapshot", func(t *testing.T) {
		t.Parallel()
		srv, mock := newTestServer(t)

		expectViewer(mock, 1, false, 10, "EMP042")

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", bearerToken(t, 1, false, "EMP042"))
		rr := doRequest(srv, req)

		require.Equal(t, http.StatusOK, rr.Code)
		expected := `{
			"account_id": 1, "username": "jdoe", "full_name": "John Doe",
			"is_staff": false, "employee_id": "EMP042"
		}`
		require.JSONEq(t, expected, rr.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

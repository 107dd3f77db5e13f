package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/chronos/internal/auth"
	"github.com/UnknownOlympus/chronos/internal/config"
	"github.com/UnknownOlympus/chronos/internal/metrics"
	"github.com/UnknownOlympus/chronos/internal/notify"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/UnknownOlympus/chronos/internal/server"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*server.Server, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	cfg := &config.Config{
		Env:      "test",
		HTTPPort: 8080,
		Auth:     config.AuthConfig{Secret: testSecret, TokenTTL: time.Hour},
		Timezone: "Asia/Kolkata",
		Location: location,
	}

	repo := repository.NewRepository(mock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	srv := server.NewServer(logger, cfg, repo, repo, repo, appMetrics, notify.Nop{})

	return srv, mock
}

func doRequest(srv *server.Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func bearerToken(t *testing.T, accountID int64, isStaff bool, code string) string {
	t.Helper()

	token, err := auth.GenerateAccessToken(accountID, isStaff, code, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

var viewerColumns = []string{"id", "username", "full_name", "is_staff", "employee_pk", "employee_id"}

// expectViewer queues the viewer lookup the auth middleware performs on
// every protected request.
func expectViewer(mock pgxmock.PgxPoolIface, accountID int64, isStaff bool, employeePK int64, code string) {
	username, fullName := "jdoe", "John Doe"
	if isStaff {
		username, fullName = "admin", "Site Admin"
	}

	mock.ExpectQuery(regexp.QuoteMeta(repository.GetViewerSQL)).
		WithArgs(accountID).
		WillReturnRows(pgxmock.NewRows(viewerColumns).
			AddRow(accountID, username, fullName, isStaff, employeePK, code))
}

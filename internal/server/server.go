// Package server exposes the attendance service over HTTP: the JSON API on
// the main port and a separate monitoring listener with health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/chronos/internal/config"
	"github.com/UnknownOlympus/chronos/internal/metrics"
	"github.com/UnknownOlympus/chronos/internal/notify"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server contains the gin engine and the collaborators the handlers need.
type Server struct {
	log      *slog.Logger
	cfg      *config.Config
	emrepo   repository.EmployeeManager
	atrepo   repository.AttendanceManager
	lvrepo   repository.LeaveManager
	metrics  *metrics.Metrics
	notifier notify.Notifier
	router   *gin.Engine
	srv      *http.Server
}

// NewServer creates the API server and registers every route.
func NewServer(
	log *slog.Logger,
	cfg *config.Config,
	emrepo repository.EmployeeManager,
	atrepo repository.AttendanceManager,
	lvrepo repository.LeaveManager,
	appMetrics *metrics.Metrics,
	notifier notify.Notifier,
) *Server {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		log:      log,
		cfg:      cfg,
		emrepo:   emrepo,
		atrepo:   atrepo,
		lvrepo:   lvrepo,
		metrics:  appMetrics,
		notifier: notifier,
		router:   gin.New(),
	}

	srv.router.Use(gin.Recovery(), srv.requestLogger(), srv.observeRequests())
	srv.registerRoutes()

	readTimeout := 5
	writeTimeout := 30
	srv.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      srv.router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	return srv
}

// registerRoutes configures all routes (public, authenticated, staff-only).
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/register", s.registerHandler)
		api.POST("/login", s.loginHandler)
		// Kiosk terminals post marks by badge id without a session.
		api.POST("/attendance/mark", s.markAttendanceHandler)
	}

	protected := api.Group("/")
	protected.Use(s.authRequired())
	{
		protected.GET("/me", s.meHandler)
		protected.GET("/attendance", s.listAttendanceHandler)
		protected.GET("/report", s.monthlyReportHandler)

		protected.POST("/leave", s.applyLeaveHandler)
		protected.GET("/leave", s.listLeavesHandler)
		protected.POST("/leave/:id/approve", s.staffOnly(), s.approveLeaveHandler)
		protected.POST("/leave/:id/reject", s.staffOnly(), s.rejectLeaveHandler)
		protected.POST("/leave/decide", s.staffOnly(), s.decideLeavesHandler)

		protected.GET("/employees", s.staffOnly(), s.listEmployeesHandler)
		protected.PATCH("/employees/:employee_id", s.staffOnly(), s.updateEmployeeHandler)
		protected.POST("/employees/:employee_id/terminate", s.staffOnly(), s.terminateEmployeeHandler)
		protected.POST("/employees/:employee_id/activate", s.staffOnly(), s.activateEmployeeHandler)
	}
}

// Handler returns the routing tree of the API server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start launches the API listener and blocks until it stops.
func (s *Server) Start() {
	s.log.Info("API server is starting...", "port", s.cfg.HTTPPort)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("API server failed", "error", err)
	}
}

// Stop gracefully shuts down the API listener and logs the action.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("API server is stopped...")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("API server failed to shutdown", "error", err)
	}
}

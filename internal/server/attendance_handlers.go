package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/gin-gonic/gin"
)

type markAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Action     string `json:"action"      binding:"required"`
	Timestamp  string `json:"timestamp"`
}

// markAttendanceHandler records a clock event for a badge id. The day row is
// found or created for the date in the configured local zone and the matching
// clock field is set; a repeated IN simply overwrites the earlier one, which
// is how terminals are expected to correct mistaken badges.
func (s *Server) markAttendanceHandler(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	timestamp := time.Now()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
			return
		}
		timestamp = parsed
	}

	emp, err := s.emrepo.GetEmployeeByCode(c.Request.Context(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		s.log.Error("Failed to resolve employee for mark", "employee_id", req.EmployeeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark attendance"})
		return
	}

	action := strings.ToUpper(strings.TrimSpace(req.Action))
	year, month, day := timestamp.In(s.cfg.Location).Date()
	localDay := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	startTime := time.Now()
	att, err := s.atrepo.MarkAttendance(c.Request.Context(), emp.ID, localDay, action, timestamp)
	s.metrics.DBQueryDuration.WithLabelValues("mark_attendance").Observe(time.Since(startTime).Seconds())
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
			return
		}
		s.log.Error("Failed to mark attendance", "employee_id", req.EmployeeID, "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark attendance"})
		return
	}

	s.metrics.AttendanceMarks.WithLabelValues(action).Inc()
	s.log.Info("Attendance marked", "employee_id", emp.EmployeeID, "action", action, "date", att.Date.Format("2006-01-02"))

	c.JSON(http.StatusOK, gin.H{"status": "ok", "employee_id": emp.EmployeeID, "attendance": att})
}

// listAttendanceHandler returns the raw day rows of one month. Staff may
// filter by employee, everyone else is narrowed to their own rows.
func (s *Server) listAttendanceHandler(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	viewer := currentViewer(c)
	var employeeFilter *int64
	switch {
	case !viewer.IsStaff:
		employeeFilter = &viewer.EmployeeID
	case c.Query("employee_id") != "":
		emp, err := s.emrepo.GetEmployeeByCode(c.Request.Context(), c.Query("employee_id"))
		if err != nil {
			if errors.Is(err, repository.ErrEmployeeNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
				return
			}
			s.log.Error("Failed to resolve employee filter", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
			return
		}
		employeeFilter = &emp.ID
	}

	startTime := time.Now()
	records, err := s.atrepo.ListMonthAttendance(c.Request.Context(), year, month, employeeFilter)
	s.metrics.DBQueryDuration.WithLabelValues("list_attendance").Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.log.Error("Failed to list attendance", "year", year, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
		return
	}

	if c.Query("download") == "csv" {
		var buf bytes.Buffer
		if err = report.WriteAttendanceCSV(&buf, records); err != nil {
			s.log.Error("Failed to render attendance CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render csv"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%d_%02d.csv", year, month))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": int(month), "records": records})
}

// parseYearMonth reads the mandatory year and month query parameters and
// writes the error response itself when they are unusable.
func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}

	return year, time.Month(month), true
}

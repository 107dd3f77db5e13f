package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type applyLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
	Reason    string `json:"reason"`
}

type decideLeavesRequest struct {
	IDs    []int64 `json:"ids"    binding:"required,min=1"`
	Action string  `json:"action" binding:"required,oneof=approve reject"`
}

type leaveDecisionResult struct {
	ID     int64  `json:"id"`
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// applyLeaveHandler submits a pending leave request for the caller.
func (s *Server) applyLeaveHandler(c *gin.Context) {
	var req applyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "end date is before start date"})
		return
	}

	viewer := currentViewer(c)
	leave, err := s.lvrepo.CreateLeave(c.Request.Context(), viewer.EmployeeID, start, end, req.Reason)
	if err != nil {
		s.log.Error("Failed to create leave request", "employee_id", viewer.EmployeeCode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply for leave"})
		return
	}

	s.notifier.LeaveRequested(viewer.EmployeeCode, viewer.FullName, leave)
	s.log.Info("Leave requested", "leave_id", leave.ID, "employee_id", viewer.EmployeeCode)

	c.JSON(http.StatusCreated, gin.H{"leave": leave})
}

// listLeavesHandler returns leave requests, optionally narrowed by status.
// Staff see everyone, everyone else only themselves.
func (s *Server) listLeavesHandler(c *gin.Context) {
	status := strings.ToUpper(c.Query("status"))
	switch status {
	case "", models.LeavePending, models.LeaveApproved, models.LeaveRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	viewer := currentViewer(c)
	var employeeFilter *int64
	if !viewer.IsStaff {
		employeeFilter = &viewer.EmployeeID
	}

	records, err := s.lvrepo.ListLeaves(c.Request.Context(), employeeFilter, status)
	if err != nil {
		s.log.Error("Failed to list leaves", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leaves"})
		return
	}

	if c.Query("download") == "csv" {
		var buf bytes.Buffer
		if err = report.WriteLeavesCSV(&buf, records); err != nil {
			s.log.Error("Failed to render leaves CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render csv"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=leaves.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaves": records})
}

func (s *Server) approveLeaveHandler(c *gin.Context) {
	s.decideLeave(c, true)
}

func (s *Server) rejectLeaveHandler(c *gin.Context) {
	s.decideLeave(c, false)
}

// decideLeave settles a single pending request. Decisions are one-way, an
// already decided request is reported as a conflict and left untouched.
func (s *Server) decideLeave(c *gin.Context, approve bool) {
	leaveID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave id"})
		return
	}

	viewer := currentViewer(c)
	record, err := s.lvrepo.DecideLeave(c.Request.Context(), leaveID, viewer.AccountID, approve)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLeaveNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "leave request not found"})
		case errors.Is(err, repository.ErrLeaveAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": "leave request is already decided"})
		default:
			s.log.Error("Failed to decide leave", "leave_id", leaveID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decision failed"})
		}
		return
	}

	s.notifier.LeaveDecided(record)
	s.log.Info("Leave decided", "leave_id", leaveID, "status", record.Status, "decided_by", viewer.Username)

	c.JSON(http.StatusOK, gin.H{"leave": record})
}

// decideLeavesHandler settles a batch of requests with one action. Failures
// do not stop the batch, every id gets its own outcome in the response.
func (s *Server) decideLeavesHandler(c *gin.Context) {
	var req decideLeavesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	viewer := currentViewer(c)
	approve := req.Action == "approve"

	results := make([]leaveDecisionResult, 0, len(req.IDs))
	decided := 0
	for _, leaveID := range req.IDs {
		record, err := s.lvrepo.DecideLeave(c.Request.Context(), leaveID, viewer.AccountID, approve)
		if err != nil {
			results = append(results, leaveDecisionResult{ID: leaveID, OK: false, Error: decisionError(err)})
			continue
		}

		s.notifier.LeaveDecided(record)
		results = append(results, leaveDecisionResult{ID: leaveID, OK: true, Status: record.Status})
		decided++
	}

	s.log.Info("Bulk leave decision applied",
		"action", req.Action, "decided", decided, "failed", len(req.IDs)-decided, "decided_by", viewer.Username)

	c.JSON(http.StatusOK, gin.H{"decided": decided, "failed": len(req.IDs) - decided, "results": results})
}

func decisionError(err error) string {
	switch {
	case errors.Is(err, repository.ErrLeaveNotFound), errors.Is(err, repository.ErrLeaveAlreadyDecided):
		return err.Error()
	default:
		return "decision failed"
	}
}

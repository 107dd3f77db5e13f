package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/UnknownOlympus/chronos/internal/repository"
	"github.com/gin-gonic/gin"
)

type updateEmployeeRequest struct {
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

// listEmployeesHandler searches the directory of active employees. The JSON
// form is paginated; the CSV download exports the whole filtered set.
func (s *Server) listEmployeesHandler(c *gin.Context) {
	query := c.Query("q")

	if c.Query("download") == "csv" {
		employees, err := s.emrepo.SearchEmployees(c.Request.Context(), query)
		if err != nil {
			s.log.Error("Failed to search employees", "query", query, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
			return
		}

		var buf bytes.Buffer
		if err = report.WriteEmployeesCSV(&buf, employees); err != nil {
			s.log.Error("Failed to render employees CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render csv"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=employees.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	startTime := time.Now()
	employees, total, err := s.emrepo.ListEmployees(c.Request.Context(), query, page)
	s.metrics.DBQueryDuration.WithLabelValues("list_employees").Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.log.Error("Failed to list employees", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"total":     total,
		"page":      page,
		"page_size": repository.PageSize,
	})
}

// updateEmployeeHandler edits the department or designation of an employee.
// Absent fields keep their current value.
func (s *Server) updateEmployeeHandler(c *gin.Context) {
	code := c.Param("employee_id")

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	emp, err := s.emrepo.GetEmployeeByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		s.log.Error("Failed to load employee", "employee_id", code, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}

	if req.Department != nil {
		if *req.Department != "" && !models.IsValidDepartment(*req.Department) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
			return
		}
		emp.Department = *req.Department
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}

	if err = s.emrepo.UpdateEmployee(c.Request.Context(), code, emp.Department, emp.Designation); err != nil {
		s.log.Error("Failed to update employee", "employee_id", code, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}

	s.log.Info("Employee updated", "employee_id", code, "department", emp.Department, "designation", emp.Designation)
	c.JSON(http.StatusOK, gin.H{"employee": emp})
}

// terminateEmployeeHandler deactivates the account behind an employee. The
// attendance and leave history stays in place, only access is revoked.
func (s *Server) terminateEmployeeHandler(c *gin.Context) {
	s.setEmployeeActive(c, false)
}

func (s *Server) activateEmployeeHandler(c *gin.Context) {
	s.setEmployeeActive(c, true)
}

func (s *Server) setEmployeeActive(c *gin.Context, active bool) {
	code := c.Param("employee_id")

	err := s.emrepo.SetAccountActive(c.Request.Context(), code, active)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		s.log.Error("Failed to change account state", "employee_id", code, "active", active, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change account state"})
		return
	}

	s.log.Info("Account state changed", "employee_id", code, "active", active)
	c.JSON(http.StatusOK, gin.H{"employee_id": code, "is_active": active})
}

package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// monthlyReportHandler aggregates one month of attendance per employee.
// Staff may narrow by department; non-staff always get a report over their
// own rows and their department filter is ignored rather than rejected.
func (s *Server) monthlyReportHandler(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	viewer := currentViewer(c)
	department := c.Query("department")
	var employeeFilter *int64
	if !viewer.IsStaff {
		employeeFilter = &viewer.EmployeeID
		department = ""
	}

	if department != "" && !models.IsValidDepartment(department) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
		return
	}

	startTime := time.Now()
	stats, err := s.atrepo.GetMonthlyStats(c.Request.Context(), year, month, department, employeeFilter)
	s.metrics.DBQueryDuration.WithLabelValues("monthly_stats").Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.log.Error("Failed to aggregate monthly stats", "year", year, "month", month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	rep := report.Build(year, month, stats)

	format := c.Query("download")
	switch format {
	case "":
		c.JSON(http.StatusOK, rep)
		return
	case "csv", "excel", "pdf":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown download format"})
		return
	}

	renderStart := time.Now()
	defer func() {
		s.metrics.ReportGeneration.WithLabelValues(format).Observe(time.Since(renderStart).Seconds())
	}()

	filename := fmt.Sprintf("report_%d_%02d", year, month)
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err = report.WriteReportCSV(&buf, rep); err != nil {
			s.log.Error("Failed to render report CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename+".csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "excel":
		buf, err := report.GenerateExcelReport(rep)
		if err != nil {
			s.log.Error("Failed to render report XLSX", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename+".xlsx")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	case "pdf":
		// TODO: produce a real PDF here; for now the CSV bytes ship under
		// the PDF filename that existing clients expect.
		var buf bytes.Buffer
		if err = report.WriteReportCSV(&buf, rep); err != nil {
			s.log.Error("Failed to render report CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename+".pdf")
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

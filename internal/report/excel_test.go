package report_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateExcelReport(t *testing.T) {
	stats := []models.MonthlyStat{
		{EmployeeID: "EMP001", Name: "Alice", Department: "IT", DaysPresent: 20, TotalSeconds: 612000},
		{EmployeeID: "EMP002", Name: "Bob", Department: "HR", DaysPresent: 1, TotalSeconds: 30600},
	}
	rep := report.Build(2025, time.March, stats)

	t.Run("successful report generation", func(t *testing.T) {
		buffer, err := report.GenerateExcelReport(rep)

		require.NoError(t, err)
		assert.NotNil(t, buffer)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		sheetList := f.GetSheetList()
		assert.Equal(t, []string{"Attendance March 2025"}, sheetList)

		headerVal, err := f.GetCellValue("Attendance March 2025", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Employee ID", headerVal)

		firstRowVal, err := f.GetCellValue("Attendance March 2025", "A2")
		require.NoError(t, err)
		assert.Equal(t, "EMP001", firstRowVal)

		totalTimeVal, err := f.GetCellValue("Attendance March 2025", "E3")
		require.NoError(t, err)
		assert.Equal(t, "8h 30m", totalTimeVal)

		summaryLabel, err := f.GetCellValue("Attendance March 2025", "A5")
		require.NoError(t, err)
		assert.Equal(t, "Working Days", summaryLabel)
	})

	t.Run("empty report still renders the sheet", func(t *testing.T) {
		buffer, err := report.GenerateExcelReport(report.Build(2025, time.March, nil))

		require.NoError(t, err)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		headerVal, err := f.GetCellValue("Attendance March 2025", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Employee ID", headerVal)
	})
}

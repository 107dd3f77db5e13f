package report_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/chronos/internal/models"
	"github.com/UnknownOlympus/chronos/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("rows keep order and formatting", func(t *testing.T) {
		t.Parallel()

		stats := []models.MonthlyStat{
			{EmployeeID: "EMP001", Name: "Alice", Department: "IT", DaysPresent: 20, TotalSeconds: 612000},
			{EmployeeID: "EMP002", Name: "Bob", Department: "HR", DaysPresent: 1, TotalSeconds: 30600},
		}

		rep := report.Build(2025, time.March, stats)

		require.Len(t, rep.Rows, 2)
		assert.Equal(t, 31, rep.Summary.WorkingDays)

		assert.Equal(t, "EMP001", rep.Rows[0].EmployeeID)
		assert.Equal(t, "170h 0m", rep.Rows[0].TotalTime)
		assert.Equal(t, "64.5%", rep.Rows[0].AttendancePercent)

		assert.Equal(t, "8h 30m", rep.Rows[1].TotalTime)
		assert.Equal(t, "3.2%", rep.Rows[1].AttendancePercent)
	})

	t.Run("summary aggregates all rows", func(t *testing.T) {
		t.Parallel()

		stats := []models.MonthlyStat{
			{EmployeeID: "EMP001", DaysPresent: 20, TotalSeconds: 612000},
			{EmployeeID: "EMP002", DaysPresent: 1, TotalSeconds: 30600},
		}

		rep := report.Build(2025, time.March, stats)

		assert.Equal(t, 2, rep.Summary.Employees)
		assert.Equal(t, "178h", rep.Summary.TotalHours)
		assert.Equal(t, "33.9%", rep.Summary.AverageAttendance)
	})

	t.Run("full attendance reads one hundred percent", func(t *testing.T) {
		t.Parallel()

		stats := []models.MonthlyStat{
			{EmployeeID: "EMP001", DaysPresent: 30, TotalSeconds: 0},
		}

		rep := report.Build(2025, time.April, stats)

		assert.Equal(t, 30, rep.Summary.WorkingDays)
		assert.Equal(t, "100.0%", rep.Rows[0].AttendancePercent)
		assert.Equal(t, "100.0%", rep.Summary.AverageAttendance)
	})

	t.Run("no employees averages to plain zero", func(t *testing.T) {
		t.Parallel()

		rep := report.Build(2025, time.March, nil)

		assert.Empty(t, rep.Rows)
		assert.Zero(t, rep.Summary.Employees)
		assert.Equal(t, "0h", rep.Summary.TotalHours)
		assert.Equal(t, "0%", rep.Summary.AverageAttendance)
	})

	t.Run("february length follows the year", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 28, report.Build(2025, time.February, nil).Summary.WorkingDays)
		assert.Equal(t, 29, report.Build(2024, time.February, nil).Summary.WorkingDays)
	})

	t.Run("period label", func(t *testing.T) {
		t.Parallel()

		rep := report.Build(2025, time.March, nil)

		assert.Equal(t, "March 2025", rep.PeriodLabel())
	})
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "8h 30m", report.FormatDuration(30600))
	assert.Equal(t, "0h 0m", report.FormatDuration(0))
	assert.Equal(t, "0h 0m", report.FormatDuration(59))
	assert.Equal(t, "1h 1m", report.FormatDuration(3661))
}

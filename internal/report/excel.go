package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Generator holds the state for the Excel report generation process.
type Generator struct {
	file *excelize.File
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// GenerateExcelReport renders the monthly report as a single-sheet workbook:
// a styled header row, one line per employee, and the summary block below
// the table. It returns a bytes.Buffer with the finished file.
func GenerateExcelReport(rep Report) (*bytes.Buffer, error) {
	var err error

	gen := NewGenerator()
	defer gen.file.Close()

	sheetName := truncateSheetName("Attendance " + rep.PeriodLabel())

	if _, err = gen.file.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
	}

	if err = gen.setupSheet(sheetName, len(rep.Rows)); err != nil {
		return nil, fmt.Errorf("failed to setup sheet '%s': %w", sheetName, err)
	}

	headerIndex := 2
	for i, row := range rep.Rows {
		if err = gen.addRow(sheetName, i+headerIndex, row); err != nil { // i+2, because the first row - header
			return nil, fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
		}
	}

	if err = gen.addSummary(sheetName, len(rep.Rows)+headerIndex+1, rep.Summary); err != nil {
		return nil, fmt.Errorf("failed to add summary block: %w", err)
	}

	// setup first sheet as active
	gen.file.SetActiveSheet(0)

	// delete default sheet
	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err = gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

// setupSheet initializes the sheet with headers, styles, and column widths.
// It creates a header style, sets the row height for the headers, and
// populates the headers in the first row. It also configures the width for
// each column and adds a table spanning the data range.
func (g *Generator) setupSheet(sheetName string, rowCount int) error {
	var err error

	// Style creating
	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create new style: %w", err)
	}

	// Headers creating
	rowHeighnt := 20
	headers := []string{"Employee ID", "Name", "Department", "Days Present", "Total Time", "Attendance %"}
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeighnt)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	// Setup width column
	widths := map[string]float64{
		"A": 15, "B": 30, "C": 14, "D": 14, "E": 14, "F": 14, //nolint:mnd // const values for row width
	}
	for col, width := range widths {
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// Add table
	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:F%d", rowCount+1),
		Name:      "table_" + strings.ReplaceAll(sheetName, " ", ""),
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

// addRow adds one employee line to the sheet at the given row number.
func (g *Generator) addRow(sheetName string, rowNum int, row Row) error {
	rowData := []interface{}{
		row.EmployeeID,
		row.Name,
		row.Department,
		row.DaysPresent,
		row.TotalTime,
		row.AttendancePercent,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)

	if err := g.file.SetSheetRow(sheetName, cell, &rowData); err != nil {
		return fmt.Errorf("failed to set sheet row: %w", err)
	}

	return nil
}

// addSummary writes the summary block as label/value pairs below the table.
func (g *Generator) addSummary(sheetName string, startRow int, summary Summary) error {
	lines := [][]interface{}{
		{"Working Days", summary.WorkingDays},
		{"Employees", summary.Employees},
		{"Total Hours", summary.TotalHours},
		{"Average Attendance", summary.AverageAttendance},
	}

	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, startRow+i)
		if err := g.file.SetSheetRow(sheetName, cell, &line); err != nil {
			return fmt.Errorf("failed to set summary row: %w", err)
		}
	}

	return nil
}

// truncateSheetName truncates the given sheet name to a maximum of 31 runes.
// If the name exceeds 31 runes, it returns the first 31 runes of the name.
// Otherwise, it returns the name as is.
func truncateSheetName(name string) string {
	if utf8.RuneCountInString(name) > 31 {
		runes := []rune(name)
		return string(runes[:31])
	}
	return name
}

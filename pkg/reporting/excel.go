package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteResultsXLSX writes a workbook with the ranked results and a summary
func (r *DefaultExcelReporter) WriteResultsXLSX(report *StudyReport, path string) error {
	// Ensure directory exists before creating file
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	// Replace default sheet and create additional sheets
	if err := fx.SetSheetName(fx.GetSheetName(0), resultsSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(summarySheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeResultsSheet(fx, resultsSheet, report, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - Dark blue background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"}, // Dark slate gray
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Base style (light borders)
	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{Border: lightBorder})
	if err != nil {
		return styles, err
	}

	// Number style (six decimals, right aligned)
	decimals := "0.000000"
	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &decimals,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Border:       lightBorder,
	})
	if err != nil {
		return styles, err
	}

	// Best result (light green background)
	styles.BestStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E6FFE6"},
			Pattern: 1,
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	// Summary labels (blue background)
	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"}, // Blue
			Pattern: 1,
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *DefaultExcelReporter) writeResultsSheet(fx *excelize.File, sheet string, report *StudyReport, styles ExcelStyles) error {
	widths := map[string]float64{"A": 10, "B": 38, "C": 6, "D": 10, "E": 16, "F": 12, "G": 16, "H": 24, "I": 40}
	for col, w := range widths {
		if err := fx.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	headers := []interface{}{"UCB Rank", "Run ID", "Run", "Position", "Value", "Evaluations", "Variance", "Action Vector", "Params"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, res := range report.Results {
		values := []interface{}{
			res.UCBRank,
			res.RunID,
			res.Run,
			res.Position,
			res.Value,
			res.Evaluations,
			res.Variance,
			FormatVector(res.ActionVector),
			FormatParams(res.Params),
		}
		r.WriteResultRow(fx, sheet, i+2, values, styles)
	}

	return fx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// WriteResultRow writes one result row; the top ranked row is highlighted
func (r *DefaultExcelReporter) WriteResultRow(fx *excelize.File, sheet string, row int, values []interface{}, styles ExcelStyles) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		fx.SetCellValue(sheet, cell, v)

		style := styles.BaseStyle
		if _, isFloat := v.(float64); isFloat {
			style = styles.NumberStyle
		}
		if row == 2 {
			style = styles.BestStyle
		}
		fx.SetCellStyle(sheet, cell, cell, style)
	}
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *StudyReport, styles ExcelStyles) error {
	if err := fx.SetColWidth(sheet, "A", "A", 18); err != nil {
		return err
	}
	if err := fx.SetColWidth(sheet, "B", "B", 30); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Study", report.Name},
		{"Benchmark", report.Benchmark},
		{"Direction", report.Direction()},
		{"Seed", fmt.Sprint(report.Seed)},
		{"Seeded", report.Seeded},
		{"Trials per Run", report.Trials},
		{"Runs", report.Runs},
		{"Top K", report.TopK},
		{"Best Value", report.BestValue},
		{"Mean Value", report.MeanValue},
		{"Duration", report.Duration.String()},
	}
	for i, row := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		fx.SetCellValue(sheet, label, row[0])
		fx.SetCellStyle(sheet, label, label, styles.SummaryStyle)
		fx.SetCellValue(sheet, value, row[1])
		fx.SetCellStyle(sheet, value, value, styles.BaseStyle)
	}
	return nil
}

// Package-level convenience function
func WriteResultsXLSX(report *StudyReport, path string) error {
	reporter := NewDefaultExcelReporter()
	return reporter.WriteResultsXLSX(report, path)
}

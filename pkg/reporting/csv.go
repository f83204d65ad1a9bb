package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteResultsCSV writes one row per ranked result
func (r *DefaultCSVReporter) WriteResultsCSV(report *StudyReport, path string) error {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// If the user requests an Excel file, delegate to Excel writer
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteResultsXLSX(report, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"UCB_Rank",
		"Run_ID",
		"Run",
		"Position",
		"Value",
		"Evaluations",
		"Variance",
		"Action_Vector",
		"Params",
	}); err != nil {
		return err
	}

	for _, res := range report.Results {
		row := []string{
			strconv.Itoa(res.UCBRank),
			res.RunID,
			strconv.Itoa(res.Run),
			strconv.Itoa(res.Position),
			strconv.FormatFloat(res.Value, 'g', -1, 64),
			strconv.Itoa(res.Evaluations),
			strconv.FormatFloat(res.Variance, 'g', -1, 64),
			FormatVector(res.ActionVector),
			FormatParams(res.Params),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: direction=%s; best=%g; mean=%g; runs=%d; trials=%d",
		report.Direction(), report.BestValue, report.MeanValue, report.Runs, report.Trials)
	summaryRow := make([]string, 9)
	summaryRow[8] = summary
	if err := w.Write(summaryRow); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// Package-level convenience function
func WriteResultsCSV(report *StudyReport, path string) error {
	reporter := NewDefaultCSVReporter()
	return reporter.WriteResultsCSV(report, path)
}

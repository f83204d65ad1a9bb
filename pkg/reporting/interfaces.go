package reporting

import (
	"github.com/xuri/excelize/v2"
)

// Package reporting provides output generation for optimization studies

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputResults(report *StudyReport)
	PrintConfig(config interface{})
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteResultsCSV(report *StudyReport, path string) error
	WriteResultsXLSX(report *StudyReport, path string) error
	WriteResultsJSON(report *StudyReport, path string) error
	WriteBestConfigJSON(config interface{}, path string) error
}

// ExcelFormatter defines interface for Excel-specific formatting
type ExcelFormatter interface {
	WriteResultRow(fx *excelize.File, sheet string, row int, values []interface{}, styles ExcelStyles)
}

// JSONFormatter defines interface for JSON output
type JSONFormatter interface {
	FormatBestConfig(config interface{}) ([]byte, error)
	PrintBestConfig(config interface{})
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(studyName string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	JSONFormatter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	BaseStyle    int
	NumberStyle  int
	BestStyle    int
	SummaryStyle int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	EnableFiles     bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
}

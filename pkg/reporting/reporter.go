package reporting

import (
	"path/filepath"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
	paths   *DefaultPathManager
}

var _ Reporter = (*DefaultReporter)(nil)

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputResults(report *StudyReport) {
	r.console.OutputResults(report)
}

func (r *DefaultReporter) PrintConfig(config interface{}) {
	r.console.PrintConfig(config)
}

// File output methods
func (r *DefaultReporter) WriteResultsCSV(report *StudyReport, path string) error {
	return r.csv.WriteResultsCSV(report, path)
}

func (r *DefaultReporter) WriteResultsXLSX(report *StudyReport, path string) error {
	return r.excel.WriteResultsXLSX(report, path)
}

func (r *DefaultReporter) WriteResultsJSON(report *StudyReport, path string) error {
	return WriteResultsJSON(report, path)
}

func (r *DefaultReporter) WriteBestConfigJSON(config interface{}, path string) error {
	return WriteBestConfigJSON(config, path)
}

// JSON methods
func (r *DefaultReporter) FormatBestConfig(config interface{}) ([]byte, error) {
	return r.json.FormatBestConfig(config)
}

func (r *DefaultReporter) PrintBestConfig(config interface{}) {
	r.json.PrintBestConfig(config)
}

// Path management methods
func (r *DefaultReporter) GetDefaultOutputDir(studyName string) string {
	return r.paths.GetDefaultOutputDir(studyName)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	reporter := NewDefaultReporter()
	if config.OutputDirectory != "" {
		reporter.paths = NewPathManager(config.OutputDirectory)
	}
	return &ReportingManager{
		reporter: reporter,
		config:   config,
	}
}

// SetConsole redirects console output, mainly for tests
func (m *ReportingManager) SetConsole(console *DefaultConsoleReporter) {
	m.reporter.console = console
}

// OutputDir returns the directory files of report are written to
func (m *ReportingManager) OutputDir(report *StudyReport) string {
	return m.reporter.GetDefaultOutputDir(report.Name)
}

// ReportResults outputs results according to configuration and returns the
// paths of the files written
func (m *ReportingManager) ReportResults(report *StudyReport) ([]string, error) {
	// Console output
	if m.config.EnableConsole {
		m.reporter.OutputResults(report)
	}

	if !m.config.EnableFiles {
		return nil, nil
	}

	// File outputs
	outputDir := m.OutputDir(report)
	var written []string

	if m.config.CSVEnabled {
		csvPath := filepath.Join(outputDir, "results.csv")
		if err := m.reporter.WriteResultsCSV(report, csvPath); err != nil {
			return written, err
		}
		written = append(written, csvPath)
	}

	if m.config.ExcelEnabled {
		xlsxPath := filepath.Join(outputDir, "results.xlsx")
		if err := m.reporter.WriteResultsXLSX(report, xlsxPath); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}

	if m.config.JSONEnabled {
		jsonPath := filepath.Join(outputDir, "results.json")
		if err := m.reporter.WriteResultsJSON(report, jsonPath); err != nil {
			return written, err
		}
		written = append(written, jsonPath)
	}

	return written, nil
}

// ReportConfig writes the configuration that produced report next to it
func (m *ReportingManager) ReportConfig(config interface{}, report *StudyReport) (string, error) {
	if !m.config.EnableFiles || !m.config.JSONEnabled {
		return "", nil
	}
	path := filepath.Join(m.OutputDir(report), "best.json")
	return path, m.reporter.WriteBestConfigJSON(config, path)
}

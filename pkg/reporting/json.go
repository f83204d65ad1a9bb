package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatBestConfig formats configuration as JSON bytes
func (f *DefaultJSONFormatter) FormatBestConfig(config interface{}) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

// PrintBestConfig prints configuration as JSON to console
func (f *DefaultJSONFormatter) PrintBestConfig(config interface{}) {
	data, err := f.FormatBestConfig(config)
	if err != nil {
		fmt.Printf("could not format config: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// WriteBestConfigJSON writes configuration to a JSON file
func WriteBestConfigJSON(config interface{}, path string) error {
	data, err := NewDefaultJSONFormatter().FormatBestConfig(config)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteResultsJSON writes the full study report to a JSON file
func WriteResultsJSON(report *StudyReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// PrintBestConfigJSON is a convenience function using the default formatter
func PrintBestConfigJSON(config interface{}) {
	formatter := NewDefaultJSONFormatter()
	formatter.PrintBestConfig(config)
}

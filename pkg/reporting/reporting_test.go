package reporting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evobandits/evobandits-go/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *StudyReport {
	return &StudyReport{
		Name:      "Sphere Study",
		Seed:      42,
		Seeded:    true,
		Benchmark: "sphere",
		Trials:    500,
		Runs:      2,
		TopK:      1,
		BestValue: 0.0,
		MeanValue: 0.5,
		Duration:  1500 * time.Millisecond,
		Results: []study.Result{
			{RunID: "run-a", Run: 0, Position: 1, Value: 0, Evaluations: 40, Variance: 0,
				ActionVector: []int{0, 0}, Params: study.Values{"x": []int{0, 0}, "mode": "fast"}, UCBRank: 1},
			{RunID: "run-b", Run: 1, Position: 1, Value: 1, Evaluations: 12, Variance: 0.25,
				ActionVector: []int{1, 0}, Params: study.Values{"x": []int{1, 0}, "mode": "slow"}, UCBRank: 2},
		},
	}
}

func TestFormatParams(t *testing.T) {
	assert.Equal(t, "mode=fast x=[0 0]", FormatParams(study.Values{"x": []int{0, 0}, "mode": "fast"}))
	assert.Equal(t, "", FormatParams(nil))
	assert.Equal(t, "[1 -2 3]", FormatVector([]int{1, -2, 3}))
}

func TestConsoleReporter_OutputResults(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporterTo(&buf).OutputResults(sampleReport())

	out := buf.String()
	assert.Contains(t, out, "STUDY RESULTS: Sphere Study")
	assert.Contains(t, out, "RANKED RESULTS")
	assert.Contains(t, out, "minimize")
	assert.Contains(t, out, "mode=fast x=[0 0]")
	assert.Contains(t, out, "sphere")
}

func TestCSVReporter_WriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteResultsCSV(sampleReport(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header, two results, summary")
	assert.Equal(t, "UCB_Rank", records[0][0])
	assert.Equal(t, []string{"1", "run-a", "0", "1", "0", "40", "0", "[0 0]", "mode=fast x=[0 0]"}, records[1])
	assert.Contains(t, records[3][8], "best=0")
}

func TestExcelReporter_WriteResultsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteResultsXLSX(sampleReport(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	assert.Equal(t, []string{"Results", "Summary"}, fx.GetSheetList())

	rows, err := fx.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "UCB Rank", rows[0][0])
	assert.Equal(t, "run-b", rows[2][1])

	name, err := fx.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Sphere Study", name)
}

func TestCSVReporter_DelegatesXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteResultsCSV(sampleReport(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()
	assert.Contains(t, fx.GetSheetList(), "Results")
}

func TestWriteResultsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, WriteResultsJSON(sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Name    string `json:"name"`
		Results []struct {
			RunID   string `json:"run_id"`
			UCBRank int    `json:"ucb_rank"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Sphere Study", decoded.Name)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "run-b", decoded.Results[1].RunID)
	assert.Equal(t, 2, decoded.Results[1].UCBRank)
}

func TestPathManager_GetDefaultOutputDir(t *testing.T) {
	p := NewPathManager("out")
	assert.Equal(t, filepath.Join("out", "sphere_study"), p.GetDefaultOutputDir("Sphere Study"))
	assert.Equal(t, filepath.Join("out", "unnamed"), p.GetDefaultOutputDir("  "))
	assert.Equal(t, filepath.Join("results", "a-b_c"), DefaultOutputDir("a-b/c"))
}

func TestReportingManager_ReportResults(t *testing.T) {
	root := t.TempDir()
	m := NewReportingManager(ReportingConfig{
		EnableConsole:   true,
		EnableFiles:     true,
		OutputDirectory: root,
		CSVEnabled:      true,
		ExcelEnabled:    true,
		JSONEnabled:     true,
	})
	var buf bytes.Buffer
	m.SetConsole(NewConsoleReporterTo(&buf))

	report := sampleReport()
	written, err := m.ReportResults(report)
	require.NoError(t, err)
	require.Len(t, written, 3)
	for _, path := range written {
		assert.FileExists(t, path)
	}
	assert.NotEmpty(t, buf.String())

	configPath, err := m.ReportConfig(map[string]int{"trials": 500}, report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sphere_study", "best.json"), configPath)
	assert.FileExists(t, configPath)
}

func TestReportingManager_ConsoleOnly(t *testing.T) {
	m := NewReportingManager(ReportingConfig{EnableConsole: true})
	var buf bytes.Buffer
	m.SetConsole(NewConsoleReporterTo(&buf))

	written, err := m.ReportResults(sampleReport())
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Contains(t, buf.String(), "SUMMARY")
}

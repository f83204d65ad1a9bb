package reporting

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct {
	out io.Writer
}

// NewDefaultConsoleReporter creates a console reporter writing to stdout
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to w
func NewConsoleReporterTo(w io.Writer) *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: w}
}

// OutputResults prints the study summary and the ranked results
func (r *DefaultConsoleReporter) OutputResults(report *StudyReport) {
	fmt.Fprintln(r.out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintf(r.out, "📊 STUDY RESULTS: %s\n", report.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 50))

	summary := table.NewWriter()
	summary.SetOutputMirror(r.out)
	summary.SetTitle("SUMMARY")
	summary.SetStyle(table.StyleRounded)

	seed := fmt.Sprint(report.Seed)
	if !report.Seeded {
		seed += " (random)"
	}
	summary.AppendRows([]table.Row{
		{"🎯 Direction", report.Direction()},
		{"🌱 Seed", seed},
		{"🔄 Trials per Run", report.Trials},
		{"🔁 Runs", report.Runs},
		{"🏆 Best Value", fmt.Sprintf("%.6f", report.BestValue)},
		{"📈 Mean Value", fmt.Sprintf("%.6f", report.MeanValue)},
		{"⏱️ Duration", report.Duration.Round(time.Millisecond).String()},
	})
	if report.Benchmark != "" {
		summary.AppendRow(table.Row{"🧪 Benchmark", report.Benchmark})
	}
	summary.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 40, Align: text.AlignLeft},
	})
	summary.Render()
	fmt.Fprintln(r.out)

	results := table.NewWriter()
	results.SetOutputMirror(r.out)
	results.SetTitle("RANKED RESULTS")
	results.SetStyle(table.StyleRounded)
	results.AppendHeader(table.Row{"Rank", "Run", "#", "Value", "Evaluations", "Std Dev", "Params"})
	for _, res := range report.Results {
		results.AppendRow(table.Row{
			res.UCBRank,
			res.Run + 1,
			res.Position,
			fmt.Sprintf("%.6f", res.Value),
			res.Evaluations,
			fmt.Sprintf("%.4f", math.Sqrt(res.Variance)),
			FormatParams(res.Params),
		})
	}
	results.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 7, WidthMax: 60, Align: text.AlignLeft},
	})
	results.Render()
	fmt.Fprintln(r.out)
}

// PrintConfig prints configuration to console
func (r *DefaultConsoleReporter) PrintConfig(config interface{}) {
	fmt.Fprintf(r.out, "Configuration: %+v\n", config)
}

// Package-level convenience function
func OutputConsole(report *StudyReport) {
	reporter := NewDefaultConsoleReporter()
	reporter.OutputResults(report)
}

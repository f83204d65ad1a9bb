package common

import (
	"fmt"
	"io"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	ProjectName    = "EvoBandits"
	ProjectVersion = "0.3.0"
	ProjectRepo    = "github.com/evobandits/evobandits-go"
)

// Build information, set via -ldflags "-X ..."
var (
	BuildDate   = "unknown"
	BuildCommit = "dev"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	ProjectName  string `json:"project_name"`
	Version      string `json:"version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
	GoVersion    string `json:"go_version"`
	Architecture string `json:"architecture"`
	Repository   string `json:"repository"`
}

// GetVersionInfo returns complete version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		ProjectName:  ProjectName,
		Version:      ProjectVersion,
		BuildDate:    BuildDate,
		BuildCommit:  BuildCommit,
		GoVersion:    runtime.Version(),
		Architecture: runtime.GOOS + "/" + runtime.GOARCH,
		Repository:   ProjectRepo,
	}
}

// IsDevBuild reports whether the binary was built without a commit stamp
func IsDevBuild() bool {
	return BuildCommit == "dev"
}

// GetFullVersion returns "version-commit (date)", marking development builds
func GetFullVersion() string {
	full := fmt.Sprintf("%s-%s (%s)", ProjectVersion, BuildCommit, BuildDate)
	if IsDevBuild() {
		full += " [development build]"
	}
	return full
}

// PrintVersion prints a one-line version
func PrintVersion(w io.Writer, appName string) {
	fmt.Fprintf(w, "%s %s\n", appName, GetFullVersion())
}

// PrintDetailedVersion prints every build field as a table
func PrintDetailedVersion(w io.Writer, appName string) {
	info := GetVersionInfo()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("VERSION INFORMATION")
	t.AppendRows([]table.Row{
		{"Application", appName},
		{"Version", info.Version},
		{"Project", info.ProjectName},
		{"Repository", info.Repository},
		{"Build Date", info.BuildDate},
		{"Build Commit", info.BuildCommit},
		{"Go Version", info.GoVersion},
		{"Platform", info.Architecture},
	})
	t.Render()
}

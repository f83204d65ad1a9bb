package common

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CommonFlags contains flags that are shared across multiple commands
type CommonFlags struct {
	// Environment and output
	EnvFile     *string
	OutputDir   *string
	ConsoleOnly *bool

	// Logging
	Verbose  *bool
	Silent   *bool
	NoEmojis *bool
	NoColors *bool

	// Help and version
	Version *bool
	Help    *bool
}

// RegisterCommonFlags registers common flags with the default flag set
func RegisterCommonFlags() *CommonFlags {
	return RegisterCommonFlagsOn(flag.CommandLine, "")
}

// RegisterCommonFlagsOn registers common flags on fs, each name prefixed
func RegisterCommonFlagsOn(fs *flag.FlagSet, prefix string) *CommonFlags {
	if prefix != "" && !strings.HasSuffix(prefix, "-") {
		prefix += "-"
	}

	return &CommonFlags{
		EnvFile:     fs.String(prefix+"env", ".env", "Environment file path"),
		OutputDir:   fs.String(prefix+"output", "", "Output root directory (overrides config)"),
		ConsoleOnly: fs.Bool(prefix+"console-only", false, "Console output only (no report files)"),

		Verbose:  fs.Bool(prefix+"verbose", false, "Enable verbose output"),
		Silent:   fs.Bool(prefix+"silent", false, "Enable silent mode (minimal output)"),
		NoEmojis: fs.Bool(prefix+"no-emojis", false, "Disable emoji output"),
		NoColors: fs.Bool(prefix+"no-colors", false, "Disable colored output"),

		Version: fs.Bool(prefix+"version", false, "Show version information (detailed with -verbose)"),
		Help:    fs.Bool(prefix+"help", false, "Show help information"),
	}
}

// FlagValidator collects flag problems so they can be reported together
type FlagValidator struct {
	problems []string
}

// NewFlagValidator creates a new flag validator
func NewFlagValidator() *FlagValidator {
	return &FlagValidator{}
}

// ValidateFloat checks that value lies in [min, max]; NaN is rejected
func (v *FlagValidator) ValidateFloat(name string, value, min, max float64) *FlagValidator {
	if !(value >= min && value <= max) {
		v.AddError(fmt.Sprintf("-%s must be between %g and %g, got %g", name, min, max, value))
	}
	return v
}

// ValidateInt checks that value lies in [min, max]
func (v *FlagValidator) ValidateInt(name string, value, min, max int) *FlagValidator {
	if value < min || value > max {
		v.AddError(fmt.Sprintf("-%s must be between %d and %d, got %d", name, min, max, value))
	}
	return v
}

// ValidateChoice checks that value is one of choices
func (v *FlagValidator) ValidateChoice(name, value string, choices []string) *FlagValidator {
	for _, choice := range choices {
		if value == choice {
			return v
		}
	}
	v.AddError(fmt.Sprintf("-%s must be one of [%s], got %q", name, strings.Join(choices, ", "), value))
	return v
}

// ValidateFile checks that path names an existing regular file. An empty
// path passes unless required.
func (v *FlagValidator) ValidateFile(name, path string, required bool) *FlagValidator {
	if path == "" {
		if required {
			v.AddError(fmt.Sprintf("-%s is required", name))
		}
		return v
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		v.AddError(fmt.Sprintf("-%s file does not exist: %s", name, path))
	case err == nil && info.IsDir():
		v.AddError(fmt.Sprintf("-%s is a directory, not a file: %s", name, path))
	}
	return v
}

// ValidateDirectory checks that path, when it exists, is a directory.
// Missing directories pass since reports create them.
func (v *FlagValidator) ValidateDirectory(name, path string) *FlagValidator {
	if path == "" {
		return v
	}

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.AddError(fmt.Sprintf("-%s is not a directory: %s", name, path))
	}
	return v
}

// AddError records a custom validation problem
func (v *FlagValidator) AddError(message string) *FlagValidator {
	v.problems = append(v.problems, message)
	return v
}

// GetError joins the recorded problems into one error, nil when valid
func (v *FlagValidator) GetError() error {
	switch len(v.problems) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("invalid flag: %s", v.problems[0])
	default:
		return fmt.Errorf("invalid flags:\n  - %s", strings.Join(v.problems, "\n  - "))
	}
}

// UsageFormatter prints help text for a command
type UsageFormatter struct {
	AppName        string
	AppDescription string
	Examples       []UsageExample
	Out            io.Writer
}

// UsageExample represents a usage example
type UsageExample struct {
	Command     string
	Description string
}

// NewUsageFormatter creates a new usage formatter
func NewUsageFormatter(appName, description string) *UsageFormatter {
	return &UsageFormatter{
		AppName:        appName,
		AppDescription: description,
		Out:            os.Stdout,
	}
}

// AddExample adds a usage example
func (u *UsageFormatter) AddExample(command, description string) *UsageFormatter {
	u.Examples = append(u.Examples, UsageExample{Command: command, Description: description})
	return u
}

// PrintUsage prints the description, examples and flag defaults
func (u *UsageFormatter) PrintUsage() {
	fmt.Fprintf(u.Out, "%s - %s\n\n", u.AppName, u.AppDescription)
	fmt.Fprintf(u.Out, "USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(os.Args[0]))

	if len(u.Examples) > 0 {
		fmt.Fprintf(u.Out, "EXAMPLES:\n")
		for _, example := range u.Examples {
			fmt.Fprintf(u.Out, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	fmt.Fprintf(u.Out, "OPTIONS:\n")
	flag.CommandLine.SetOutput(u.Out)
	flag.PrintDefaults()
}

// PrintShortUsage prints a one-line usage hint
func (u *UsageFormatter) PrintShortUsage() {
	fmt.Fprintf(u.Out, "Usage: %s [OPTIONS]\nRun %s -help for more information.\n", u.AppName, u.AppName)
}

// CheckHelpAndVersion handles -help and -version and reports whether the
// command should exit
func CheckHelpAndVersion(appName string, commonFlags *CommonFlags, formatter *UsageFormatter) bool {
	if *commonFlags.Version {
		if *commonFlags.Verbose {
			PrintDetailedVersion(formatter.Out, appName)
		} else {
			PrintVersion(formatter.Out, appName)
		}
		return true
	}

	if *commonFlags.Help {
		formatter.PrintUsage()
		return true
	}

	return false
}

// SetupLogger configures the default logger based on common flags
func SetupLogger(commonFlags *CommonFlags) {
	logger := DefaultLogger

	if *commonFlags.Silent {
		logger.SetSilentMode(true)
	}

	if *commonFlags.Verbose {
		logger.Level = LogLevelDebug
	}

	if *commonFlags.NoEmojis {
		logger.ShowEmojis = false
	}

	if *commonFlags.NoColors {
		logger.ShowColors = false
	}
}

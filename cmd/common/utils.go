package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides structured logging for CLI applications
type Logger struct {
	Level      LogLevel
	ShowEmojis bool
	ShowColors bool
	SilentMode bool
	Out        io.Writer
}

// NewLogger creates a new logger with default settings
func NewLogger() *Logger {
	return &Logger{
		Level:      LogLevelInfo,
		ShowEmojis: true,
		ShowColors: true,
		SilentMode: false,
		Out:        os.Stdout,
	}
}

func (l *Logger) writer() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}
	return l.Out
}

// paint colors message when colors are enabled
func (l *Logger) paint(colors text.Colors, message string) string {
	if !l.ShowColors {
		return message
	}
	return colors.Sprint(message)
}

// SetSilentMode enables or disables silent mode
func (l *Logger) SetSilentMode(silent bool) {
	l.SilentMode = silent
}

// Header prints a formatted header
func (l *Logger) Header(title string) {
	if l.SilentMode {
		return
	}

	emoji := "🧬"
	if !l.ShowEmojis {
		emoji = "***"
	}

	fmt.Fprintf(l.writer(), "\n%s %s\n", emoji, strings.ToUpper(title))
	fmt.Fprintf(l.writer(), "%s\n", strings.Repeat("=", len(title)+5))
}

// Section prints a formatted section header
func (l *Logger) Section(title string) {
	if l.SilentMode {
		return
	}

	emoji := "📋"
	if !l.ShowEmojis {
		emoji = "---"
	}

	fmt.Fprintf(l.writer(), "\n%s %s\n", emoji, title)
	fmt.Fprintf(l.writer(), "%s\n", strings.Repeat("-", len(title)+5))
}

// Info prints an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.SilentMode || l.Level < LogLevelInfo {
		return
	}

	emoji := "ℹ️"
	if !l.ShowEmojis {
		emoji = "[INFO]"
	}

	fmt.Fprintf(l.writer(), "%s  %s\n", emoji, fmt.Sprintf(format, args...))
}

// Error prints an error message
func (l *Logger) Error(format string, args ...interface{}) {
	emoji := "❌"
	if !l.ShowEmojis {
		emoji = "[ERROR]"
	}

	fmt.Fprintf(l.writer(), "%s %s\n", emoji, l.paint(text.Colors{text.FgRed}, fmt.Sprintf(format, args...)))
}

// Success prints a success message
func (l *Logger) Success(format string, args ...interface{}) {
	if l.SilentMode {
		return
	}

	emoji := "✅"
	if !l.ShowEmojis {
		emoji = "[SUCCESS]"
	}

	fmt.Fprintf(l.writer(), "%s %s\n", emoji, l.paint(text.Colors{text.FgGreen}, fmt.Sprintf(format, args...)))
}

// Warn prints a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.Level < LogLevelWarn {
		return
	}

	emoji := "⚠️"
	if !l.ShowEmojis {
		emoji = "[WARN]"
	}

	fmt.Fprintf(l.writer(), "%s  %s\n", emoji, l.paint(text.Colors{text.FgYellow}, fmt.Sprintf(format, args...)))
}

// Debug prints a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.Level < LogLevelDebug {
		return
	}

	emoji := "🔍"
	if !l.ShowEmojis {
		emoji = "[DEBUG]"
	}

	fmt.Fprintf(l.writer(), "%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// Progress prints a progress message
func (l *Logger) Progress(format string, args ...interface{}) {
	if l.SilentMode {
		return
	}

	emoji := "🔄"
	if !l.ShowEmojis {
		emoji = "[PROGRESS]"
	}

	fmt.Fprintf(l.writer(), "%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// Quiet prints a quiet message (only when not in silent mode)
func (l *Logger) Quiet(format string, args ...interface{}) {
	if !l.SilentMode {
		fmt.Fprintf(l.writer(), "   %s\n", fmt.Sprintf(format, args...))
	}
}

// FileUtils provides file and path utilities
type FileUtils struct{}

// NewFileUtils creates a new file utilities instance
func NewFileUtils() *FileUtils {
	return &FileUtils{}
}

// FileExists checks if a file exists
func (f *FileUtils) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ResolvePath resolves a path with smart defaults
func (f *FileUtils) ResolvePath(path, defaultDir, defaultExt string) string {
	if path == "" {
		return ""
	}

	// Add default extension if missing
	if defaultExt != "" && !strings.HasSuffix(strings.ToLower(path), defaultExt) {
		path += defaultExt
	}

	// Add default directory if no path separators
	if defaultDir != "" && !strings.ContainsAny(path, "/\\") {
		return filepath.Join(defaultDir, path)
	}

	return path
}

// StringUtils provides string manipulation utilities
type StringUtils struct{}

// NewStringUtils creates a new string utilities instance
func NewStringUtils() *StringUtils {
	return &StringUtils{}
}

// FormatDuration formats a duration in a human-readable way
func (s *StringUtils) FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	return fmt.Sprintf("%.1fd", d.Hours()/24)
}

// EnvLoader provides environment loading utilities
type EnvLoader struct {
	logger *Logger
}

// NewEnvLoader creates a new environment loader
func NewEnvLoader(logger *Logger) *EnvLoader {
	return &EnvLoader{logger: logger}
}

// LoadEnvFile loads environment variables from a file
func (e *EnvLoader) LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}

	if !FileExists(path) {
		e.logger.Warn("Environment file %s not found, using system environment", path)
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		e.logger.Warn("Could not load environment file %s: %v", path, err)
		return err
	}

	e.logger.Debug("Environment loaded from %s", path)
	return nil
}

// FormatUtils provides formatting utilities
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatFloat formats a float64 with appropriate precision
func (f *FormatUtils) FormatFloat(value float64, precision int) string {
	if precision < 0 {
		// Auto-determine precision based on value
		if value >= 100 {
			precision = 2
		} else if value >= 1 {
			precision = 4
		} else {
			precision = 6
		}
	}
	return fmt.Sprintf("%.*f", precision, value)
}

// Global instances for convenience
var (
	DefaultLogger    = NewLogger()
	DefaultFileUtils = NewFileUtils()
	DefaultStrUtils  = NewStringUtils()
	DefaultEnvLoader = NewEnvLoader(DefaultLogger)
	DefaultFormatter = NewFormatUtils()
)

// Convenience functions using global instances
func Header(title string)                         { DefaultLogger.Header(title) }
func Section(title string)                        { DefaultLogger.Section(title) }
func Info(format string, args ...interface{})     { DefaultLogger.Info(format, args...) }
func Error(format string, args ...interface{})    { DefaultLogger.Error(format, args...) }
func Success(format string, args ...interface{})  { DefaultLogger.Success(format, args...) }
func Warn(format string, args ...interface{})     { DefaultLogger.Warn(format, args...) }
func Debug(format string, args ...interface{})    { DefaultLogger.Debug(format, args...) }
func Progress(format string, args ...interface{}) { DefaultLogger.Progress(format, args...) }
func Quiet(format string, args ...interface{})    { DefaultLogger.Quiet(format, args...) }
func SetSilentMode(silent bool)                   { DefaultLogger.SetSilentMode(silent) }

func LoadEnvFile(path string) error { return DefaultEnvLoader.LoadEnvFile(path) }

func FileExists(path string) bool              { return DefaultFileUtils.FileExists(path) }
func ResolvePath(path, dir, ext string) string { return DefaultFileUtils.ResolvePath(path, dir, ext) }

func FormatFloat(val float64, prec int) string { return DefaultFormatter.FormatFloat(val, prec) }
func FormatDuration(d time.Duration) string    { return DefaultStrUtils.FormatDuration(d) }

package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger writes the run log of an optimization study
type Logger struct {
	study   string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logPath string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo       LogLevel = "INFO"
	LogLevelWarning    LogLevel = "WARN"
	LogLevelError      LogLevel = "ERROR"
	LogLevelGeneration LogLevel = "GEN"
	LogLevelResult     LogLevel = "RESULT"
)

const timeLayout = "2006-01-02 15:04:05"

// NewLogger creates a log file for study inside logDir
func NewLogger(logDir, study string) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log filename with date
	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", sanitize(study), timestamp)
	logPath := filepath.Join(logDir, filename)

	// Open or create log file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		study:   study,
		logFile: file,
		logger:  log.New(file, "", 0),
		logPath: logPath,
	}

	l.writeSessionHeader()

	return l, nil
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "study"
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == ':' {
			return '_'
		}
		return r
	}, name)
}

// writeSessionHeader writes a session start header to the log
func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🚀 STUDY STARTED
================================================================================
Study: %s
Started: %s
Log File: %s
================================================================================
`, l.study, time.Now().Format(timeLayout), filepath.Base(l.logPath))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format(timeLayout)
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s\n", timestamp, level, message)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogGeneration logs the state of a run after one generation
func (l *Logger) LogGeneration(run, generation, spent, budget, arms int, bestMean float64, bestPulls int) {
	l.Log(LogLevelGeneration, "run=%d gen=%d pulls=%d/%d arms=%d best=%.6f (%d pulls)",
		run, generation, spent, budget, arms, bestMean, bestPulls)
}

// LogResult logs one ranked study result
func (l *Logger) LogResult(rank int, runID string, value float64, evaluations int, params string) {
	l.Log(LogLevelResult, "#%d run=%s value=%.6f evaluations=%d %s", rank, runID, value, evaluations, params)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 STUDY ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format(timeLayout))
	l.logger.Print(footer)

	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// GetLogPath returns the log file path
func (l *Logger) GetLogPath() string {
	return l.logPath
}

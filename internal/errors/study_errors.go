package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/evobandits/evobandits-go/pkg/study"
)

// ErrorCategory represents different types of errors that can end a study
type ErrorCategory string

const (
	// Errors caused by the study setup, retrying does not help
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	ErrorCategoryValidation    ErrorCategory = "VALIDATION"

	// Errors raised while the study runs
	ErrorCategoryObjective ErrorCategory = "OBJECTIVE"
	ErrorCategoryIO        ErrorCategory = "IO"
	ErrorCategoryInternal  ErrorCategory = "INTERNAL"

	// Interruptions
	ErrorCategoryCancelled ErrorCategory = "CANCELLED"
	ErrorCategoryTimeout   ErrorCategory = "TIMEOUT"
)

// StudyError represents a categorized error with context
type StudyError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
	Retryable  bool
}

// Error implements the error interface
func (e *StudyError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *StudyError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether running the study again may succeed
func (e *StudyError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal returns whether the study setup itself is broken
func (e *StudyError) IsFatal() bool {
	return e.Category == ErrorCategoryConfiguration || e.Category == ErrorCategoryValidation
}

// ExitCode maps the category to a process exit code
func (e *StudyError) ExitCode() int {
	switch {
	case e.IsFatal():
		return 2
	case e.Category == ErrorCategoryCancelled:
		return 130
	default:
		return 1
	}
}

// MetricLabel is the lower-case category used as a metrics label
func (e *StudyError) MetricLabel() string {
	switch e.Category {
	case ErrorCategoryConfiguration:
		return "config"
	case ErrorCategoryValidation:
		return "validation"
	case ErrorCategoryObjective:
		return "objective"
	case ErrorCategoryIO:
		return "io"
	case ErrorCategoryCancelled:
		return "cancelled"
	case ErrorCategoryTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// NewStudyError creates a new categorized error
func NewStudyError(category ErrorCategory, component, operation, message string) *StudyError {
	return &StudyError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
		Retryable: isRetryableCategory(category),
	}
}

// WrapError wraps an existing error with study error context
func WrapError(err error, category ErrorCategory, component, operation string) *StudyError {
	if err == nil {
		return nil
	}

	return &StudyError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
		Retryable:  isRetryableCategory(category),
	}
}

// WithContext adds context information to the error
func (e *StudyError) WithContext(key string, value interface{}) *StudyError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func isRetryableCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryObjective, ErrorCategoryTimeout, ErrorCategoryIO:
		return true
	default:
		return false
	}
}

// CategorizeError classifies err by the sentinel errors it wraps
func CategorizeError(err error, component, operation string) *StudyError {
	if err == nil {
		return nil
	}

	var studyErr *StudyError
	if stderrors.As(err, &studyErr) {
		return studyErr
	}

	var pathErr *fs.PathError
	switch {
	case stderrors.Is(err, context.Canceled):
		return WrapError(err, ErrorCategoryCancelled, component, operation)
	case stderrors.Is(err, context.DeadlineExceeded):
		return WrapError(err, ErrorCategoryTimeout, component, operation)
	case stderrors.Is(err, optimization.ErrObjective):
		return WrapError(err, ErrorCategoryObjective, component, operation)
	case stderrors.Is(err, optimization.ErrInvalidOptions),
		stderrors.Is(err, optimization.ErrInvalidBounds),
		stderrors.Is(err, params.ErrInvalidParam),
		stderrors.Is(err, study.ErrInvalidSettings):
		return WrapError(err, ErrorCategoryConfiguration, component, operation)
	case stderrors.Is(err, optimization.ErrBudgetTooSmall),
		stderrors.Is(err, optimization.ErrInvalidTopK),
		stderrors.Is(err, optimization.ErrSearchSpaceTooSmall):
		return WrapError(err, ErrorCategoryValidation, component, operation)
	case stderrors.As(err, &pathErr):
		return WrapError(err, ErrorCategoryIO, component, operation).WithContext("path", pathErr.Path)
	default:
		return WrapError(err, ErrorCategoryInternal, component, operation)
	}
}

// Common error constructors
func NewConfigurationError(component, operation string, err error) *StudyError {
	return WrapError(err, ErrorCategoryConfiguration, component, operation)
}

func NewValidationError(component, operation, message string) *StudyError {
	return NewStudyError(ErrorCategoryValidation, component, operation, message)
}

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/evobandits/evobandits-go/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeError(t *testing.T) {
	_, pathErr := os.Open("/definitely/not/here.json")
	require.Error(t, pathErr)

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		exitCode int
	}{
		{"cancelled", fmt.Errorf("run 0: %w", context.Canceled), ErrorCategoryCancelled, 130},
		{"deadline", context.DeadlineExceeded, ErrorCategoryTimeout, 1},
		{"objective", fmt.Errorf("run 1: %w", fmt.Errorf("%w for [1]: %w", optimization.ErrObjective, stderrors.New("boom"))), ErrorCategoryObjective, 1},
		{"options", fmt.Errorf("%w: population_size", optimization.ErrInvalidOptions), ErrorCategoryConfiguration, 2},
		{"param", params.ErrInvalidParam, ErrorCategoryConfiguration, 2},
		{"settings", study.ErrInvalidSettings, ErrorCategoryConfiguration, 2},
		{"budget", optimization.ErrBudgetTooSmall, ErrorCategoryValidation, 2},
		{"space", optimization.ErrSearchSpaceTooSmall, ErrorCategoryValidation, 2},
		{"path", pathErr, ErrorCategoryIO, 1},
		{"unknown", stderrors.New("something else"), ErrorCategoryInternal, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := CategorizeError(tt.err, "study", "optimize")
			require.NotNil(t, se)
			assert.Equal(t, tt.category, se.Category)
			assert.Equal(t, tt.exitCode, se.ExitCode())
			assert.ErrorIs(t, se, tt.err)
		})
	}
}

func TestCategorizeError_Nil(t *testing.T) {
	assert.Nil(t, CategorizeError(nil, "study", "optimize"))
	assert.Nil(t, WrapError(nil, ErrorCategoryIO, "reporting", "write"))
}

func TestCategorizeError_KeepsStudyError(t *testing.T) {
	original := NewValidationError("config", "validate", "no parameters")
	wrapped := fmt.Errorf("load: %w", original)

	assert.Same(t, original, CategorizeError(wrapped, "cli", "main"))
}

func TestStudyError_Flags(t *testing.T) {
	objective := WrapError(stderrors.New("flaky"), ErrorCategoryObjective, "study", "optimize")
	assert.True(t, objective.IsRetryable())
	assert.False(t, objective.IsFatal())
	assert.Equal(t, "objective", objective.MetricLabel())

	config := NewConfigurationError("config", "load", stderrors.New("bad json"))
	assert.False(t, config.IsRetryable())
	assert.True(t, config.IsFatal())
	assert.Equal(t, "[CONFIG:config] load failed: bad json", config.Error())

	validation := NewValidationError("config", "validate", "no parameters")
	assert.Equal(t, "[VALIDATION:config] validate no parameters", validation.Error())
	assert.Equal(t, "validation", validation.MetricLabel())
}

func TestStudyError_WithContext(t *testing.T) {
	var se StudyError
	se.WithContext("run", 3)
	assert.Equal(t, 3, se.Context["run"])
}

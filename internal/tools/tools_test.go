package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHello(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name:     "Greets the provided name",
			args:     map[string]any{"name": "Alice"},
			expected: "Hello, Alice! 👋",
		},
		{
			name:     "Defaults to World when name is absent",
			args:     map[string]any{},
			expected: "Hello, World! 👋",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleHello(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHandleAddNumbers(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]any
		expected    string
		expectedErr error
	}{
		{
			name:     "Adds two integers",
			args:     map[string]any{"a": float64(2), "b": float64(3)},
			expected: "The sum of 2 and 3 is 5",
		},
		{
			name:     "Adds fractional numbers compactly",
			args:     map[string]any{"a": 2.5, "b": 0.25},
			expected: "The sum of 2.5 and 0.25 is 2.75",
		},
		{
			name:        "Missing first parameter",
			args:        map[string]any{"b": float64(3)},
			expectedErr: ErrMissingParameter,
		},
		{
			name:        "Missing second parameter",
			args:        map[string]any{"a": float64(3)},
			expectedErr: ErrMissingParameter,
		},
		{
			name:        "Non-numeric argument",
			args:        map[string]any{"a": "not-a-number", "b": float64(1)},
			expectedErr: ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleAddNumbers(context.Background(), tt.args)
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHandleSlowOperation(t *testing.T) {
	result, err := handleSlowOperation(context.Background(), map[string]any{"steps": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, "Completed 2 steps: Step 1 result, Step 2 result", result)
}

func TestHandleSlowOperationRejectsNonNumericSteps(t *testing.T) {
	_, err := handleSlowOperation(context.Background(), map[string]any{"steps": "many"})
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

// TestHandleParallelTasksSpawnOrder verifies results come back in
// spawn order even though workers complete at different times.
func TestHandleParallelTasksSpawnOrder(t *testing.T) {
	result, err := handleParallelTasks(context.Background(), map[string]any{"task_count": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "Completed 3 parallel tasks: Worker-1, Worker-2, Worker-3", result)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2, "2"},
		{2.5, "2.5"},
		{-0.75, "-0.75"},
		{100, "100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatNumber(tt.value))
	}
}

// Package tools implements the demo tool catalog. The tool bodies are
// deliberately simple; they exist to show that the ambient trace ids
// installed at ingress survive sequential steps and concurrent workers
// without any explicit threading beyond the context parameter.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

const (
	defaultSteps     = 3
	defaultTaskCount = 3
)

// Definition describes one tool for catalog listings.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Definitions returns the tool catalog in registration order.
func Definitions() []Definition {
	return []Definition{
		{Name: "hello", Description: "Say hello with a personalized greeting"},
		{Name: "add_numbers", Description: "Add two numbers together"},
		{Name: "slow_operation", Description: "Simulates a slow operation with multiple async steps"},
		{Name: "parallel_tasks", Description: "Demonstrates parallel async operations with shared context"},
	}
}

// handleHello greets the caller. The trace ids are read back through
// the accessors to show they need no explicit plumbing.
func handleHello(ctx context.Context, args map[string]any) (string, error) {
	name := "World"
	if v, ok := args["name"]; ok {
		name = cast.ToString(v)
	}
	log.Info(ctx, "Generating greeting", "name", name)

	time.Sleep(100 * time.Millisecond)

	greeting := fmt.Sprintf("Hello, %s! 👋", name)
	log.Debug(ctx, "Generated greeting",
		"greeting", greeting,
		"ambient_request_id", trace.RequestIDFromContext(ctx),
		"ambient_session_id", trace.ShortID(trace.SessionIDFromContext(ctx)),
	)
	return greeting, nil
}

// handleAddNumbers adds two numbers with argument validation.
func handleAddNumbers(ctx context.Context, args map[string]any) (string, error) {
	a, err := requireNumber(args, "a")
	if err != nil {
		log.Error(ctx, "Invalid add_numbers arguments", "error", err)
		return "", err
	}
	b, err := requireNumber(args, "b")
	if err != nil {
		log.Error(ctx, "Invalid add_numbers arguments", "error", err)
		return "", err
	}
	log.Info(ctx, "Adding numbers", "a", a, "b", b)

	time.Sleep(50 * time.Millisecond)

	sum := a + b
	log.Info(ctx, "Addition result", "result", sum)
	return fmt.Sprintf("The sum of %s and %s is %s",
		formatNumber(a), formatNumber(b), formatNumber(sum)), nil
}

// handleSlowOperation runs a sequence of simulated steps. Every step
// logs through the ambient context it inherited from the caller.
func handleSlowOperation(ctx context.Context, args map[string]any) (string, error) {
	steps, err := optionalCount(args, "steps", defaultSteps)
	if err != nil {
		return "", err
	}
	log.Info(ctx, "Starting slow operation", "steps", steps)

	results := make([]string, 0, steps)
	for i := 1; i <= steps; i++ {
		log.Info(ctx, "Executing step", "step", i, "total", steps)
		results = append(results, executeStep(ctx, i))
		time.Sleep(200 * time.Millisecond)
	}

	result := fmt.Sprintf("Completed %d steps: %s", steps, strings.Join(results, ", "))
	log.Info(ctx, "Slow operation completed", "result", result)
	return result, nil
}

// executeStep simulates one unit of sequential work.
func executeStep(ctx context.Context, stepNumber int) string {
	log.Info(ctx, "Processing step", "step", stepNumber)

	time.Sleep(100 * time.Millisecond)

	result := fmt.Sprintf("Step %d result", stepNumber)
	log.Debug(ctx, "Step completed", "step", stepNumber, "result", result)
	return result
}

// handleParallelTasks fans out workers that all share the caller's
// trace context. Results come back in spawn order, not completion
// order; log lines may interleave arbitrarily.
func handleParallelTasks(ctx context.Context, args map[string]any) (string, error) {
	taskCount, err := optionalCount(args, "task_count", defaultTaskCount)
	if err != nil {
		return "", err
	}
	log.Info(ctx, "Starting parallel tasks", "task_count", taskCount)

	results := make([]string, taskCount)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < taskCount; i++ {
		workerID := i + 1
		g.Go(func() error {
			results[workerID-1] = parallelWorker(gCtx, workerID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	result := fmt.Sprintf("Completed %d parallel tasks: %s", taskCount, strings.Join(results, ", "))
	log.Info(ctx, "All parallel tasks completed", "result", result)
	return result, nil
}

// parallelWorker simulates one concurrent worker; each sleeps for a
// different duration so completions interleave.
func parallelWorker(ctx context.Context, workerID int) string {
	log.Info(ctx, "Worker started", "worker", workerID)

	workTime := time.Duration(workerID) * 100 * time.Millisecond
	time.Sleep(workTime)

	log.Info(ctx, "Worker completed", "worker", workerID, "work_time", workTime)
	return fmt.Sprintf("Worker-%d", workerID)
}

// requireNumber extracts a required numeric argument.
func requireNumber(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, key)
	}
	return value, nil
}

// optionalCount extracts an optional numeric argument, truncating it
// to an integer count.
func optionalCount(args map[string]any, key string, defaultValue int) (int, error) {
	raw, ok := args[key]
	if !ok {
		return defaultValue, nil
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, key)
	}
	return int(value), nil
}

// formatNumber renders a JSON number the way a human typed it: no
// trailing zeros, no exponent for ordinary magnitudes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

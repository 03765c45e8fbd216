package tools

import (
	"context"
	"fmt"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

// handlerFunc executes one tool against already-decoded arguments.
type handlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Service dispatches tool invocations outside the MCP transport: the
// toolbox CLI and tests call tools through it directly. It guarantees
// trace context for every invocation, so the out-of-band path observes
// the same ambient ids a traced HTTP request would.
type Service struct {
	handlers map[string]handlerFunc
}

// NewService builds the dispatcher with the full catalog registered.
func NewService() *Service {
	return &Service{
		handlers: map[string]handlerFunc{
			"hello":          handleHello,
			"add_numbers":    handleAddNumbers,
			"slow_operation": handleSlowOperation,
			"parallel_tasks": handleParallelTasks,
		},
	}
}

// List returns the catalog definitions.
func (s *Service) List() []Definition {
	return Definitions()
}

// Call ensures trace context for the named operation, routes by tool
// name and executes the handler. Validation failures and unknown
// names come back as error values; they never crash the unit of work.
func (s *Service) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	ctx, _ = trace.EnsureOperation(ctx, name)
	// Every line the handler logs carries the operation name without
	// repeating it at each call site.
	ctx = log.WithFields(ctx, log.LogFields{"operation": name})

	handler, ok := s.handlers[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	log.Info(ctx, "Tool called", "tool", name, "arguments", args)
	result, err := handler(ctx, args)
	if err != nil {
		log.Error(ctx, "Tool failed", "tool", name, "error", err)
		return "", err
	}
	log.Info(ctx, "Tool completed successfully", "tool", name)
	return result, nil
}

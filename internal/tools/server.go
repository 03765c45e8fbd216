package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

const (
	serverName    = "hello-world-mcp-server"
	serverVersion = "1.0.0"
)

// NewMCPServer assembles the MCP server: catalog registration, list
// hooks and the tool-handler middleware that guarantees trace context
// around every call.
func NewMCPServer(svc *Service) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddBeforeListTools(onBeforeListTools)
	hooks.AddAfterListTools(onAfterListTools)

	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(hooks),
		server.WithToolHandlerMiddleware(withToolTracing),
	)
	registerTools(s, svc)
	return s
}

// Each hook receives the inbound request context, not a context
// derived by an earlier hook, so both hooks ensure independently. Over
// the SSE transport the inbound context already carries the ingress
// metadata and both ensures are no-ops on the same ids; synthesis only
// happens for untraced in-process use.

func onBeforeListTools(ctx context.Context, _ any, _ *mcp.ListToolsRequest) {
	ctx, _ = trace.EnsureOperation(ctx, "list_tools")
	log.Info(ctx, "Client requested list of available tools")
}

func onAfterListTools(ctx context.Context, _ any, _ *mcp.ListToolsRequest, result *mcp.ListToolsResult) {
	ctx, _ = trace.EnsureOperation(ctx, "list_tools")
	log.Info(ctx, "Returning available tools", "count", len(result.Tools))
}

// withToolTracing ensures trace context before every tool call and
// converts handler failures into user-visible error results instead of
// crashed units of work.
func withToolTracing(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, _ = trace.EnsureOperation(ctx, "call_tool")

		name := request.Params.Name
		result, err := next(ctx, request)
		if err != nil {
			log.Error(ctx, "Tool failed", "tool", name, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("Tool '%s' failed: %v", name, err)), nil
		}
		return result, nil
	}
}

// registerTools declares the catalog schemas and binds each tool to
// the shared dispatcher, so the MCP transport and the direct path run
// the same handler code.
func registerTools(s *server.MCPServer, svc *Service) {
	s.AddTool(
		mcp.NewTool("hello",
			mcp.WithDescription("Say hello with a personalized greeting"),
			mcp.WithString("name",
				mcp.Description("Name to greet"),
				mcp.Required(),
			),
		),
		dispatch(svc, "hello"),
	)

	s.AddTool(
		mcp.NewTool("add_numbers",
			mcp.WithDescription("Add two numbers together"),
			mcp.WithNumber("a",
				mcp.Description("First number"),
				mcp.Required(),
			),
			mcp.WithNumber("b",
				mcp.Description("Second number"),
				mcp.Required(),
			),
		),
		dispatch(svc, "add_numbers"),
	)

	s.AddTool(
		mcp.NewTool("slow_operation",
			mcp.WithDescription("Simulates a slow operation with multiple async steps"),
			mcp.WithNumber("steps",
				mcp.Description("Number of steps to execute"),
				mcp.DefaultNumber(defaultSteps),
			),
		),
		dispatch(svc, "slow_operation"),
	)

	s.AddTool(
		mcp.NewTool("parallel_tasks",
			mcp.WithDescription("Demonstrates parallel async operations with shared context"),
			mcp.WithNumber("task_count",
				mcp.Description("Number of parallel tasks to run"),
				mcp.DefaultNumber(defaultTaskCount),
			),
		),
		dispatch(svc, "parallel_tasks"),
	)
}

// dispatch adapts one catalog entry to the MCP handler signature.
func dispatch(svc *Service, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := svc.Call(ctx, name, request.GetArguments())
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(text), nil
	}
}

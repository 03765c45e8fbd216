package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/tools"
	"mcp-tracing-demo/internal/trace"
)

const (
	minArgsRequired = 2
	// Log levels.
	logLevelDebug = "debug"
	logLevelWarn  = "warn"
	logLevelError = "error"
)

func main() {
	if len(os.Args) < minArgsRequired {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "list-tools":
		handleListTools()
	case "call-tool":
		handleCallTool()
	case "trace-demo":
		handleTraceDemo()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Toolbox - Utility commands for mcp-tracing-demo")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  toolbox <command> [flags]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list-tools         Print the tool catalog")
	fmt.Println("  call-tool          Invoke a tool directly, without the server")
	fmt.Println("  trace-demo         Run concurrent operations with isolated trace contexts")
	fmt.Println("  help               Show this help message")
	fmt.Println("")
	fmt.Println("Flags for list-tools:")
	fmt.Println("  --json             Emit the catalog as JSON")
	fmt.Println("")
	fmt.Println("Flags for call-tool:")
	fmt.Println("  --name TOOL        Tool to invoke (required)")
	fmt.Println("  --args JSON        Tool arguments as a JSON object")
	fmt.Println("  --session ID       Reuse a session id instead of generating one")
	fmt.Println("  --pretty           Pretty-print the trace snapshot")
	fmt.Println("")
	fmt.Println("Flags for trace-demo:")
	fmt.Println("  --workers N        Number of concurrent operations to run (default 3)")
	fmt.Println("")
}

// setupLogging mirrors the server's handler selection so toolbox log
// lines carry the same trace annotations.
func setupLogging() {
	var logLevel slog.Level
	switch os.Getenv("LOG_LEVEL") {
	case logLevelDebug:
		logLevel = slog.LevelDebug
	case logLevelWarn:
		logLevel = slog.LevelWarn
	case logLevelError:
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func handleListTools() {
	var asJSON bool

	fs := flag.NewFlagSet("list-tools", flag.ExitOnError)
	fs.BoolVar(&asJSON, "json", false, "Emit the catalog as JSON")
	_ = fs.Parse(os.Args[2:])

	setupLogging()
	svc := tools.NewService()

	if asJSON {
		data, err := json.MarshalIndent(svc.List(), "", "  ")
		if err != nil {
			log.Error(context.Background(), "Failed to marshal catalog", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Println("Available tools:")
	for _, def := range svc.List() {
		fmt.Printf("  %-16s %s\n", def.Name, def.Description)
	}
}

func handleCallTool() {
	var (
		name    string
		rawArgs string
		session string
		pretty  bool
	)

	fs := flag.NewFlagSet("call-tool", flag.ExitOnError)
	fs.StringVar(&name, "name", "", "Tool to invoke (required)")
	fs.StringVar(&rawArgs, "args", "{}", "Tool arguments as a JSON object")
	fs.StringVar(&session, "session", "", "Reuse a session id instead of generating one")
	fs.BoolVar(&pretty, "pretty", false, "Pretty-print the trace snapshot")
	_ = fs.Parse(os.Args[2:])

	setupLogging()

	if name == "" {
		fmt.Println("call-tool requires --name")
		os.Exit(1)
	}

	args := map[string]any{}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		fmt.Printf("Invalid --args JSON: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if session != "" {
		// Seed the session slot so the synthesized context reuses it.
		ctx = trace.WithSessionID(ctx, session)
	}
	ctx, _ = trace.EnsureOperation(ctx, name)

	svc := tools.NewService()
	result, err := svc.Call(ctx, name, args)
	if err != nil {
		log.Error(ctx, "Tool invocation failed", "tool", name, "error", err)
		fmt.Printf("Tool '%s' failed: %v\n", name, err)
		os.Exit(1)
	}

	fmt.Println(result)
	printTraceSnapshot(ctx, pretty)
}

func handleTraceDemo() {
	var workers int

	fs := flag.NewFlagSet("trace-demo", flag.ExitOnError)
	fs.IntVar(&workers, "workers", 3, "Number of concurrent operations to run")
	_ = fs.Parse(os.Args[2:])

	setupLogging()
	svc := tools.NewService()

	// Each worker is an independent unit of work: its own ensured
	// context, its own ids. Watch the log lines interleave while the
	// per-worker ids stay distinct.
	var wg sync.WaitGroup
	snapshots := make([]trace.Info, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			ctx, _ := trace.EnsureContext(context.Background())
			_, err := svc.Call(ctx, "hello", map[string]any{
				"name": fmt.Sprintf("Worker-%d", n+1),
			})
			if err != nil {
				log.Error(ctx, "Worker failed", "worker", n+1, "error", err)
				return
			}
			snapshots[n] = trace.InfoFromContext(ctx)
		}(i)
	}
	wg.Wait()

	fmt.Printf("Ran %d isolated operations:\n", workers)
	for i, info := range snapshots {
		fmt.Printf("  worker %d: request_id=%s session_id=%s\n",
			i+1, info.RequestID, trace.ShortID(info.SessionID))
	}
}

func printTraceSnapshot(ctx context.Context, pretty bool) {
	info := trace.InfoFromContext(ctx)

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(info, "", "  ")
	} else {
		data, err = json.Marshal(info)
	}
	if err != nil {
		log.Error(ctx, "Failed to marshal trace snapshot", "error", err)
		return
	}
	fmt.Println(string(data))
}

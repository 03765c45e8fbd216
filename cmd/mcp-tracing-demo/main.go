package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"mcp-tracing-demo/internal/config"
	"mcp-tracing-demo/internal/handlers"
	"mcp-tracing-demo/internal/middleware"
	"mcp-tracing-demo/internal/tools"
)

// App represents the main application structure with all services and handlers.
type App struct {
	config      *config.Config
	toolService *tools.Service
	sseServer   *mcpserver.SSEServer
	siteHandler *handlers.SiteHandler
	demoHandler *handlers.DemoHandler
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging
	var logger *slog.Logger
	isDev := cfg.GinMode != "release"
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	if isDev {
		// Use text format for development
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
	} else {
		// Use JSON format for production
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
	}
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	toolService := tools.NewService()
	mcpServer := tools.NewMCPServer(toolService)

	sseOpts := []mcpserver.SSEOption{
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/messages/"),
	}
	if cfg.BaseURL != "" {
		sseOpts = append(sseOpts, mcpserver.WithBaseURL(cfg.BaseURL))
	}
	sseServer := mcpserver.NewSSEServer(mcpServer, sseOpts...)

	app := &App{
		config:      cfg,
		toolService: toolService,
		sseServer:   sseServer,
		siteHandler: handlers.NewSiteHandler(),
		demoHandler: handlers.NewDemoHandler(),
	}

	router := gin.New()

	// Recovery stays outermost so the tracing middleware can observe a
	// panic and re-raise it for conversion into a 500. The tracing
	// middleware logs full request lines, so gin's own logger is not
	// installed.
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(strings.Split(cfg.CORSAllowedOrigins, ",")))
	router.Use(middleware.TracingMiddleware(middleware.TracingOptions{
		SessionHeader:     cfg.SessionHeader,
		CorrelationHeader: cfg.CorrelationHeader,
	}))

	router.GET("/", app.siteHandler.Homepage)
	router.GET("/health", app.siteHandler.Health)
	router.GET("/ping", app.siteHandler.Ping)
	router.GET("/demo-async", app.demoHandler.AsyncDemo)
	router.GET("/sse", gin.WrapH(sseServer.SSEHandler()))
	router.POST("/messages/", gin.WrapH(sseServer.MessageHandler()))

	slog.Info("Starting Hello World MCP Server with request tracing", "component", "server", "port", cfg.Port)
	slog.Info("Available endpoints",
		"homepage", "/",
		"health", "/health",
		"ping", "/ping",
		"async_demo", "/demo-async",
		"mcp_sse", "/sse",
		"mcp_messages", "/messages/",
	)

	// No global WriteTimeout: it would cut every /sse stream after
	// cfg.ServerWriteTimeout. The wrapper applies the write deadline
	// per request and exempts the streaming endpoint.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     middleware.WithWriteDeadline(router, cfg.ServerWriteTimeout, "/sse"),
		ReadTimeout: cfg.ServerReadTimeout,
	}

	// Start server in a goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "component", "server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...", "component", "server")

	// Give outstanding requests and open SSE streams time to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "component", "server", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully", "component", "server")
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

// AsyncDemo runs three simulated tasks concurrently. All of them log
// through the request's ambient context, so their lines carry the same
// request id even though they interleave. Results come back in spawn
// order regardless of which task finishes first.
func (h *DemoHandler) AsyncDemo(c *gin.Context) {
	ctx := c.Request.Context()
	log.Info(ctx, "Starting async operations demo")

	tasks := []struct {
		name  string
		delay time.Duration
	}{
		{"Task 1", 100 * time.Millisecond},
		{"Task 2", 200 * time.Millisecond},
		{"Task 3", 150 * time.Millisecond},
	}

	results := make([]string, len(tasks))
	g, gCtx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = runDemoTask(gCtx, task.name, task.delay)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Info(ctx, "All async tasks completed", "results", results)

	c.JSON(http.StatusOK, gin.H{
		"message": "Async operations demo completed",
		"results": results,
		"trace_info": gin.H{
			"request_id": trace.RequestIDFromContext(ctx),
			"session_id": shortSessionID(ctx),
		},
		"note": "Check the logs to see how all async operations share the same trace context!",
	})
}

func runDemoTask(ctx context.Context, name string, delay time.Duration) string {
	log.Info(ctx, "Task started", "task", name)
	time.Sleep(delay)
	log.Info(ctx, "Task completed", "task", name)
	return name + " result"
}

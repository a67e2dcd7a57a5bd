package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/fulltext"
	"github.com/lexandro/contextai-mcp/watcher"
)

// maxListedChanges caps the changed paths printed by workspace_status.
const maxListedChanges = 20

// ChangeSource reports files changed on disk since the server started.
type ChangeSource interface {
	Pending() []watcher.Change
}

// StatusArgs defines the input parameters for the workspace_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the workspace_status tool.
// Fulltext and Changes are optional.
type StatusHandler struct {
	Store     *cache.Store
	Fulltext  *fulltext.Service
	Changes   ChangeSource
	StartTime time.Time
	RootDir   string
	Logger    *slog.Logger
}

// Handle processes a workspace_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	stats := h.Store.Stats()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("workspace_status",
		"cacheEntries", stats.Entries,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== contextai-mcp Status ===\n\n")
	fmt.Fprintf(&builder, "Root directory: %s\n", h.RootDir)
	fmt.Fprintf(&builder, "Uptime: %s\n", formatDuration(uptime))
	fmt.Fprintf(&builder, "Cache entries: %d (hits: %d, misses: %d)\n", stats.Entries, stats.Hits, stats.Misses)
	fmt.Fprintf(&builder, "Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	)

	if h.Fulltext != nil {
		if build, ok := h.Fulltext.Stats(); ok {
			fmt.Fprintf(&builder, "Full-text index: %d files, %s, %d skipped, built in %s\n",
				build.Files, formatFileSize(build.Bytes), build.Skipped, build.Duration.Round(time.Millisecond))
		} else {
			builder.WriteString("Full-text index: not built yet\n")
		}
	}

	if h.Changes == nil {
		builder.WriteString("Change tracking: disabled\n")
	} else {
		changes := h.Changes.Pending()
		fmt.Fprintf(&builder, "Changed on disk since start: %d\n", len(changes))
		if len(changes) > 0 {
			builder.WriteString("Cached results do not reflect these changes; restart the server to refresh.\n")
			for i, c := range changes {
				if i == maxListedChanges {
					fmt.Fprintf(&builder, "  ... and %d more\n", len(changes)-maxListedChanges)
					break
				}
				fmt.Fprintf(&builder, "  %-8s %s\n", c.Op, c.Path)
			}
		}
	}

	return textResult(builder.String()), nil, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}

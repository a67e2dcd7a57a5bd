package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexandro/contextai-mcp/analyzer"
	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/config"
	"github.com/lexandro/contextai-mcp/deps"
	"github.com/lexandro/contextai-mcp/fulltext"
	"github.com/lexandro/contextai-mcp/ignore"
	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/insight"
	"github.com/lexandro/contextai-mcp/register"
	"github.com/lexandro/contextai-mcp/search"
	"github.com/lexandro/contextai-mcp/server"
	"github.com/lexandro/contextai-mcp/tools"
	"github.com/lexandro/contextai-mcp/watcher"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "contextai-mcp",
		Short: "MCP server that gives an AI assistant context about a workspace",
		Long: `contextai-mcp serves the Model Context Protocol on stdio. It analyzes the
workspace (languages, key directories, technologies), searches code, extracts
file dependencies and exposes every non-ignored file as a resource.`,
		Version:      server.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Resolve(os.Getenv); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.RootDir, "root", "", "Workspace root (default: $"+config.WorkspaceEnv+", else the current directory)")
	flags.StringArrayVar(&cfg.Excludes, "exclude", nil, "Extra ignore pattern (repeatable)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Log file path (default: <root>/"+config.LogFileName+")")
	flags.BoolVar(&cfg.Watch, "watch", false, "Track files changed on disk and report them in workspace_status")
	flags.IntVar(&cfg.FulltextWorkers, "fulltext-workers", cfg.FulltextWorkers, "Parallel readers used to build the full-text index")

	cmd.AddCommand(register.NewCommand(register.DeriveServerName(os.Args[0])))
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	// never log to stdout, it carries the MCP stream
	logger, closeLog := setupLogger(cfg.LogLevel, cfg.LogFile)
	defer closeLog()

	startTime := time.Now()
	logger.Info("starting contextai-mcp",
		"root", cfg.RootDir,
		"excludes", cfg.Excludes,
		"watch", cfg.Watch,
		"fulltextWorkers", cfg.FulltextWorkers,
	)

	rules := ignore.LoadFromWorkspace(cfg.RootDir, logger, cfg.Excludes...)
	store := cache.NewStore()
	indexer := index.New(cfg.RootDir, rules, store, logger)
	workspaceAnalyzer := analyzer.New(indexer, logger)
	catalog := insight.New(workspaceAnalyzer, indexer, logger)

	fulltextService := fulltext.NewService(indexer, cfg.FulltextWorkers, logger)
	defer fulltextService.Close()

	statusHandler := &tools.StatusHandler{
		Store:     store,
		Fulltext:  fulltextService,
		StartTime: startTime,
		RootDir:   cfg.RootDir,
		Logger:    logger,
	}

	if cfg.Watch {
		tracker, err := watcher.NewTracker(cfg.RootDir, rules, watcher.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("failed to start change tracking, continuing without it", "error", err)
		} else {
			tracker.Start()
			defer tracker.Close()
			statusHandler.Changes = tracker
		}
	}

	mcpServer := server.Setup(indexer, server.Handlers{
		Analyze:      &tools.AnalyzeHandler{Analyzer: workspaceAnalyzer, Logger: logger},
		Search:       &tools.SearchHandler{Engine: search.New(indexer, logger), Logger: logger},
		Dependencies: &tools.DependenciesHandler{Extractor: deps.New(indexer, logger), Logger: logger},
		Patterns:     &tools.PatternsHandler{Catalog: catalog, Logger: logger},
		Summary:      &tools.SummaryHandler{Catalog: catalog, Logger: logger},
		Improvements: &tools.ImprovementsHandler{Catalog: catalog, Logger: logger},
		FindFiles:    &tools.FindFilesHandler{Indexer: indexer, Logger: logger},
		Read:         &tools.ReadHandler{Indexer: indexer, Logger: logger},
		Fulltext:     &tools.FulltextHandler{Service: fulltextService, Logger: logger},
		Status:       statusHandler,
	}, logger)

	logger.Info("MCP server starting on stdio", "setup", time.Since(startTime))
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server error", "error", err)
		return fmt.Errorf("serving MCP: %w", err)
	}
	logger.Info("MCP server stopped", "uptime", time.Since(startTime))
	return nil
}

// setupLogger creates an slog.Logger writing to logFile, falling back to
// stderr when the file cannot be opened.
func setupLogger(level string, logFile string) (*slog.Logger, func()) {
	logLevel, _ := config.ParseLevel(level)

	writer := os.Stderr
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
		} else {
			writer = f
			closeFn = func() { f.Close() }
		}
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), closeFn
}

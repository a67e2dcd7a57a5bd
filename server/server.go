// Package server binds the workspace tools, file resources and prompt
// templates to an MCP server.
package server

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/language"
	"github.com/lexandro/contextai-mcp/prompts"
	"github.com/lexandro/contextai-mcp/tools"
)

// Name and Version identify the server to clients.
const (
	Name    = "contextai-mcp"
	Version = "1.0.0"
)

// Handlers are the tool handlers registered by Setup.
type Handlers struct {
	Analyze      *tools.AnalyzeHandler
	Search       *tools.SearchHandler
	Dependencies *tools.DependenciesHandler
	Patterns     *tools.PatternsHandler
	Summary      *tools.SummaryHandler
	Improvements *tools.ImprovementsHandler
	FindFiles    *tools.FindFilesHandler
	Read         *tools.ReadHandler
	Fulltext     *tools.FulltextHandler
	Status       *tools.StatusHandler
}

// Setup creates the MCP server with all tools, one resource per indexed
// file, a file URI template and the prompt templates.
func Setup(indexer *index.Indexer, h Handlers, logger *slog.Logger) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    Name,
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server provides context about the workspace it was started in.

- analyze_workspace and get_context_summary give an overview: languages, key directories, technologies
- search_codebase searches file contents line by line (literal text or a regular expression)
- search_fulltext runs ranked word, phrase or /regex/ search over an in-memory index
- get_file_dependencies lists the imports of a file and the files that reference it
- find_files and read_file locate and read workspace files
- Results are computed once per session and cached; workspace_status reports files changed since`,
		},
	)

	registerTools(mcpServer, h)
	registerResources(mcpServer, indexer, logger)
	registerPrompts(mcpServer, logger)

	return mcpServer
}

func registerTools(s *mcp.Server, h Handlers) {
	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_workspace",
		Description: "Analyze the entire workspace structure and provide comprehensive insights",
	}, h.Analyze.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name: "search_codebase",
		Description: `Search for code patterns, functions, classes, or specific content across the workspace.

A query that is a valid regular expression containing one of ( [ * + ? is matched as a case-insensitive pattern; anything else is a case-insensitive substring. At most 50 matches are returned.`,
	}, h.Search.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_file_dependencies",
		Description: "Analyze dependencies and relationships for a specific file",
	}, h.Dependencies.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_project_patterns",
		Description: "Extract common patterns, architectures, and conventions from the codebase",
	}, h.Patterns.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_context_summary",
		Description: "Get a comprehensive summary of the workspace for AI context",
	}, h.Summary.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_improvements",
		Description: "Analyze the codebase and suggest improvements based on patterns and best practices",
	}, h.Improvements.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name: "find_files",
		Description: `Find workspace files by glob pattern.

Pattern examples:
  - "**/*.ts" - all TypeScript files
  - "src/**/*.py" - Python files under src/
  - "*.json" - JSON files in the root only`,
	}, h.FindFiles.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "read_file",
		Description: `Read a workspace file. Returns numbered lines (format: "N: content"); offset and limit select a line range.`,
	}, h.Read.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name: "search_fulltext",
		Description: `Ranked full-text search over an in-memory index built on first use.

Query formats:
  - Plain text: any of the words (e.g., "handleRequest router")
  - "quoted text": exact phrase
  - /regex/: regular expression`,
	}, h.Fulltext.Handle)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "workspace_status",
		Description: "Show server status: root, uptime, cache entries, memory usage and files changed on disk since start.",
	}, h.Status.Handle)
}

// registerResources lists every indexed file as a resource and serves reads
// of any non-ignored file under the root through a URI template.
func registerResources(s *mcp.Server, indexer *index.Indexer, logger *slog.Logger) {
	read := readHandler(indexer, logger)

	for _, path := range indexer.ListFiles() {
		s.AddResource(&mcp.Resource{
			URI:         fileURI(path),
			Name:        filepath.Base(path),
			Description: "File: " + indexer.Relative(path),
			MIMEType:    language.MIMEType(path),
		}, read)
	}

	s.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "file:///{+path}",
		Name:        "workspace-file",
		Description: "Any non-ignored file under the workspace root",
	}, read)
}

func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func readHandler(indexer *index.Indexer, logger *slog.Logger) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI

		u, err := url.Parse(uri)
		if err != nil || u.Scheme != "file" || u.Path == "" {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		path := filepath.FromSlash(u.Path)

		data, err := indexer.ReadBytes(path)
		if err != nil {
			logger.Info("resource not readable", "uri", uri, "error", err)
			return nil, mcp.ResourceNotFoundError(uri)
		}

		contents := &mcp.ResourceContents{
			URI:      uri,
			MIMEType: language.MIMEType(path),
		}
		if language.IsBinaryContent(data) {
			contents.MIMEType = "application/octet-stream"
			contents.Blob = data
		} else {
			contents.Text = string(data)
		}
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{contents}}, nil
	}
}

func registerPrompts(s *mcp.Server, logger *slog.Logger) {
	for _, t := range prompts.All() {
		args := make([]*mcp.PromptArgument, 0, len(t.Arguments))
		for _, a := range t.Arguments {
			args = append(args, &mcp.PromptArgument{
				Name:        a.Name,
				Description: a.Description,
				Required:    a.Required,
			})
		}

		s.AddPrompt(&mcp.Prompt{
			Name:        t.Name,
			Description: t.Description,
			Arguments:   args,
		}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			tmpl, text, err := prompts.Render(req.Params.Name, req.Params.Arguments)
			if err != nil {
				logger.Warn("prompt not found", "name", req.Params.Name)
				return nil, err
			}
			return &mcp.GetPromptResult{
				Description: tmpl.Description,
				Messages: []*mcp.PromptMessage{{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				}},
			}, nil
		})
	}
}

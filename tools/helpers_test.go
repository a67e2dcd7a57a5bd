package tools

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/analyzer"
	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/deps"
	"github.com/lexandro/contextai-mcp/fulltext"
	"github.com/lexandro/contextai-mcp/ignore"
	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/insight"
	"github.com/lexandro/contextai-mcp/search"
)

type testEnv struct {
	root     string
	store    *cache.Store
	indexer  *index.Indexer
	analyzer *analyzer.Analyzer
	engine   *search.Engine
	deps     *deps.Extractor
	catalog  *insight.Catalog
	fulltext *fulltext.Service
	logger   *slog.Logger
}

var fixtureFiles = map[string]string{
	"package.json":                `{"dependencies":{"react":"^18.0.0"},"devDependencies":{"typescript":"^5.0.0"}}`,
	"src/index.ts":                "import { Button } from './components/Button';\nconst fs = require('fs');\n// TODO: wire the router\nexport default Button;\n",
	"src/components/Button.tsx":   "import React from 'react';\nexport const Button = () => null;\n",
	"src/components/Button.css":   ".button { color: red; }\n",
	"README.md":                   "# Fixture\n\nA small workspace.\n",
	"node_modules/react/index.js": "module.exports = {};\n",
	"build/output.js":             "// TODO: generated\n",
	"docs/guide.md":               "TODO: write the guide\n",
	"Dockerfile":                  "FROM node:20\n",
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	for rel, content := range fixtureFiles {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := cache.NewStore()
	ix := index.New(root, ignore.LoadFromWorkspace(root, logger), store, logger)
	a := analyzer.New(ix, logger)
	svc := fulltext.NewService(ix, 2, logger)
	t.Cleanup(func() { svc.Close() })

	return &testEnv{
		root:     ix.Root(),
		store:    store,
		indexer:  ix,
		analyzer: a,
		engine:   search.New(ix, logger),
		deps:     deps.New(ix, logger),
		catalog:  insight.New(a, ix, logger),
		fulltext: svc,
		logger:   logger,
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func boolPtr(b bool) *bool { return &b }

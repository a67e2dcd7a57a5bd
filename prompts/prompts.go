// Package prompts holds the static prompt templates offered to MCP clients.
package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a prompt name is not registered.
var ErrNotFound = errors.New("prompt template not found")

// Argument describes one optional prompt argument.
type Argument struct {
	Name        string
	Description string
	Required    bool
}

// Template is a named prompt with its rendering rule.
type Template struct {
	Name        string
	Description string
	Arguments   []Argument

	body    string
	section func(value string) string
}

var templates = []Template{
	{
		Name:        "analyze_codebase",
		Description: "Comprehensive codebase analysis prompt",
		Arguments:   []Argument{{Name: "focus", Description: "Specific aspect to focus analysis on"}},
		body:        analyzeCodebaseBody,
		section: func(v string) string {
			return "\n\nPlease focus particularly on: " + v
		},
	},
	{
		Name:        "code_review",
		Description: "Code review checklist and guidelines",
		Arguments:   []Argument{{Name: "language", Description: "Programming language to focus on"}},
		body:        codeReviewBody,
		section: func(v string) string {
			return "\n\nFocus on " + v + "-specific best practices and patterns."
		},
	},
	{
		Name:        "architecture_review",
		Description: "System architecture analysis and recommendations",
		body:        architectureReviewBody,
	},
	{
		Name:        "security_audit",
		Description: "Security-focused code analysis",
		body:        securityAuditBody,
	},
	{
		Name:        "performance_optimization",
		Description: "Performance improvement suggestions",
		body:        performanceOptimizationBody,
	},
	{
		Name:        "refactoring_suggestions",
		Description: "Code refactoring recommendations",
		Arguments:   []Argument{{Name: "target_file", Description: "Specific file to focus refactoring on"}},
		body:        refactoringSuggestionsBody,
		section: func(v string) string {
			return "\n\nFocus specifically on: " + v
		},
	},
}

// All returns the registered templates in declaration order.
func All() []Template {
	return append([]Template(nil), templates...)
}

// Lookup finds a template by name.
func Lookup(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Render returns the text of the named prompt. The first declared argument,
// when present and non-empty in args, adds its paragraph; unknown arguments
// are ignored.
func Render(name string, args map[string]string) (Template, string, error) {
	t, ok := Lookup(name)
	if !ok {
		return Template{}, "", fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return t, t.render(args), nil
}

func (t Template) render(args map[string]string) string {
	section := ""
	if t.section != nil && len(t.Arguments) > 0 {
		if v := args[t.Arguments[0].Name]; v != "" {
			section = t.section(v)
		}
	}
	return strings.Replace(t.body, "{{section}}", section, 1)
}

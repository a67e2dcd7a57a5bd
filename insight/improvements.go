package insight

import (
	"fmt"
	"sort"
	"strings"
)

// Scopes are the accepted values for SuggestImprovements.
var Scopes = []string{"security", "performance", "maintainability", "all"}

// Priority ranks an improvement.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities: high 3, medium 2, low 1, anything else 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Improvement is one suggestion.
type Improvement struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Priority    Priority `json:"priority"`
	Impact      string   `json:"impact"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
	CodeExample string   `json:"codeExample,omitempty"`
	Language    string   `json:"language,omitempty"`
}

const envValidationExample = "// Example validation\n" +
	"const requiredEnvVars = ['API_KEY', 'DATABASE_URL'];\n" +
	"requiredEnvVars.forEach(envVar => {\n" +
	"  if (!process.env[envVar]) {\n" +
	"    throw new Error(`Missing required environment variable: ${envVar}`);\n" +
	"  }\n" +
	"});"

var improvementsByScope = map[string][]Improvement{
	"security": {{
		Category:    "Security",
		Title:       "Add Environment Variable Validation",
		Priority:    PriorityHigh,
		Impact:      "Prevents security vulnerabilities from missing configurations",
		Description: "Implement validation for required environment variables",
		Actions: []string{
			"Create environment variable schema",
			"Add validation at application startup",
			"Provide clear error messages for missing variables",
		},
		CodeExample: envValidationExample,
		Language:    "javascript",
	}},
	"performance": {{
		Category:    "Performance",
		Title:       "Implement Code Splitting",
		Priority:    PriorityMedium,
		Impact:      "Reduces initial bundle size and improves load times",
		Description: "Split large bundles into smaller, loadable chunks",
		Actions: []string{
			"Identify large dependencies",
			"Implement dynamic imports",
			"Configure bundler for optimal splitting",
		},
	}},
	"maintainability": {{
		Category:    "Maintainability",
		Title:       "Add Code Documentation",
		Priority:    PriorityMedium,
		Impact:      "Improves code understanding and onboarding",
		Description: "Add comprehensive documentation for key modules",
		Actions: []string{
			"Document public APIs",
			"Add inline comments for complex logic",
			"Create README files for major components",
		},
	}},
}

// SuggestImprovements returns the catalog entries for scope ("" means
// "all"), highest priority first.
func (c *Catalog) SuggestImprovements(scope string) ([]Improvement, error) {
	if scope == "" {
		scope = "all"
	}
	if !contains(Scopes, scope) {
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownScope, scope, strings.Join(Scopes, ", "))
	}

	improvements := []Improvement{}
	for _, s := range []string{"security", "performance", "maintainability"} {
		if scope == "all" || scope == s {
			improvements = append(improvements, improvementsByScope[s]...)
		}
	}
	SortByPriority(improvements)
	return improvements, nil
}

// SortByPriority orders improvements by descending priority. Equal
// priorities keep their relative order.
func SortByPriority(improvements []Improvement) {
	sort.SliceStable(improvements, func(i, j int) bool {
		return improvements[i].Priority.Rank() > improvements[j].Priority.Rank()
	})
}

package insight

import (
	"fmt"
	"strings"
)

// AnalysisTypes are the accepted values for ProjectPatterns.
var AnalysisTypes = []string{"architecture", "patterns", "conventions", "all"}

// ArchitecturePattern is a structural pattern inferred from key directories.
type ArchitecturePattern struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Examples    []string `json:"examples"`
}

// Convention is a coding convention.
type Convention struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// DesignPattern is a design pattern.
type DesignPattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PatternAnalysis groups the pattern categories. Categories not selected by
// the analysis type are empty.
type PatternAnalysis struct {
	Architecture   []ArchitecturePattern `json:"architecture"`
	Conventions    []Convention          `json:"conventions"`
	DesignPatterns []DesignPattern       `json:"designPatterns"`
}

var conventions = []Convention{
	{"File Naming", "Uses camelCase for most files"},
	{"Directory Structure", "Follows standard project layout conventions"},
	{"Import Style", "Uses ES6 import/export syntax"},
}

var designPatterns = []DesignPattern{
	{"Module Pattern", "Code organized in modular structure"},
	{"Factory Pattern", "Used for creating objects dynamically"},
}

// ProjectPatterns returns the pattern categories selected by analysisType
// ("" means "all").
func (c *Catalog) ProjectPatterns(analysisType string) (PatternAnalysis, error) {
	if analysisType == "" {
		analysisType = "all"
	}
	if !contains(AnalysisTypes, analysisType) {
		return PatternAnalysis{}, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownAnalysisType, analysisType, strings.Join(AnalysisTypes, ", "))
	}

	result := PatternAnalysis{
		Architecture:   []ArchitecturePattern{},
		Conventions:    []Convention{},
		DesignPatterns: []DesignPattern{},
	}
	all := analysisType == "all"
	if all || analysisType == "architecture" {
		result.Architecture = c.architecturePatterns()
	}
	if all || analysisType == "conventions" {
		result.Conventions = append(result.Conventions, conventions...)
	}
	if all || analysisType == "patterns" {
		result.DesignPatterns = append(result.DesignPatterns, designPatterns...)
	}
	return result, nil
}

func (c *Catalog) architecturePatterns() []ArchitecturePattern {
	dirs := c.analyzer.Analyze(analyzerDefaults).KeyDirectories

	pathsContaining := func(words ...string) []string {
		var paths []string
		for _, dir := range dirs {
			for _, w := range words {
				if strings.Contains(dir.Path, w) {
					paths = append(paths, dir.Path)
					break
				}
			}
		}
		return paths
	}

	patterns := []ArchitecturePattern{}
	if examples := pathsContaining("components"); len(examples) > 0 {
		patterns = append(patterns, ArchitecturePattern{
			Name:        "Component-Based Architecture",
			Description: "Uses reusable components for UI construction",
			Usage:       "Modular component structure detected",
			Examples:    examples,
		})
	}
	if examples := pathsContaining("pages", "views"); len(examples) > 0 {
		patterns = append(patterns, ArchitecturePattern{
			Name:        "Page/View Based Routing",
			Description: "File-based routing system with dedicated page components",
			Usage:       "Page-based navigation structure",
			Examples:    examples,
		})
	}
	return patterns
}

package language

import (
	"path/filepath"
	"strings"
)

// analysisNames maps lower-cased extensions (with dot) to the display names
// reported by workspace analysis. Extensions missing from the table still
// count toward the file distribution but add no language.
var analysisNames = map[string]string{
	".js":         "JavaScript",
	".jsx":        "JavaScript (React)",
	".ts":         "TypeScript",
	".tsx":        "TypeScript (React)",
	".py":         "Python",
	".java":       "Java",
	".cpp":        "C++",
	".c":          "C",
	".cs":         "C#",
	".php":        "PHP",
	".rb":         "Ruby",
	".go":         "Go",
	".rs":         "Rust",
	".swift":      "Swift",
	".kt":         "Kotlin",
	".scala":      "Scala",
	".css":        "CSS",
	".scss":       "SCSS",
	".sass":       "Sass",
	".less":       "Less",
	".html":       "HTML",
	".vue":        "Vue.js",
	".svelte":     "Svelte",
	".md":         "Markdown",
	".json":       "JSON",
	".yaml":       "YAML",
	".yml":        "YAML",
	".xml":        "XML",
	".sql":        "SQL",
	".sh":         "Shell Script",
	".ps1":        "PowerShell",
	".dockerfile": "Docker",
}

// fenceTags maps extensions to Markdown code-fence tags for search results.
var fenceTags = map[string]string{
	".js":     "javascript",
	".jsx":    "javascript",
	".ts":     "typescript",
	".tsx":    "typescript",
	".py":     "python",
	".java":   "java",
	".cpp":    "cpp",
	".c":      "c",
	".cs":     "csharp",
	".php":    "php",
	".rb":     "ruby",
	".go":     "go",
	".rs":     "rust",
	".swift":  "swift",
	".kt":     "kotlin",
	".css":    "css",
	".scss":   "scss",
	".html":   "html",
	".vue":    "vue",
	".svelte": "svelte",
	".md":     "markdown",
	".json":   "json",
	".yaml":   "yaml",
	".yml":    "yaml",
}

// NoExtension is the distribution bucket for files without an extension.
const NoExtension = "no extension"

// Extension returns the lower-cased extension of path including the dot,
// or "" when there is none.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// AnalysisName returns the display language for a lower-cased extension.
func AnalysisName(ext string) (string, bool) {
	name, ok := analysisNames[ext]
	return name, ok
}

// FenceTag returns the code-fence tag for the file at path, "text" when the
// extension is unknown. The lookup is case-sensitive on the extension.
func FenceTag(path string) string {
	if tag, ok := fenceTags[filepath.Ext(path)]; ok {
		return tag
	}
	return "text"
}

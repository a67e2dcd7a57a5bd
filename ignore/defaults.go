package ignore

// DefaultPatterns are appended after the workspace .gitignore on every load.
// They cover version control metadata, the dependency cache, build output,
// editor settings, log files and OS metadata.
var DefaultPatterns = []string{
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	".vscode/**",
	"*.log",
	".DS_Store",
}

// IgnoreFileName is the project ignore-declarations file read from the workspace root.
const IgnoreFileName = ".gitignore"

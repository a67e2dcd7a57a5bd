package analyzer

import "path/filepath"

var keyDirectoryNames = map[string]string{
	"src":           "Source code directory",
	"source":        "Source code directory",
	"test":          "Test files directory",
	"tests":         "Test files directory",
	"__tests__":     "Test files directory",
	"docs":          "Documentation directory",
	"documentation": "Documentation directory",
	"public":        "Static assets directory",
	"static":        "Static assets directory",
	"lib":           "Library files directory",
	"libs":          "Library files directory",
	"components":    "Reusable components directory",
	"pages":         "Page/view components directory",
	"views":         "Page/view components directory",
	"utils":         "Utility functions directory",
	"utilities":     "Utility functions directory",
	"config":        "Configuration files directory",
	"configuration": "Configuration files directory",
	"assets":        "Asset files directory",
	"types":         "Type definitions directory",
	"hooks":         "Custom hooks directory",
	"api":           "API related files directory",
}

// KeyDirectories classifies every indexed directory by its base name, in
// traversal order. Paths are workspace-relative.
func (a *Analyzer) KeyDirectories() []KeyDirectory {
	dirs := []KeyDirectory{}
	for _, dir := range a.indexer.ListDirectories() {
		description, ok := keyDirectoryNames[filepath.Base(dir)]
		if !ok {
			continue
		}
		dirs = append(dirs, KeyDirectory{
			Path:        a.indexer.Relative(dir),
			Description: description,
		})
	}
	return dirs
}

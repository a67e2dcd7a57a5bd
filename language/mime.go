package language

var mimeTypes = map[string]string{
	".js":   "application/javascript",
	".ts":   "application/typescript",
	".py":   "text/x-python",
	".java": "text/x-java-source",
	".cpp":  "text/x-c++src",
	".c":    "text/x-csrc",
	".h":    "text/x-chdr",
	".css":  "text/css",
	".html": "text/html",
	".json": "application/json",
	".xml":  "text/xml",
	".md":   "text/markdown",
	".txt":  "text/plain",
}

// MIMEType returns the resource MIME type for path, text/plain by default.
// The extension is compared case-insensitively.
func MIMEType(path string) string {
	if m, ok := mimeTypes[Extension(path)]; ok {
		return m
	}
	return "text/plain"
}

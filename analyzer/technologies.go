package analyzer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// nodeTechnologies is checked in order against the union of a package.json
// dependencies and devDependencies.
var nodeTechnologies = []struct {
	pkg string
	Technology
}{
	{"react", Technology{"React", "JavaScript UI library"}},
	{"vue", Technology{"Vue.js", "Progressive JavaScript framework"}},
	{"angular", Technology{"Angular", "TypeScript web framework"}},
	{"svelte", Technology{"Svelte", "Compile-time JavaScript framework"}},
	{"next", Technology{"Next.js", "React production framework"}},
	{"nuxt", Technology{"Nuxt.js", "Vue.js production framework"}},
	{"express", Technology{"Express.js", "Node.js web framework"}},
	{"fastify", Technology{"Fastify", "Fast Node.js web framework"}},
	{"webpack", Technology{"Webpack", "Module bundler"}},
	{"vite", Technology{"Vite", "Fast build tool"}},
	{"rollup", Technology{"Rollup", "Module bundler"}},
	{"parcel", Technology{"Parcel", "Zero-config build tool"}},
	{"jest", Technology{"Jest", "JavaScript testing framework"}},
	{"vitest", Technology{"Vitest", "Vite-native testing framework"}},
	{"cypress", Technology{"Cypress", "End-to-end testing"}},
	{"playwright", Technology{"Playwright", "Browser automation"}},
	{"typescript", Technology{"TypeScript", "Typed JavaScript"}},
}

var pythonFrameworks = []struct {
	pkg string
	Technology
}{
	{"django", Technology{"Django", "Python web framework"}},
	{"flask", Technology{"Flask", "Lightweight Python web framework"}},
	{"fastapi", Technology{"FastAPI", "Async Python API framework"}},
}

var composeFiles = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yaml", "compose.yml"}

// Technologies inspects manifest files at the workspace root and the
// indexed YAML files. Unreadable or malformed manifests are logged and
// skipped; detection of the remaining technologies continues.
func (a *Analyzer) Technologies() []Technology {
	techs := []Technology{}
	techs = append(techs, a.nodeTechnologies()...)
	techs = append(techs, a.pythonTechnologies()...)
	techs = append(techs, a.containerTechnologies()...)
	if a.hasKubernetesManifest() {
		techs = append(techs, Technology{"Kubernetes", "Container orchestration"})
	}
	return techs
}

type packageManifest struct {
	Dependencies    map[string]json.RawMessage `json:"dependencies"`
	DevDependencies map[string]json.RawMessage `json:"devDependencies"`
}

func (a *Analyzer) nodeTechnologies() []Technology {
	data, ok := a.readRootFile("package.json")
	if !ok {
		return nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		a.logger.Warn("malformed package manifest", "path", "package.json", "error", err)
		return nil
	}

	var techs []Technology
	for _, t := range nodeTechnologies {
		_, dep := manifest.Dependencies[t.pkg]
		_, dev := manifest.DevDependencies[t.pkg]
		if dep || dev {
			techs = append(techs, t.Technology)
		}
	}
	return techs
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (a *Analyzer) pythonTechnologies() []Technology {
	if !a.rootFileExists("requirements.txt") && !a.rootFileExists("pyproject.toml") {
		return nil
	}
	requirements, hasRequirements := a.readRootFile("requirements.txt")
	project, hasProject := a.readRootFile("pyproject.toml")

	techs := []Technology{{"Python", "Python project detected"}}

	packages := make(map[string]bool)
	if hasRequirements {
		for _, name := range requirementNames(requirements) {
			packages[name] = true
		}
	}
	if hasProject {
		var doc pyproject
		if err := toml.Unmarshal(project, &doc); err != nil {
			a.logger.Warn("malformed pyproject.toml", "error", err)
		} else {
			for _, spec := range doc.Project.Dependencies {
				packages[requirementName(spec)] = true
			}
			for name := range doc.Tool.Poetry.Dependencies {
				packages[strings.ToLower(name)] = true
			}
		}
	}

	for _, fw := range pythonFrameworks {
		if packages[fw.pkg] {
			techs = append(techs, fw.Technology)
		}
	}
	return techs
}

// requirementNames extracts lower-cased distribution names from a pip
// requirements file, skipping comments and option lines.
func requirementNames(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if name := requirementName(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func requirementName(spec string) string {
	spec = strings.TrimSpace(spec)
	if i := strings.IndexAny(spec, "=<>!~;[ @"); i >= 0 {
		spec = spec[:i]
	}
	return strings.ToLower(spec)
}

type composeManifest struct {
	Services map[string]yaml.Node `yaml:"services"`
}

func (a *Analyzer) containerTechnologies() []Technology {
	var techs []Technology
	if a.rootFileExists("Dockerfile") {
		techs = append(techs, Technology{"Docker", "Containerization technology"})
	}

	for _, name := range composeFiles {
		data, ok := a.readRootFile(name)
		if !ok {
			continue
		}
		var manifest composeManifest
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			a.logger.Warn("malformed compose file", "path", name, "error", err)
			break
		}
		services := make([]string, 0, len(manifest.Services))
		for service := range manifest.Services {
			services = append(services, service)
		}
		sort.Strings(services)

		description := "Multi-container orchestration"
		if len(services) > 0 {
			description = fmt.Sprintf("%s (services: %s)", description, strings.Join(services, ", "))
		}
		techs = append(techs, Technology{"Docker Compose", description})
		break
	}
	return techs
}

// hasKubernetesManifest reports whether any indexed YAML file declares both
// apiVersion and kind at the top level of one of its documents. Files that
// do not decode fall back to a plain text check. Stops at the first hit.
func (a *Analyzer) hasKubernetesManifest() bool {
	for _, file := range a.indexer.ListFiles(".yaml", ".yml") {
		content := a.indexer.ReadFile(file)
		if content == "" {
			continue
		}
		found, err := declaresKindAndVersion(content)
		if err != nil {
			a.logger.Debug("yaml decode failed, using text match", "path", a.indexer.Relative(file), "error", err)
			found = strings.Contains(content, "apiVersion:") && strings.Contains(content, "kind:")
		}
		if found {
			return true
		}
	}
	return false
}

func declaresKindAndVersion(content string) (bool, error) {
	decoder := yaml.NewDecoder(strings.NewReader(content))
	for {
		var doc map[string]any
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		_, hasVersion := doc["apiVersion"]
		_, hasKind := doc["kind"]
		if hasVersion && hasKind {
			return true, nil
		}
	}
}

func (a *Analyzer) rootFileExists(name string) bool {
	_, err := os.Stat(filepath.Join(a.indexer.Root(), name))
	return err == nil
}

// readRootFile reads a manifest at the workspace root. A missing file is
// silent; other read failures are logged.
func (a *Analyzer) readRootFile(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(a.indexer.Root(), name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn("failed to read manifest", "path", name, "error", err)
		}
		return nil, false
	}
	return data, true
}

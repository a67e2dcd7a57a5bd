// Package register writes this server into an MCP client configuration file.
package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Scopes of registration.
const (
	ScopeProject = "project"
	ScopeUser    = "user"
)

// WorkspaceEnv is the environment variable the server reads its default
// root from.
const WorkspaceEnv = "WORKSPACE_PATH"

type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Options describes one registration.
type Options struct {
	Scope      string
	Directory  string // project scope only; defaults to "."
	ServerName string
	ServerArgs []string
	BinaryPath string // detected from the running executable when empty
}

// NewCommand returns the "register" command with its project and user
// subcommands. Arguments after "--" are forwarded to the server.
func NewCommand(serverName string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this server in an MCP client configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "project [directory] [-- server args...]",
		Short: "Register in <directory>/.mcp.json (default: .)",
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, serverArgs := splitAtDash(args, cmd.ArgsLenAtDash())
			if len(positional) > 1 {
				return fmt.Errorf("expected at most one directory, got %d arguments", len(positional))
			}
			directory := "."
			if len(positional) == 1 {
				directory = positional[0]
			}
			return run(cmd, Options{
				Scope:      ScopeProject,
				Directory:  directory,
				ServerName: serverName,
				ServerArgs: serverArgs,
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "user [-- server args...]",
		Short: "Register in ~/.claude.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, serverArgs := splitAtDash(args, cmd.ArgsLenAtDash())
			if len(positional) > 0 {
				return fmt.Errorf("unexpected arguments before --: %s", strings.Join(positional, " "))
			}
			return run(cmd, Options{
				Scope:      ScopeUser,
				ServerName: serverName,
				ServerArgs: serverArgs,
			})
		},
	})

	return cmd
}

func run(cmd *cobra.Command, opts Options) error {
	configPath, err := Register(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %q in %s\n", opts.ServerName, configPath)
	return nil
}

// Register adds or replaces the server entry in the configuration file for
// opts.Scope and returns the file's path. Project registrations pin the
// workspace root through WorkspaceEnv.
func Register(opts Options) (string, error) {
	if opts.Scope != ScopeProject && opts.Scope != ScopeUser {
		return "", fmt.Errorf("unknown scope %q (must be %q or %q)", opts.Scope, ScopeProject, ScopeUser)
	}
	if opts.ServerName == "" {
		return "", errors.New("server name is required")
	}

	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		var err error
		if binaryPath, err = detectBinaryPath(); err != nil {
			return "", err
		}
	}

	configPath, err := resolveConfigPath(opts.Scope, opts.Directory)
	if err != nil {
		return "", err
	}

	entry := buildEntry(binaryPath, opts.ServerArgs)
	if opts.Scope == ScopeProject {
		entry.Env = map[string]string{WorkspaceEnv: filepath.Dir(configPath)}
	}

	if err := writeConfig(configPath, opts.ServerName, entry); err != nil {
		return "", err
	}
	return configPath, nil
}

// DeriveServerName extracts a server name from a binary path by stripping .exe and -mcp suffixes.
func DeriveServerName(binaryPath string) string {
	name := filepath.Base(binaryPath)
	name = strings.TrimSuffix(name, ".exe")
	name = strings.TrimSuffix(name, "-mcp")
	return name
}

// splitAtDash splits cobra positional args at the "--" position (-1 when absent).
func splitAtDash(args []string, dash int) (positional, forwarded []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func detectBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func resolveConfigPath(scope string, directory string) (string, error) {
	if scope == ScopeProject {
		if directory == "" {
			directory = "."
		}
		absDir, err := filepath.Abs(directory)
		if err != nil {
			return "", fmt.Errorf("resolving directory %s: %w", directory, err)
		}
		return filepath.Join(absDir, ".mcp.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude.json"), nil
}

func buildEntry(binaryPath string, serverArgs []string) mcpServerEntry {
	if runtime.GOOS == "windows" {
		args := []string{"/C", binaryPath}
		args = append(args, serverArgs...)
		return mcpServerEntry{
			Command: "cmd",
			Args:    args,
		}
	}
	return mcpServerEntry{
		Command: binaryPath,
		Args:    serverArgs,
	}
}

func writeConfig(configPath string, serverName string, entry mcpServerEntry) error {
	config := map[string]any{
		"mcpServers": map[string]any{},
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	}

	servers, ok := config["mcpServers"]
	if !ok {
		servers = map[string]any{}
		config["mcpServers"] = servers
	}

	serversMap, ok := servers.(map[string]any)
	if !ok {
		return fmt.Errorf("mcpServers in %s is not an object", configPath)
	}
	serversMap[serverName] = entry

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	output = append(output, '\n')

	// write to a temp file in the same directory, then rename over the target
	configDir := filepath.Dir(configPath)
	tmpFile, err := os.CreateTemp(configDir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", configDir, err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(output); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, configPath, err)
	}

	return nil
}

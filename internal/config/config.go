// internal/config/config.go
//
// This package handles configuration and the .armature directory structure.
// Every project that uses Armature gets a .armature/ folder created in its
// working directory: logs, the invocation journal, and command manifests
// all live there.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ArmatureDir is the name of the directory we create in each project.
	ArmatureDir = ".armature"

	defaultDocumentFile = "model.yaml"
)

const defaultProjectConfigYAML = `# armature project configuration
version: 1

# Path to the document snapshot, relative to the project directory.
document: model.yaml

# Record every command invocation in .armature/state/journal.db.
journal: true
`

// ProjectConfig models .armature/config.yaml.
type ProjectConfig struct {
	Version  int    `yaml:"version"`
	Document string `yaml:"document"`
	Journal  bool   `yaml:"journal"`
}

// Config holds the runtime configuration for an Armature session.
type Config struct {
	// ProjectDir is the directory the host was launched from.
	ProjectDir string

	// ArmatureProjectDir is ProjectDir/.armature.
	ArmatureProjectDir string

	Project ProjectConfig
}

// InitArmatureDir creates the .armature directory structure in the given
// project directory. Called on host startup.
//
// Structure created:
// .armature/
// ├── logs/      <- host log
// ├── state/     <- invocation journal
// └── commands/  <- plugin command manifests (*.yaml, *.go)
func InitArmatureDir(projectDir string) error {
	armatureDir := filepath.Join(projectDir, ArmatureDir)
	dirs := []string{
		filepath.Join(armatureDir, "logs"),
		filepath.Join(armatureDir, "state"),
		filepath.Join(armatureDir, "commands"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(armatureDir, "config.yaml"))
}

// NewConfig creates a Config populated from .armature/config.yaml.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		ArmatureProjectDir: filepath.Join(projectDir, ArmatureDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ArmatureProjectDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.ArmatureProjectDir, "state")
}

// CommandsDir returns the directory scanned for plugin command manifests.
func (c *Config) CommandsDir() string {
	return filepath.Join(c.ArmatureProjectDir, "commands")
}

// JournalPath returns the sqlite journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.StateDir(), "journal.db")
}

// DocumentPath resolves the configured document snapshot path against the
// project directory.
func (c *Config) DocumentPath() string {
	docPath := strings.TrimSpace(c.Project.Document)
	if docPath == "" {
		docPath = defaultDocumentFile
	}
	if filepath.IsAbs(docPath) {
		return docPath
	}
	return filepath.Join(c.ProjectDir, docPath)
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Document: defaultDocumentFile,
		Journal:  true,
	}
}

func (c *Config) loadProjectConfig() error {
	path := filepath.Join(c.ArmatureProjectDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if parsed.Version == 0 {
		parsed.Version = 1
	}
	c.Project = parsed
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}

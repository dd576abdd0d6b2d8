package plugins

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile pairs a parsed command manifest with its on-disk source.
type ManifestFile struct {
	Manifest CommandManifest
	Path     string
}

// ParseManifestYAML decodes and validates a single manifest payload.
func ParseManifestYAML(data []byte) (CommandManifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return CommandManifest{}, fmt.Errorf("plugin: manifest payload is empty")
	}
	var manifest CommandManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return CommandManifest{}, fmt.Errorf("plugin: decode manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return CommandManifest{}, err
	}
	return manifest.Normalized(), nil
}

// LoadManifestFile reads a YAML file from disk and returns the parsed
// command manifest.
func LoadManifestFile(path string) (ManifestFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("plugin: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return ManifestFile{}, fmt.Errorf("plugin: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	manifest, err := ParseManifestYAML(data)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return ManifestFile{Manifest: manifest, Path: filepath.Clean(path)}, nil
}

// LoadManifestDir scans a directory for *.yaml manifests and returns the
// parsed results. Missing directories are treated as "no plugins" to
// simplify startup.
func LoadManifestDir(dir string) ([]ManifestFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var manifests []ManifestFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		file, err := LoadManifestFile(filepath.Join(trimmed, name))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, file)
	}
	if len(manifests) == 0 {
		return nil, nil
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Path < manifests[j].Path })
	return manifests, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

package plugins

import (
	"fmt"

	"github.com/armatureproject/armature/internal/command"
)

// RegisterManifestCommands discovers YAML and Go manifests under dir and
// registers each one as a command wrapping its base built-in with the
// manifest's presets and identity.
func RegisterManifestCommands(reg *command.Registry, dir string) error {
	if reg == nil {
		return nil
	}
	manifests, err := loadAllManifestFiles(dir)
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		return nil
	}
	seen := make(map[string]string)
	for _, file := range manifests {
		manifest := file.Manifest
		if existing, ok := seen[manifest.ID]; ok {
			return fmt.Errorf("plugin: duplicate command id %s (%s and %s)", manifest.ID, existing, file.Path)
		}
		seen[manifest.ID] = file.Path
		if !reg.Has(manifest.Command) {
			return fmt.Errorf("plugin: %s binds unknown command %s", file.Path, manifest.Command)
		}
		manifestCopy := manifest
		if err := reg.Register(manifestCopy.ID, func(cfg command.Config) (command.Command, error) {
			return newManifestCommand(reg, manifestCopy, cfg)
		}); err != nil {
			return fmt.Errorf("plugin: register %s from %s: %w", manifest.ID, file.Path, err)
		}
	}
	return nil
}

func loadAllManifestFiles(dir string) ([]ManifestFile, error) {
	yamlManifests, err := LoadManifestDir(dir)
	if err != nil {
		return nil, err
	}
	goManifests, err := LoadGoManifestDir(dir)
	if err != nil {
		return nil, err
	}
	return append(yamlManifests, goManifests...), nil
}

// manifestCommand wraps a base command with the manifest's identity and
// preset configuration. Run defers entirely to the base procedure.
type manifestCommand struct {
	manifest CommandManifest
	base     command.Command
}

func newManifestCommand(reg *command.Registry, manifest CommandManifest, overrides command.Config) (command.Command, error) {
	cfg := make(command.Config, len(manifest.Config)+len(overrides))
	for key, value := range manifest.Config {
		cfg[key] = value
	}
	for key, value := range overrides {
		cfg[key] = value
	}
	base, err := reg.Resolve(manifest.Command, cfg)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: resolve base command: %w", manifest.ID, err)
	}
	return &manifestCommand{manifest: manifest, base: base}, nil
}

// Info implements command.Command.
func (m *manifestCommand) Info() command.Info {
	info := m.base.Info()
	info.ID = m.manifest.ID
	info.Title = m.manifest.Title
	info.Version = m.manifest.Version
	if m.manifest.Description != "" {
		info.Description = m.manifest.Description
	}
	if m.manifest.Doc != "" {
		info.Doc = m.manifest.Doc
	}
	return info
}

// Run implements command.Command.
func (m *manifestCommand) Run(ctx *command.Context) (command.Result, error) {
	return m.base.Run(ctx)
}

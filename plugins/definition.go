package plugins

import (
	"fmt"
	"strings"

	"github.com/armatureproject/armature/internal/command"
)

// CommandManifest describes a pushbutton-style add-in command loaded from
// a manifest file under .armature/commands/.
//
// A manifest binds a base command (one of the built-in procedures) to its
// own identity, help text and preset configuration, the way a pushbutton
// folder binds a script to a ribbon button.
type CommandManifest struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string         `json:"version" yaml:"version"`
	Command     string         `json:"command" yaml:"command"`
	Doc         string         `json:"doc,omitempty" yaml:"doc,omitempty"`
	Config      command.Config `json:"config,omitempty" yaml:"config,omitempty"`
}

// Normalized returns a trimmed copy of the manifest.
func (m CommandManifest) Normalized() CommandManifest {
	clone := CommandManifest{
		ID:          strings.TrimSpace(m.ID),
		Title:       strings.TrimSpace(m.Title),
		Description: strings.TrimSpace(m.Description),
		Version:     strings.TrimSpace(m.Version),
		Command:     strings.TrimSpace(m.Command),
		Doc:         strings.TrimSpace(m.Doc),
	}
	if len(m.Config) > 0 {
		clone.Config = make(command.Config, len(m.Config))
		for key, value := range m.Config {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Config[trimmed] = value
		}
	}
	return clone
}

// Validate ensures the manifest is well-formed. Whether the referenced
// base command exists is checked at registration time, against the live
// registry.
func (m CommandManifest) Validate() error {
	normalized := m.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if normalized.Title == "" {
		return fmt.Errorf("plugin %s: title is required", normalized.ID)
	}
	if normalized.Version == "" {
		return fmt.Errorf("plugin %s: version is required", normalized.ID)
	}
	if normalized.Command == "" {
		return fmt.Errorf("plugin %s: command is required", normalized.ID)
	}
	return nil
}

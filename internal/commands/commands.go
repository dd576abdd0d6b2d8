// Package commands wires the built-in add-in commands into a registry.
package commands

import (
	"github.com/armatureproject/armature/internal/command"
	"github.com/armatureproject/armature/internal/commands/placerebar"
	"github.com/armatureproject/armature/internal/commands/renameviews"
)

// RegisterBuiltins installs every built-in command factory.
func RegisterBuiltins(reg *command.Registry) error {
	if err := reg.Register(renameviews.ID, func(cfg command.Config) (command.Command, error) {
		return renameviews.New(cfg)
	}); err != nil {
		return err
	}
	if err := reg.Register(placerebar.ID, func(cfg command.Config) (command.Command, error) {
		return placerebar.New(cfg)
	}); err != nil {
		return err
	}
	return nil
}

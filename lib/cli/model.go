// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strings"
)

// Model is the application's command model: the top-level commands, an
// optional default command, and the parameters derived from every
// command's settings.
type Model struct {
	// Name is the application name used in usage lines.
	Name string

	// Commands are the top-level commands.
	Commands []*Command

	// Default runs when no command token is given. It must be a leaf,
	// and its options are accepted at the top level. When nil, an empty
	// invocation shows the root help.
	Default *Command
}

// NewModel builds a model from top-level commands. See [Model.Build].
func NewModel(name string, commands ...*Command) (*Model, error) {
	model := &Model{Name: name, Commands: commands}
	if err := model.Build(); err != nil {
		return nil, err
	}
	return model, nil
}

// Build links every command to its parent and derives parameters from
// the settings structs. Names must be non-empty, must not begin with a
// dash, and must be unique among siblings. Build must run before the
// model is used for parsing and is safe to call again after the
// command set changes.
func (m *Model) Build() error {
	if err := buildCommands(m.Commands, nil); err != nil {
		return err
	}
	if m.Default == nil {
		return nil
	}
	if m.Default.IsBranch() {
		return fmt.Errorf("default command %q must have a Run function", m.Default.Name)
	}
	if len(m.Default.Subcommands) > 0 {
		return fmt.Errorf("default command %q must not have subcommands", m.Default.Name)
	}
	m.Default.parent = nil
	parameters, err := deriveParameters(m.Default)
	if err != nil {
		return err
	}
	m.Default.parameters = parameters
	return nil
}

func buildCommands(commands []*Command, parent *Command) error {
	seen := make(map[string]bool, len(commands))
	for _, command := range commands {
		if command == nil {
			return fmt.Errorf("nil command under %q", pathOf(parent))
		}
		if command.Name == "" {
			return fmt.Errorf("command with empty name under %q", pathOf(parent))
		}
		if strings.HasPrefix(command.Name, "-") || strings.ContainsAny(command.Name, " \t") {
			return fmt.Errorf("invalid command name %q", command.Name)
		}
		if seen[command.Name] {
			return fmt.Errorf("duplicate command %q under %q", command.Name, pathOf(parent))
		}
		seen[command.Name] = true

		command.parent = parent
		if command.IsBranch() && len(command.Subcommands) == 0 {
			return fmt.Errorf("command %q has neither Run nor subcommands", command.Path())
		}
		parameters, err := deriveParameters(command)
		if err != nil {
			return err
		}
		command.parameters = parameters
		if err := buildCommands(command.Subcommands, command); err != nil {
			return err
		}
	}
	return nil
}

func pathOf(command *Command) string {
	if command == nil {
		return "(root)"
	}
	return command.Path()
}

// Find returns the command at the space-separated path, or nil.
func (m *Model) Find(path string) *Command {
	fields := strings.Fields(path)
	if len(fields) == 0 {
		return nil
	}
	command := findCommand(m.Commands, fields[0])
	for _, name := range fields[1:] {
		if command == nil {
			return nil
		}
		command = command.Subcommand(name)
	}
	return command
}

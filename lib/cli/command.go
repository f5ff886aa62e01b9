// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"strings"
)

// Command is a node of the command model: either a branch that groups
// subcommands or a leaf that runs.
type Command struct {
	// Name is the command name as typed by the user (e.g., "add", "package").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the
	// command's own help output.
	Description string

	// Usage overrides the synthesized usage line in help output.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Settings returns a new pointer to the command's settings struct.
	// Tagged fields declare the command's parameters (see [BindFlags]).
	// A leaf's settings embed its ancestors' settings so that one value
	// receives every parameter along the path. Nil means the command
	// declares no parameters of its own and binds into the nearest
	// ancestor's settings type.
	Settings func() any

	// Subcommands are nested commands selected by the next positional
	// token.
	Subcommands []*Command

	// Run executes the leaf with bound settings and returns the process
	// exit code. A command with no Run is a branch.
	Run func(ctx context.Context, invocation *Invocation, settings any) (int, error)

	// Validate runs after binding and before Run. A returned error aborts
	// execution as a *ValidationError.
	Validate func(invocation *Invocation, settings any) error

	// Data is opaque per-command data surfaced through Invocation.Data.
	Data any

	parent     *Command
	parameters []*Parameter
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Leaf returns a leaf command whose settings are a *T.
func Leaf[T any](name, summary string, run func(ctx context.Context, invocation *Invocation, settings *T) (int, error)) *Command {
	return &Command{
		Name:     name,
		Summary:  summary,
		Settings: func() any { return new(T) },
		Run: func(ctx context.Context, invocation *Invocation, settings any) (int, error) {
			return run(ctx, invocation, settings.(*T))
		},
	}
}

// Branch returns a branch command whose settings are a *T.
func Branch[T any](name, summary string, subcommands ...*Command) *Command {
	return &Command{
		Name:        name,
		Summary:     summary,
		Settings:    func() any { return new(T) },
		Subcommands: subcommands,
	}
}

// IsBranch reports whether the command only groups subcommands. Branches
// cannot be executed; selecting one without a leaf shows its help.
func (c *Command) IsBranch() bool {
	return c.Run == nil
}

// Parent returns the enclosing command, or nil at the top level.
func (c *Command) Parent() *Command {
	return c.parent
}

// Parameters returns the parameters the command declares itself, in
// declaration order. Inherited parameters belong to the ancestor that
// declares them.
func (c *Command) Parameters() []*Parameter {
	return c.parameters
}

// Path returns the space-separated command path (e.g., "add package").
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.Path() + " " + c.Name
}

// Subcommand returns the direct subcommand called name, or nil.
func (c *Command) Subcommand(name string) *Command {
	return findCommand(c.Subcommands, name)
}

// option finds an option the command declares by long name or, when
// short is set, by shorthand.
func (c *Command) option(name string, short bool) *Parameter {
	for _, parameter := range c.parameters {
		if parameter.Kind != OptionParameter {
			continue
		}
		if short {
			if parameter.Shorthand == name {
				return parameter
			}
		} else if parameter.Name == name {
			return parameter
		}
	}
	return nil
}

// arguments returns the command's own positional arguments by position.
func (c *Command) arguments() []*Parameter {
	var arguments []*Parameter
	for _, parameter := range c.parameters {
		if parameter.Kind == ArgumentParameter {
			arguments = append(arguments, parameter)
		}
	}
	return arguments
}

// newSettings returns a fresh settings value for binding: the command's
// own type, else the nearest ancestor's, else an empty struct.
func (c *Command) newSettings() any {
	for command := c; command != nil; command = command.parent {
		if command.Settings != nil {
			return command.Settings()
		}
	}
	return &struct{}{}
}

// chain returns the commands from the top level down to c.
func (c *Command) chain() []*Command {
	var commands []*Command
	for command := c; command != nil; command = command.parent {
		commands = append(commands, command)
	}
	for i, j := 0, len(commands)-1; i < j; i, j = i+1, j-1 {
		commands[i], commands[j] = commands[j], commands[i]
	}
	return commands
}

func findCommand(commands []*Command, name string) *Command {
	for _, command := range commands {
		if command.Name == name {
			return command
		}
	}
	return nil
}

func commandNames(commands []*Command) []string {
	names := make([]string, 0, len(commands))
	for _, command := range commands {
		names = append(names, command.Name)
	}
	return names
}

// isOptionToken reports whether token looks like an option rather than a
// value. Negative numbers are values.
func isOptionToken(token string) bool {
	if len(token) < 2 || token[0] != '-' {
		return false
	}
	if token == "--" {
		return true
	}
	return !looksNumeric(token[1:])
}

func looksNumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, character := range text {
		if !strings.ContainsRune("0123456789.eE+-_", character) {
			return false
		}
	}
	return text[0] >= '0' && text[0] <= '9' || text[0] == '.'
}

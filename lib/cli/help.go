// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
)

// ColorMode selects whether help output is styled.
type ColorMode uint8

const (
	// ColorAuto styles output when the writer is a color terminal.
	ColorAuto ColorMode = iota
	// ColorAlways styles output with ANSI colors.
	ColorAlways
	// ColorNever writes plain text.
	ColorNever
)

// ParseColorMode maps "auto", "always" and "never" (or "") to a mode.
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q (want auto, always or never)", name)
	}
}

// HelpOptions controls help rendering.
type HelpOptions struct {
	Color ColorMode
}

// renderer returns a lipgloss renderer for w. Forced modes must call
// SetColorProfile: Renderer.ColorProfile re-detects from the environment
// and ignores the termenv output profile otherwise.
func (o HelpOptions) renderer(w io.Writer) *lipgloss.Renderer {
	var profile termenv.Profile
	switch o.Color {
	case ColorAlways:
		profile = termenv.ANSI
	case ColorNever:
		profile = termenv.Ascii
	default:
		return lipgloss.NewRenderer(w)
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// WriteHelp writes help for command to w. A nil command writes the
// model's root help: the top-level commands and, when the model has a
// default command, its options.
func WriteHelp(w io.Writer, model *Model, command *Command, options HelpOptions) {
	heading := options.renderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n", heading.Render(title+":"))
	}

	var subcommands []*Command
	var chain []*Command
	name := model.Name
	if command == nil {
		subcommands = model.Commands
		if model.Default != nil {
			chain = []*Command{model.Default}
		}
	} else {
		subcommands = command.Subcommands
		chain = command.chain()
		name = model.Name + " " + command.Path()
		if command.Description != "" {
			fmt.Fprintf(w, "%s\n", command.Description)
		} else if command.Summary != "" {
			fmt.Fprintf(w, "%s\n", command.Summary)
		}
	}

	section("Usage")
	if command != nil && command.Usage != "" {
		fmt.Fprintf(w, "  %s\n", command.Usage)
	} else {
		fmt.Fprintf(w, "  %s\n", usageLine(model, command, chain, len(subcommands) > 0))
	}

	if arguments := chainArguments(chain); len(arguments) > 0 {
		section("Arguments")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, argument := range arguments {
			fmt.Fprintf(tw, "  %s\t%s\n", argument.Display(), argument.Description)
		}
		tw.Flush()
	}

	if len(subcommands) > 0 {
		section("Commands")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, subcommand := range subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", subcommand.Name, subcommand.Summary)
		}
		tw.Flush()
	}

	section("Flags")
	fmt.Fprint(w, helpFlagSet(chain).FlagUsages())

	if command != nil && len(command.Examples) > 0 {
		section("Examples")
		for _, example := range command.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// usageLine synthesizes "app add [PROJECT] package <PACKAGE_NAME> [flags]".
func usageLine(model *Model, command *Command, chain []*Command, hasSubcommands bool) string {
	parts := []string{model.Name}
	if command != nil {
		for _, link := range chain {
			parts = append(parts, link.Name)
			for _, argument := range link.arguments() {
				parts = append(parts, argument.Display())
			}
		}
	}
	if hasSubcommands {
		parts = append(parts, "<command>")
	}
	parts = append(parts, "[flags]")
	return strings.Join(parts, " ")
}

func chainArguments(chain []*Command) []*Parameter {
	var arguments []*Parameter
	for _, command := range chain {
		arguments = append(arguments, command.arguments()...)
	}
	return arguments
}

// helpFlagSet binds a throwaway settings value for the deepest command
// of chain so that pflag renders every visible option with its type and
// default.
func helpFlagSet(chain []*Command) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("help", pflag.ContinueOnError)
	if len(chain) > 0 {
		// Errors here surface from Model.Build first.
		_ = BindFlags(chain[len(chain)-1].newSettings(), flagSet)
	}
	if flagSet.Lookup("help") == nil {
		shorthand := "h"
		if flagSet.ShorthandLookup("h") != nil {
			shorthand = ""
		}
		flagSet.BoolP("help", shorthand, false, "show help")
	}
	return flagSet
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/layerargs/lib/argsource"
	"github.com/bureau-foundation/layerargs/lib/version"
)

// App resolves a command line against a model, layering argument
// documents from registered sources underneath it, and runs the
// selected command.
type App struct {
	Model *Model

	// Sources are consulted for unknown options left by the primary
	// parse. Nil means no sources.
	Sources *argsource.Registry

	// Version is printed for --version and -v. Empty means the build
	// version from lib/version.
	Version string

	// Interceptor runs after binding and before validation. It may
	// adjust settings or register cleanups on the invocation.
	Interceptor func(invocation *Invocation, settings any)

	// Strict rejects unknown options that no source consumed.
	Strict bool

	// Output receives help and version text. Nil means os.Stdout.
	Output io.Writer

	Help HelpOptions

	// Logger receives debug events about resolution. Nil discards.
	Logger *slog.Logger
}

// Resolution is the outcome of resolving a command line.
type Resolution struct {
	// Tree is the merged command path, or nil when nothing was selected.
	Tree *CommandTree

	// Remaining is the primary parse's remaining arguments minus the
	// keys consumed by argument sources.
	Remaining RemainingArguments

	// Consumed lists the option keys that matched a source.
	Consumed []string

	// Batches is the number of token batches the sources produced.
	Batches int
}

// Resolve parses args, expands argument sources and merges the result.
// Batch trees are folded in dispatch order and the primary tree is
// merged last, so the command line overrides every document. Unknown
// options found while parsing batches are discarded.
func (a *App) Resolve(args []string) (Resolution, error) {
	logger := a.logger()
	parser := NewParser(a.Model)

	primary, err := parser.Parse(args)
	if err != nil {
		return Resolution{}, err
	}
	logger.Debug("parsed command line",
		"tree", primary.Tree.String(),
		"remaining", primary.Remaining.Keys(),
	)

	batches, consumed, err := Dispatch(a.Sources, primary.Remaining)
	if err != nil {
		return Resolution{}, err
	}

	tree := primary.Tree
	if len(batches) > 0 {
		trees := make([]*CommandTree, 0, len(batches))
		for i, batch := range batches {
			parsed, err := parser.Parse(batch)
			if err != nil {
				return Resolution{}, fmt.Errorf("argument batch %d: %w", i+1, err)
			}
			logger.Debug("parsed argument batch",
				"batch", i+1,
				"tokens", len(batch),
				"tree", parsed.Tree.String(),
			)
			trees = append(trees, parsed.Tree)
		}
		tree = MergeTrees(FoldTrees(trees...), primary.Tree)
		logger.Debug("merged argument batches", "batches", len(batches), "tree", tree.String())
	}

	resolution := Resolution{
		Tree:      tree,
		Remaining: primary.Remaining.Without(consumed...),
		Consumed:  consumed,
		Batches:   len(batches),
	}
	if a.Strict && resolution.Remaining.Len() > 0 {
		key := resolution.Remaining.Keys()[0]
		var command *Command
		if tree != nil {
			command = tree.Leaf().Command
		}
		parseError := &ParseError{
			Token:      "--" + key,
			Message:    "unknown option",
			Suggestion: suggestOption(key, command),
		}
		if command != nil {
			parseError.Command = command.Path()
		}
		return Resolution{}, parseError
	}
	return resolution, nil
}

// Run resolves args and executes the selected command, returning its
// exit code.
//
// Without a default command, a first token of --version or -v (any case)
// prints the version and returns 0 before anything else is parsed. When
// nothing is selected the root help is written and 0 returned. A branch
// or an explicit help request writes that command's help; the exit code
// is 0 for a help request and 1 otherwise. A leaf is bound, passed to
// the interceptor, validated and run.
func (a *App) Run(ctx context.Context, args []string) (int, error) {
	output := a.output()

	if a.Model.Default == nil && len(args) > 0 && isVersionToken(args[0]) {
		fmt.Fprintln(output, a.version())
		return 0, nil
	}

	resolution, err := a.Resolve(args)
	if err != nil {
		return 1, err
	}

	if resolution.Tree == nil {
		WriteHelp(output, a.Model, nil, a.Help)
		return 0, nil
	}

	leaf := resolution.Tree.Leaf()
	if leaf.ShowHelp || leaf.Command.IsBranch() {
		WriteHelp(output, a.Model, leaf.Command, a.Help)
		if leaf.ShowHelp {
			return 0, nil
		}
		return 1, nil
	}

	return a.execute(ctx, resolution, leaf)
}

func (a *App) execute(ctx context.Context, resolution Resolution, leaf *CommandTree) (int, error) {
	command := leaf.Command
	settings := command.newSettings()
	if err := Bind(resolution.Tree, settings); err != nil {
		return 1, err
	}

	invocation := newInvocation(command, resolution.Remaining, a.logger())
	defer invocation.close()

	if a.Interceptor != nil {
		a.Interceptor(invocation, settings)
	}

	if err := validateSettings(invocation, command, settings); err != nil {
		return 1, err
	}

	code, err := command.Run(ctx, invocation, settings)
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, err
	}
	return code, err
}

// Validator is implemented by settings types that check themselves
// after binding.
type Validator interface {
	Validate() error
}

func validateSettings(invocation *Invocation, command *Command, settings any) error {
	if validator, ok := settings.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return &ValidationError{Command: command.Path(), Problems: []string{err.Error()}, Err: err}
		}
	}
	if command.Validate != nil {
		if err := command.Validate(invocation, settings); err != nil {
			var validationError *ValidationError
			if errors.As(err, &validationError) {
				return err
			}
			return &ValidationError{Command: command.Path(), Problems: []string{err.Error()}, Err: err}
		}
	}
	return nil
}

func isVersionToken(token string) bool {
	return strings.EqualFold(token, "--version") || strings.EqualFold(token, "-v")
}

func (a *App) version() string {
	if a.Version != "" {
		return a.Version
	}
	return version.Info()
}

func (a *App) output() io.Writer {
	if a.Output != nil {
		return a.Output
	}
	return os.Stdout
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

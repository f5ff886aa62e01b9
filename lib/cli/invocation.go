// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "log/slog"

// Invocation is the per-execution context handed to the interceptor,
// the Validate hook and Run. It lives for exactly one execution.
type Invocation struct {
	// Name is the leaf command's name.
	Name string

	// Path is the leaf command's full path (e.g., "add package").
	Path string

	// Remaining holds unknown options that no argument source consumed,
	// and the raw tokens after "--".
	Remaining RemainingArguments

	// Data is the leaf command's Data field.
	Data any

	// Logger is scoped with the command path.
	Logger *slog.Logger

	cleanups []func()
}

func newInvocation(command *Command, remaining RemainingArguments, logger *slog.Logger) *Invocation {
	return &Invocation{
		Name:      command.Name,
		Path:      command.Path(),
		Remaining: remaining,
		Data:      command.Data,
		Logger:    logger.With("command", command.Path()),
	}
}

// Defer registers cleanup to run after the execution finishes, whether
// it succeeded, failed validation, or returned an error. Cleanups run
// in reverse registration order.
func (i *Invocation) Defer(cleanup func()) {
	i.cleanups = append(i.cleanups, cleanup)
}

func (i *Invocation) close() {
	for index := len(i.cleanups) - 1; index >= 0; index-- {
		i.cleanups[index]()
	}
	i.cleanups = nil
}

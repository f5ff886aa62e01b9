// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/layerargs/lib/cli"
	"github.com/bureau-foundation/layerargs/lib/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code, err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		// Commands that print their own output return an ExitError with
		// the desired exit code. Don't print a redundant "error:" line.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 1, err
	}
	app, err := newApp(cfg, stdout)
	if err != nil {
		return 1, err
	}
	return app.Run(ctx, args)
}

// loadConfig reads LAYERARGS_CONFIG when set and falls back to the
// defaults otherwise.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNotConfigured) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp wires the command model to the configured sources.
func newApp(cfg *config.Config, stdout io.Writer) (*cli.App, error) {
	level, err := cli.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := cli.NewCommandLogger(level)

	color, err := cli.ParseColorMode(cfg.Help.Color)
	if err != nil {
		return nil, err
	}

	sources, err := cfg.Registry(logger)
	if err != nil {
		return nil, err
	}

	model, err := newModel(stdout)
	if err != nil {
		return nil, err
	}

	return &cli.App{
		Model:   model,
		Sources: sources,
		Strict:  cfg.Parsing.Strict,
		Output:  stdout,
		Help:    cli.HelpOptions{Color: color},
		Logger:  logger,
		Interceptor: func(invocation *cli.Invocation, settings any) {
			for _, key := range invocation.Remaining.Keys() {
				invocation.Logger.Warn("ignoring unrecognized option", "option", "--"+key)
			}
		},
	}, nil
}

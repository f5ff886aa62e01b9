// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli resolves layered command lines and runs the selected
// command.
//
// A [Model] describes the commands. Each [Command] declares its
// parameters through struct tags on its settings type (see [BindFlags]);
// a leaf's settings embed the settings of the branches above it, so one
// value receives every parameter along the path.
//
// Resolution happens in layers. The [Parser] maps the process arguments
// onto the model and leaves unknown options in [RemainingArguments].
// [Dispatch] hands each unknown option that names a registered argument
// source (lib/argsource) to that source, which turns the option's value
// into a batch of tokens. Every batch is parsed against the same model,
// the batch trees are folded with [FoldTrees], and the command-line
// tree is merged last with [MergeTrees] so explicit arguments win:
//
//	pkgtool add package lib --config defaults.yaml
//
// with defaults.yaml containing
//
//	add:
//	  package:
//	    number: 5
//
// runs "add package" with PACKAGE_NAME=lib and --number 5.
//
// [App.Run] drives the whole pipeline: version shortcut, parse,
// dispatch, merge, help, then [Bind], the interceptor, validation and
// the command's Run function. Commands report non-zero exits with
// [ExitError].
package cli

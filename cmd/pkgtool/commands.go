// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/layerargs/lib/cli"
)

type addSettings struct {
	Project string `json:"project,omitempty" arg:"[PROJECT]" desc:"project file to modify (default: the project in the current directory)"`
}

type addPackageSettings struct {
	addSettings
	cli.JSONOutput
	PackageName string   `json:"package_name" arg:"<PACKAGE_NAME>" desc:"package to add"`
	Versions    []string `json:"versions,omitempty" flag:"version,v" desc:"package version to pin (repeatable)"`
	Flag        bool     `json:"flag" flag:"flag" desc:"example boolean option"`
	Number      int      `json:"number" flag:"number" desc:"example numeric option"`
}

type addReferenceSettings struct {
	addSettings
	cli.JSONOutput
	Reference string `json:"reference" arg:"<PROJECT_REFERENCE>" desc:"project to reference"`
}

// addPackageResult is the JSON output of "add package".
type addPackageResult struct {
	Command string `json:"command"`
	addPackageSettings
}

// addReferenceResult is the JSON output of "add reference".
type addReferenceResult struct {
	Command string `json:"command"`
	addReferenceSettings
}

func newModel(stdout io.Writer) (*cli.Model, error) {
	addPackage := cli.Leaf("package", "Add a package reference to a project",
		func(ctx context.Context, invocation *cli.Invocation, settings *addPackageSettings) (int, error) {
			if done, err := settings.EmitJSON(stdout, addPackageResult{Command: invocation.Path, addPackageSettings: *settings}); done {
				return 0, err
			}
			return 0, writeFields(stdout, invocation.Path, [][2]string{
				{"project", orNone(settings.Project)},
				{"package", settings.PackageName},
				{"versions", orNone(strings.Join(settings.Versions, ", "))},
				{"flag", fmt.Sprint(settings.Flag)},
				{"number", fmt.Sprint(settings.Number)},
			})
		})
	addPackage.Description = "Add a package reference to a project.\n\n" +
		"Options may come from the command line or from argument documents;\n" +
		"the command line wins."
	addPackage.Examples = []cli.Example{
		{Description: "Pin two versions", Command: "pkgtool add package lib -v 1.0 -v 2.0"},
		{Description: "Take defaults from a document", Command: "pkgtool add package lib --config defaults.yaml"},
	}

	addReference := cli.Leaf("reference", "Add a project reference to a project",
		func(ctx context.Context, invocation *cli.Invocation, settings *addReferenceSettings) (int, error) {
			if done, err := settings.EmitJSON(stdout, addReferenceResult{Command: invocation.Path, addReferenceSettings: *settings}); done {
				return 0, err
			}
			return 0, writeFields(stdout, invocation.Path, [][2]string{
				{"project", orNone(settings.Project)},
				{"reference", settings.Reference},
			})
		})

	add := cli.Branch[addSettings]("add", "Add a package or reference to a project", addPackage, addReference)

	return cli.NewModel("pkgtool", add)
}

func writeFields(w io.Writer, title string, fields [][2]string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, field := range fields {
		fmt.Fprintf(tw, "  %s:\t%s\n", field[0], field[1])
	}
	return tw.Flush()
}

func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}

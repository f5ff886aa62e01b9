// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"strings"
	"testing"
)

type AddSettings struct {
	Project string `arg:"[PROJECT]" desc:"project file to modify"`
	DryRun  bool   `flag:"dry-run,d" desc:"report changes without writing"`
}

type AddPackageSettings struct {
	AddSettings
	JSONOutput
	PackageName string   `arg:"<PACKAGE_NAME>" desc:"package to install"`
	Version     bool     `flag:"version" desc:"also pin the version"`
	Sources     []string `flag:"source,s" desc:"package source (repeatable)"`
	Flag        bool     `flag:"flag,f" desc:"a boolean flag"`
	Number      int      `flag:"number,n" desc:"a number" default:"1"`
}

type AddReferenceSettings struct {
	AddSettings
	Reference string `arg:"<PROJECT_REFERENCE>" desc:"project to reference"`
}

// recorder captures the executions of a test model.
type recorder struct {
	calls      int
	command    string
	settings   any
	invocation *Invocation
	code       int
	err        error
}

func (r *recorder) run(ctx context.Context, invocation *Invocation, settings any) (int, error) {
	r.calls++
	r.command = invocation.Path
	r.settings = settings
	r.invocation = invocation
	return r.code, r.err
}

// newTestModel builds the pkgtool-shaped model:
//
//	add [PROJECT] [-d]
//	  package <PACKAGE_NAME> [--version] [-s SOURCE]... [-f] [-n N] [--json]
//	  reference <PROJECT_REFERENCE>
func newTestModel(t *testing.T, record *recorder) *Model {
	t.Helper()
	if record == nil {
		record = &recorder{}
	}
	add := &Command{
		Name:     "add",
		Summary:  "Add a package or reference to a project",
		Settings: func() any { return new(AddSettings) },
		Subcommands: []*Command{
			{
				Name:     "package",
				Summary:  "Add a package reference",
				Settings: func() any { return new(AddPackageSettings) },
				Run:      record.run,
				Data:     "package-data",
				Examples: []Example{{Description: "Add lib at version 5", Command: "pkgtool add package lib --number 5"}},
			},
			{
				Name:     "reference",
				Summary:  "Add a project reference",
				Settings: func() any { return new(AddReferenceSettings) },
				Run:      record.run,
			},
		},
	}
	model, err := NewModel("pkgtool", add)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return model
}

func TestNewModelDerivesParameters(t *testing.T) {
	model := newTestModel(t, nil)

	add := model.Find("add")
	if add == nil {
		t.Fatal("Find(add) = nil")
	}
	var addIDs []string
	for _, parameter := range add.Parameters() {
		addIDs = append(addIDs, string(parameter.ID))
	}
	if got, want := strings.Join(addIDs, ","), "add [PROJECT],add --dry-run"; got != want {
		t.Errorf("add parameters = %s, want %s", got, want)
	}

	packageCommand := model.Find("add package")
	if packageCommand == nil {
		t.Fatal("Find(add package) = nil")
	}
	if packageCommand.Parent() != add {
		t.Errorf("package parent = %v, want add", packageCommand.Parent())
	}
	var packageIDs []string
	for _, parameter := range packageCommand.Parameters() {
		packageIDs = append(packageIDs, string(parameter.ID))
	}
	want := "add package --json,add package <PACKAGE_NAME>,add package --version," +
		"add package --source,add package --flag,add package --number"
	if got := strings.Join(packageIDs, ","); got != want {
		t.Errorf("package parameters = %s, want %s", got, want)
	}

	for _, parameter := range packageCommand.Parameters() {
		switch parameter.Name {
		case "source":
			if !parameter.Repeatable || parameter.Shorthand != "s" {
				t.Errorf("source = %+v, want repeatable with shorthand s", parameter)
			}
		case "flag":
			if !parameter.Flag {
				t.Errorf("flag.Flag = false, want true")
			}
		case "PACKAGE_NAME":
			if !parameter.Required || parameter.Kind != ArgumentParameter {
				t.Errorf("PACKAGE_NAME = %+v, want required argument", parameter)
			}
		case "number":
			if parameter.Default != "1" {
				t.Errorf("number.Default = %q, want 1", parameter.Default)
			}
		}
	}

	if model.Find("add missing") != nil || model.Find("") != nil {
		t.Error("Find returned a command for an unknown path")
	}
}

func TestNewModelRejectsInvalidModels(t *testing.T) {
	run := func(context.Context, *Invocation, any) (int, error) { return 0, nil }

	type missingParent struct {
		Name string `arg:"<NAME>"`
	}
	type badOrder struct {
		Optional string `arg:"[OPTIONAL]"`
		Required string `arg:"<REQUIRED>"`
	}
	type repeatableFirst struct {
		Many []string `arg:"[MANY]"`
		One  string   `arg:"[ONE]"`
	}
	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	type badArgTag struct {
		Name string `arg:"NAME"`
	}
	type duplicateShorthand struct {
		First  bool `flag:"first,x"`
		Second bool `flag:"second,x"`
	}

	tests := []struct {
		name     string
		commands []*Command
		want     string
	}{
		{
			name:     "empty name",
			commands: []*Command{{Run: run}},
			want:     "empty name",
		},
		{
			name:     "dash name",
			commands: []*Command{{Name: "-x", Run: run}},
			want:     "invalid command name",
		},
		{
			name:     "duplicate",
			commands: []*Command{{Name: "a", Run: run}, {Name: "a", Run: run}},
			want:     "duplicate command",
		},
		{
			name:     "branch without subcommands",
			commands: []*Command{{Name: "a"}},
			want:     "neither Run nor subcommands",
		},
		{
			name: "leaf settings omit parent parameters",
			commands: []*Command{{
				Name:        "a",
				Settings:    func() any { return new(AddSettings) },
				Subcommands: []*Command{{Name: "b", Settings: func() any { return new(missingParent) }, Run: run}},
			}},
			want: "do not include",
		},
		{
			name:     "required after optional",
			commands: []*Command{{Name: "a", Settings: func() any { return new(badOrder) }, Run: run}},
			want:     "follows optional",
		},
		{
			name:     "repeatable argument not last",
			commands: []*Command{{Name: "a", Settings: func() any { return new(repeatableFirst) }, Run: run}},
			want:     "must be last",
		},
		{
			name:     "unsupported type",
			commands: []*Command{{Name: "a", Settings: func() any { return new(unsupported) }, Run: run}},
			want:     "unsupported type",
		},
		{
			name:     "malformed arg tag",
			commands: []*Command{{Name: "a", Settings: func() any { return new(badArgTag) }, Run: run}},
			want:     "invalid arg tag",
		},
		{
			name:     "duplicate shorthand",
			commands: []*Command{{Name: "a", Settings: func() any { return new(duplicateShorthand) }, Run: run}},
			want:     "shorthand -x declared twice",
		},
		{
			name:     "settings not a struct pointer",
			commands: []*Command{{Name: "a", Settings: func() any { return "nope" }, Run: run}},
			want:     "pointer to a struct",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewModel("app", test.commands...)
			if err == nil {
				t.Fatal("NewModel succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", err, test.want)
			}
		})
	}
}

func TestModelDefaultMustBeLeaf(t *testing.T) {
	model := &Model{
		Name:    "app",
		Default: &Command{Name: "default", Subcommands: []*Command{{Name: "x", Run: func(context.Context, *Invocation, any) (int, error) { return 0, nil }}}},
	}
	if err := model.Build(); err == nil {
		t.Fatal("Build succeeded with a branch default command")
	}
}

func TestLeafHelperTypesSettings(t *testing.T) {
	type greetSettings struct {
		Name string `arg:"<NAME>"`
	}
	var got string
	command := Leaf("greet", "Say hello", func(ctx context.Context, invocation *Invocation, settings *greetSettings) (int, error) {
		got = settings.Name
		return 3, nil
	})
	branch := Branch[struct{}]("say", "Say things", command)
	if _, err := NewModel("app", branch); err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if command.IsBranch() || !branch.IsBranch() {
		t.Fatalf("IsBranch: leaf=%v branch=%v", command.IsBranch(), branch.IsBranch())
	}

	value := command.newSettings().(*greetSettings)
	value.Name = "world"
	code, err := command.Run(context.Background(), &Invocation{}, value)
	if err != nil || code != 3 {
		t.Fatalf("Run = %d, %v; want 3, nil", code, err)
	}
	if got != "world" {
		t.Errorf("Name = %q, want world", got)
	}
	if command.Path() != "say greet" {
		t.Errorf("Path() = %q, want %q", command.Path(), "say greet")
	}
}

func TestSettingsInheritedFromAncestor(t *testing.T) {
	run := func(context.Context, *Invocation, any) (int, error) { return 0, nil }
	leaf := &Command{Name: "package", Run: run}
	model, err := NewModel("app", &Command{
		Name:        "add",
		Settings:    func() any { return new(AddSettings) },
		Subcommands: []*Command{leaf},
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if _, ok := model.Find("add package").newSettings().(*AddSettings); !ok {
		t.Errorf("newSettings() = %T, want *AddSettings", leaf.newSettings())
	}
	if len(leaf.Parameters()) != 0 {
		t.Errorf("leaf parameters = %d, want 0", len(leaf.Parameters()))
	}
}

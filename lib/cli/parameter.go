// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ParameterKind distinguishes named options from positional arguments.
type ParameterKind uint8

const (
	// OptionParameter is a named option (--name, -n).
	OptionParameter ParameterKind = iota + 1
	// ArgumentParameter is a positional argument (<NAME>, [NAME]).
	ArgumentParameter
)

func (k ParameterKind) String() string {
	switch k {
	case OptionParameter:
		return "option"
	case ArgumentParameter:
		return "argument"
	default:
		return fmt.Sprintf("ParameterKind(%d)", uint8(k))
	}
}

// ParameterID identifies a parameter within a model. It is the declaring
// command's path followed by the parameter's display form, for example
// "add package --number" or "add [PROJECT]".
type ParameterID string

// Parameter is an option or argument declared by a command's settings.
type Parameter struct {
	ID          ParameterID
	Kind        ParameterKind
	Name        string
	Shorthand   string
	Description string
	Default     string

	// Required is set for arguments written <NAME>.
	Required bool

	// Position orders a command's own arguments.
	Position int

	// Repeatable parameters are slice-typed; every occurrence adds a value.
	Repeatable bool

	// Flag parameters are bool-typed options whose value is optional.
	Flag bool

	// Owner is the command that declares the parameter.
	Owner *Command
}

// Display returns the parameter as it appears in usage text: "--number"
// for options, "<PACKAGE_NAME>" or "[PROJECT]" for arguments.
func (p *Parameter) Display() string {
	if p.Kind == OptionParameter {
		return "--" + p.Name
	}
	if p.Required {
		return "<" + p.Name + ">"
	}
	return "[" + p.Name + "]"
}

// bindingName is the parameter's key in the binder's flag set. Argument
// names are bracketed so they never collide with option names.
func (p *Parameter) bindingName() string {
	return bindingName(p.Kind, p.Name)
}

func bindingName(kind ParameterKind, name string) string {
	if kind == ArgumentParameter {
		return "<" + name + ">"
	}
	return name
}

// taggedField is one settings struct field carrying a flag or arg tag.
type taggedField struct {
	kind         ParameterKind
	name         string
	shorthand    string
	required     bool
	description  string
	defaultValue string
	field        reflect.StructField
	value        reflect.Value
}

// walkTaggedFields collects the tagged fields of settings, which must be
// a pointer to a struct. Embedded structs are walked recursively in
// field order.
func walkTaggedFields(settings any) ([]taggedField, error) {
	value := reflect.ValueOf(settings)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("settings must be a pointer to a struct, got %T", settings)
	}
	var fields []taggedField
	if err := collectTaggedFields(value.Elem(), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func collectTaggedFields(structValue reflect.Value, fields *[]taggedField) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := collectTaggedFields(fieldValue, fields); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag, hasFlag := field.Tag.Lookup("flag")
		argTag, hasArg := field.Tag.Lookup("arg")
		if !hasFlag && !hasArg {
			continue
		}
		if hasFlag && hasArg {
			return fmt.Errorf("field %s: both flag and arg tags", field.Name)
		}
		if !field.IsExported() || !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not settable", field.Name)
		}
		if !supportedFieldType(field.Type) {
			return fmt.Errorf("field %s: unsupported type %s", field.Name, field.Type)
		}

		tagged := taggedField{
			description:  field.Tag.Get("desc"),
			defaultValue: field.Tag.Get("default"),
			field:        field,
			value:        fieldValue,
		}
		if hasFlag {
			tagged.kind = OptionParameter
			tagged.name, tagged.shorthand = parseFlagTag(flagTag)
			if tagged.name == "" || strings.HasPrefix(tagged.name, "-") {
				return fmt.Errorf("field %s: invalid flag name %q", field.Name, flagTag)
			}
			if len(tagged.shorthand) > 1 {
				return fmt.Errorf("field %s: shorthand %q must be one character", field.Name, tagged.shorthand)
			}
		} else {
			name, required, err := parseArgTag(argTag)
			if err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
			tagged.kind = ArgumentParameter
			tagged.name = name
			tagged.required = required
		}
		*fields = append(*fields, tagged)
	}

	return nil
}

// parseFlagTag splits "name" into ("name", "") and "name,n" into ("name", "n").
func parseFlagTag(tag string) (string, string) {
	name, shorthand, _ := strings.Cut(tag, ",")
	return name, shorthand
}

// parseArgTag accepts "<NAME>" (required) and "[NAME]" (optional).
func parseArgTag(tag string) (string, bool, error) {
	if len(tag) < 3 {
		return "", false, fmt.Errorf("invalid arg tag %q", tag)
	}
	name := tag[1 : len(tag)-1]
	if strings.ContainsAny(name, "<>[] ") {
		return "", false, fmt.Errorf("invalid arg tag %q", tag)
	}
	switch {
	case tag[0] == '<' && tag[len(tag)-1] == '>':
		return name, true, nil
	case tag[0] == '[' && tag[len(tag)-1] == ']':
		return name, false, nil
	default:
		return "", false, fmt.Errorf("invalid arg tag %q: want <NAME> or [NAME]", tag)
	}
}

var durationType = reflect.TypeFor[time.Duration]()

func supportedFieldType(fieldType reflect.Type) bool {
	if fieldType == durationType {
		return true
	}
	switch fieldType.Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return true
	case reflect.Slice:
		element := fieldType.Elem().Kind()
		return element == reflect.String || element == reflect.Int
	default:
		return false
	}
}

// deriveParameters builds the parameters command declares itself.
// Parameters already declared by an ancestor are inherited, and every
// inherited parameter must be present in the command's settings so a
// single value can receive the whole path.
func deriveParameters(command *Command) ([]*Parameter, error) {
	if command.Settings == nil {
		return nil, nil
	}
	fields, err := walkTaggedFields(command.Settings())
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", command.Path(), err)
	}

	inherited := make(map[string]*Parameter)
	for ancestor := command.parent; ancestor != nil; ancestor = ancestor.parent {
		for _, parameter := range ancestor.parameters {
			inherited[parameter.bindingName()] = parameter
		}
	}

	var parameters []*Parameter
	present := make(map[string]bool)
	shorthands := make(map[string]bool)
	for _, parameter := range inherited {
		if parameter.Shorthand != "" {
			shorthands[parameter.Shorthand] = true
		}
	}

	for _, field := range fields {
		key := bindingName(field.kind, field.name)
		if present[key] {
			return nil, fmt.Errorf("command %q: %s %q declared twice", command.Path(), field.kind, field.name)
		}
		present[key] = true
		if inherited[key] != nil {
			continue
		}
		if field.shorthand != "" {
			if shorthands[field.shorthand] {
				return nil, fmt.Errorf("command %q: shorthand -%s declared twice", command.Path(), field.shorthand)
			}
			shorthands[field.shorthand] = true
		}

		parameter := &Parameter{
			Kind:        field.kind,
			Name:        field.name,
			Shorthand:   field.shorthand,
			Description: field.description,
			Default:     field.defaultValue,
			Required:    field.required,
			Repeatable:  field.field.Type.Kind() == reflect.Slice,
			Flag:        field.field.Type.Kind() == reflect.Bool,
			Owner:       command,
		}
		parameter.ID = ParameterID(command.Path() + " " + parameter.Display())
		parameters = append(parameters, parameter)
	}

	for key, parameter := range inherited {
		if !present[key] {
			return nil, fmt.Errorf("command %q: settings do not include %s declared by %q",
				command.Path(), parameter.Display(), parameter.Owner.Path())
		}
	}

	if err := checkArgumentOrder(command, parameters); err != nil {
		return nil, err
	}
	return parameters, nil
}

// checkArgumentOrder assigns positions and rejects layouts the parser
// cannot fill unambiguously: a required argument after an optional one,
// or a repeatable argument that is not last.
func checkArgumentOrder(command *Command, parameters []*Parameter) error {
	position := 0
	var previous *Parameter
	for _, parameter := range parameters {
		if parameter.Kind != ArgumentParameter {
			continue
		}
		if previous != nil {
			if previous.Repeatable {
				return fmt.Errorf("command %q: repeatable argument %s must be last", command.Path(), previous.Display())
			}
			if parameter.Required && !previous.Required {
				return fmt.Errorf("command %q: required argument %s follows optional %s",
					command.Path(), parameter.Display(), previous.Display())
			}
		}
		parameter.Position = position
		position++
		previous = parameter
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// BindFlags registers pflag entries for each tagged field in settings.
// settings must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n": an option with a long name and an
//     optional single-character shorthand.
//   - arg:"<NAME>" or arg:"[NAME]": a required or optional positional
//     argument. Arguments fill in field order. They are registered in
//     the flag set as "<NAME>" and hidden from usage output.
//   - desc:"help text": the parameter's help description.
//   - default:"value": the default, parsed according to the field's Go
//     type. If omitted, the type's zero value is used.
//
// # Supported field types
//
// string, bool, int, int64, float64, [time.Duration], []string, []int.
// Slice fields collect one value per occurrence.
//
// Embedded struct fields are bound recursively, which is how a leaf's
// settings inherit the parameters of the branches above it.
func BindFlags(settings any, flagSet *pflag.FlagSet) error {
	fields, err := walkTaggedFields(settings)
	if err != nil {
		return err
	}
	for _, field := range fields {
		name := bindingName(field.kind, field.name)
		if flagSet.Lookup(name) != nil {
			return fmt.Errorf("field %s: %s %q already bound", field.field.Name, field.kind, field.name)
		}
		if err := bindField(field.value, flagSet, name, field.shorthand, field.description, field.defaultValue); err != nil {
			return fmt.Errorf("field %s: %w", field.field.Name, err)
		}
		if field.kind == ArgumentParameter {
			if err := flagSet.MarkHidden(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bind applies the values mapped in tree to settings. Values are applied
// from the root node to the leaf, in mapping order, so repeatable
// parameters accumulate and scalar parameters keep their last value.
// Unmapped parameters keep their defaults. Conversion failures and
// unmapped required arguments are collected into one *ValidationError.
func Bind(tree *CommandTree, settings any) error {
	if tree == nil {
		return nil
	}
	leaf := tree.Leaf()
	flagSet := pflag.NewFlagSet(leaf.Command.Path(), pflag.ContinueOnError)
	if err := BindFlags(settings, flagSet); err != nil {
		return fmt.Errorf("binding %q: %w", leaf.Command.Path(), err)
	}

	var problems []string
	for node := tree; node != nil; node = node.Next {
		for _, mapped := range node.Mapped {
			parameter := mapped.Parameter
			flag := flagSet.Lookup(parameter.bindingName())
			if flag == nil {
				return fmt.Errorf("binding %q: settings %T have no field for %s",
					leaf.Command.Path(), settings, parameter.Display())
			}
			for _, value := range mapped.Values {
				if err := flag.Value.Set(value); err != nil {
					problems = append(problems, fmt.Sprintf("invalid value %q for %s: %v",
						value, parameter.Display(), conversionCause(err)))
				}
			}
		}
		for _, parameter := range node.Unmapped {
			if parameter.Required {
				problems = append(problems, fmt.Sprintf("missing required argument %s", parameter.Display()))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Command: leaf.Command.Path(), Problems: problems}
	}
	return nil
}

// conversionCause strips strconv's function prefix from conversion errors
// so messages read "invalid syntax" instead of `strconv.ParseInt: ...`.
func conversionCause(err error) error {
	var numError *strconv.NumError
	if errors.As(err, &numError) {
		return numError.Err
	}
	return err
}

// bindField creates a pflag binding for a single struct field.
func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand, description, defaultString string) error {
	pointer := fieldValue.Addr().Interface()

	switch target := pointer.(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, defaultString, description)

	case *bool:
		defaultValue, err := parseBoolDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for %s: %w", name, err)
		}
		flagSet.BoolVarP(target, name, shorthand, defaultValue, description)

	case *int:
		defaultValue, err := parseIntDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for %s: %w", name, err)
		}
		flagSet.IntVarP(target, name, shorthand, defaultValue, description)

	case *int64:
		defaultValue, err := parseInt64Default(defaultString)
		if err != nil {
			return fmt.Errorf("default for %s: %w", name, err)
		}
		flagSet.Int64VarP(target, name, shorthand, defaultValue, description)

	case *float64:
		defaultValue, err := parseFloat64Default(defaultString)
		if err != nil {
			return fmt.Errorf("default for %s: %w", name, err)
		}
		flagSet.Float64VarP(target, name, shorthand, defaultValue, description)

	case *time.Duration:
		defaultValue, err := parseDurationDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for %s: %w", name, err)
		}
		flagSet.DurationVarP(target, name, shorthand, defaultValue, description)

	case *[]string:
		var defaultValue []string
		if defaultString != "" {
			defaultValue = strings.Split(defaultString, ",")
		}
		// StringArray keeps commas inside a single occurrence intact.
		flagSet.StringArrayVarP(target, name, shorthand, defaultValue, description)

	case *[]int:
		var defaultValue []int
		if defaultString != "" {
			for _, text := range strings.Split(defaultString, ",") {
				number, err := strconv.Atoi(strings.TrimSpace(text))
				if err != nil {
					return fmt.Errorf("default for %s: %w", name, err)
				}
				defaultValue = append(defaultValue, number)
			}
		}
		flagSet.IntSliceVarP(target, name, shorthand, defaultValue, description)

	default:
		return fmt.Errorf("unsupported type %s for %s", fieldValue.Type(), name)
	}

	return nil
}

func parseBoolDefault(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseIntDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseInt64Default(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat64Default(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseDurationDefault(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"unicode/utf8"
)

// ParsedResult is the outcome of parsing one token sequence.
type ParsedResult struct {
	// Tree is the selected command path, or nil when no command was
	// selected and the model has no default command.
	Tree *CommandTree

	// Remaining holds unknown options and the tokens after "--".
	Remaining RemainingArguments

	// ShowHelp is set when a help token appeared before any command.
	ShowHelp bool
}

// Parser maps token sequences onto a model. A Parser holds no state
// between calls and may be reused.
type Parser struct {
	model *Model
}

// NewParser returns a parser for a built model.
func NewParser(model *Model) *Parser {
	return &Parser{model: model}
}

// Parse maps tokens onto the model.
//
// Options are accepted as --name, --name=value, -n and -n=value, and
// single-dash groups of boolean shorthands (-abc). Boolean options take
// an optional following "true" or "false". An option is looked up at
// the current command and then at each ancestor. Options nobody
// declares are collected into Remaining keyed by their name without
// dashes; such an option takes its value from "=value" or from the next
// token when that token is neither an option nor a subcommand name.
//
// Required arguments are not enforced here: a partial tree is valid
// input for merging, and [Bind] reports what is still missing.
func (p *Parser) Parse(tokens []string) (ParsedResult, error) {
	state := &parseState{model: p.model, tokens: tokens}
	if err := state.run(); err != nil {
		return ParsedResult{}, err
	}
	if state.root == nil && !state.showHelp {
		state.activateDefault()
	}
	return ParsedResult{
		Tree:      state.root,
		Remaining: state.remaining,
		ShowHelp:  state.showHelp && state.root == nil,
	}, nil
}

type parseState struct {
	model     *Model
	tokens    []string
	position  int
	root      *CommandTree
	current   *CommandTree
	remaining RemainingArguments
	showHelp  bool
}

func (s *parseState) run() error {
	for s.position < len(s.tokens) {
		token := s.tokens[s.position]
		s.position++

		switch {
		case token == "--":
			s.remaining.raw = append(s.remaining.raw, s.tokens[s.position:]...)
			s.position = len(s.tokens)
		case isHelpToken(token):
			if s.current != nil {
				s.current.ShowHelp = true
			} else {
				s.showHelp = true
			}
		case strings.HasPrefix(token, "--") && isOptionToken(token):
			name, value, hasValue := strings.Cut(token[2:], "=")
			if err := s.option(token, name, false, value, hasValue); err != nil {
				return err
			}
		case isOptionToken(token):
			if err := s.shortOptions(token); err != nil {
				return err
			}
		default:
			if err := s.positional(token); err != nil {
				return err
			}
		}
	}
	return nil
}

func isHelpToken(token string) bool {
	return token == "-h" || token == "--help" || token == "-?"
}

func isBoolLiteral(token string) bool {
	return strings.EqualFold(token, "true") || strings.EqualFold(token, "false")
}

// shortOptions handles a single-dash token: one shorthand, or a group of
// boolean shorthands. Anything else is an unknown option.
func (s *parseState) shortOptions(token string) error {
	name, value, hasValue := strings.Cut(token[1:], "=")
	if utf8.RuneCountInString(name) == 1 || hasValue {
		return s.option(token, name, utf8.RuneCountInString(name) == 1, value, hasValue)
	}

	s.activateDefault()
	var group []*CommandTree
	var parameters []*Parameter
	for _, character := range name {
		parameter, node := s.findOption(string(character), true)
		if parameter == nil || !parameter.Flag {
			return s.option(token, name, false, "", false)
		}
		group = append(group, node)
		parameters = append(parameters, parameter)
	}
	for i, parameter := range parameters {
		group[i].mapValue(parameter, "true")
	}
	return nil
}

// option maps one option occurrence. token is the original input token,
// used in error messages.
func (s *parseState) option(token, name string, short bool, value string, hasValue bool) error {
	s.activateDefault()
	parameter, node := s.findOption(name, short)
	if parameter == nil {
		if !hasValue && s.position < len(s.tokens) && s.canBeValue(s.tokens[s.position]) {
			value = s.tokens[s.position]
			s.position++
		}
		s.remaining.add(name, value)
		return nil
	}

	if parameter.Flag {
		if !hasValue {
			value = "true"
			if s.position < len(s.tokens) && isBoolLiteral(s.tokens[s.position]) {
				value = s.tokens[s.position]
				s.position++
			}
		}
		node.mapValue(parameter, value)
		return nil
	}

	if !hasValue {
		if s.position >= len(s.tokens) || isOptionToken(s.tokens[s.position]) {
			return &ParseError{
				Command: node.Command.Path(),
				Token:   token,
				Message: "missing value for option",
			}
		}
		value = s.tokens[s.position]
		s.position++
	}
	node.mapValue(parameter, value)
	return nil
}

// findOption looks for an option at the current node and then at each
// ancestor, returning the parameter and the node that declares it.
func (s *parseState) findOption(name string, short bool) (*Parameter, *CommandTree) {
	for node := s.current; node != nil; node = node.Parent {
		if parameter := node.Command.option(name, short); parameter != nil {
			return parameter, node
		}
	}
	return nil, nil
}

// canBeValue reports whether token may serve as the value of an unknown
// option.
func (s *parseState) canBeValue(token string) bool {
	if isOptionToken(token) {
		return false
	}
	if s.current == nil {
		return findCommand(s.model.Commands, token) == nil
	}
	return s.current.Command.Subcommand(token) == nil
}

func (s *parseState) positional(token string) error {
	if s.current == nil {
		if command := findCommand(s.model.Commands, token); command != nil {
			s.push(command)
			return nil
		}
		if s.model.Default == nil {
			return &ParseError{
				Token:      token,
				Message:    "unknown command",
				Suggestion: suggestName(token, commandNames(s.model.Commands)),
			}
		}
		s.activateDefault()
	}

	if command := s.current.Command.Subcommand(token); command != nil {
		s.push(command)
		return nil
	}

	if argument := s.nextArgument(); argument != nil {
		s.current.mapValue(argument, token)
		return nil
	}

	if len(s.current.Command.Subcommands) > 0 {
		return &ParseError{
			Command:    s.current.Command.Path(),
			Token:      token,
			Message:    "unknown command",
			Suggestion: suggestName(token, commandNames(s.current.Command.Subcommands)),
		}
	}
	return &ParseError{
		Command: s.current.Command.Path(),
		Token:   token,
		Message: "unexpected argument",
	}
}

// nextArgument returns the first unfilled argument of the current
// command, or its last argument when that one is repeatable.
func (s *parseState) nextArgument() *Parameter {
	arguments := s.current.Command.arguments()
	for _, argument := range arguments {
		if !s.current.isMapped(argument) {
			return argument
		}
	}
	if len(arguments) > 0 && arguments[len(arguments)-1].Repeatable {
		return arguments[len(arguments)-1]
	}
	return nil
}

func (s *parseState) push(command *Command) {
	node := newTree(s.current, command)
	if s.current == nil {
		s.root = node
	} else {
		s.current.Next = node
	}
	s.current = node
}

// activateDefault selects the default command when no command has been
// selected yet.
func (s *parseState) activateDefault() {
	if s.current == nil && s.model.Default != nil {
		s.push(s.model.Default)
	}
}

// MFP  - Miulti-Function Printers and scanners toolkit
// argv - Argv parsing mini-library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Parameter -- a positional parameter definition.

package argv

import (
	"errors"
	"strings"
)

// Parameter defines a single positional parameter.
//
// Its Name encodes both cardinality and optionality:
//
//	"param"      - required, single value
//	"[param]"    - optional, single value
//	"param..."   - required, one or more values
//	"[param...]" - optional, zero or more values
//
// At most one Parameter in a Command may be repeated. Required
// Parameters may follow the repeated one; optional ones may not.
type Parameter struct {
	// Name is the parameter's name, as shown above.
	Name string

	// Help is a single-line description.
	Help string

	// Validate, if set, checks the parameter's value.
	Validate func(string) error

	// Completer, if set, supplies auto-completion candidates for
	// the parameter's value.
	Completer Completer
}

// verify checks that the Parameter is well-formed.
func (param *Parameter) verify() error {
	if param.trimmedName() == "" {
		return errors.New("missed parameter name")
	}
	return nil
}

// trimmedName strips the "[...]" optional-marker and "..." repeated-
// marker from param.Name, leaving the bare name.
func (param *Parameter) trimmedName() string {
	name := param.Name
	name = strings.TrimPrefix(name, "[")
	name = strings.TrimSuffix(name, "]")
	name = strings.TrimSuffix(name, "...")
	return name
}

// optional reports whether the parameter may be omitted.
func (param *Parameter) optional() bool {
	return strings.HasPrefix(param.Name, "[") && strings.HasSuffix(param.Name, "]")
}

// required reports whether the parameter must be supplied.
func (param *Parameter) required() bool {
	return !param.optional()
}

// repeated reports whether the parameter accepts more than one value.
func (param *Parameter) repeated() bool {
	name := strings.TrimSuffix(param.Name, "]")
	return strings.HasSuffix(name, "...")
}

// complete returns auto-completion candidates for arg, or nil if this
// Parameter has no Completer.
func (param *Parameter) complete(arg string) []string {
	if param.Completer == nil {
		return nil
	}
	compl, _ := param.Completer(arg)
	return compl
}

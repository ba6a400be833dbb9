// MFP  - Miulti-Function Printers and scanners toolkit
// argv - Argv parsing mini-library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Option -- a command option (flag) definition.

package argv

import "errors"

// Option defines a single command-line option (a.k.a. flag).
//
// An Option without Validate is a boolean flag that takes no value
// ("-v", "--verbose"); an Option with Validate expects an operand,
// either in the next argument or, for long options, after "=".
type Option struct {
	// Name is the option's primary spelling, e.g. "-n" or "--long".
	Name string

	// Aliases are additional spellings for the same option.
	Aliases []string

	// Help is a single-line description.
	Help string

	// Validate, if set, both marks this Option as taking a value and
	// checks that value. It must return nil for an acceptable value
	// or a descriptive error otherwise.
	Validate func(string) error

	// Complete, if set, supplies auto-completion candidates for
	// the option's value.
	Complete Completer

	// Conflicts lists option names that cannot appear together with
	// this one.
	Conflicts []string

	// Requires lists option names that must appear whenever this one
	// does.
	Requires []string
}

// verify checks that the Option is well-formed.
func (opt *Option) verify() error {
	if opt.Name == "" {
		return errors.New("missed option name")
	}
	return nil
}

// withValue reports whether this Option expects an operand.
func (opt *Option) withValue() bool {
	return opt.Validate != nil
}

// complete returns auto-completion candidates for arg, or nil if this
// Option has no Complete function.
func (opt *Option) complete(arg string) []string {
	if opt.Complete == nil {
		return nil
	}
	compl, _ := opt.Complete(arg)
	return compl
}

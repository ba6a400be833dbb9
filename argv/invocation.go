// MFP  - Miulti-Function Printers and scanners toolkit
// argv - Argv parsing mini-library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Invocation -- the result of parsing a Command's arguments.

package argv

// Invocation is the result of successfully parsing a Command's
// arguments: the resolved option and parameter values, and, if the
// Command defines sub-commands, the chosen sub-command and its
// remaining argv.
type Invocation struct {
	cmd     *Command
	parent  *Invocation
	argv    []string
	byName  map[string][]string
	subcmd  *Command
	subargv []string

	// immediate, if set, overrides cmd.Handler for this Invocation.
	// It exists so an Option (e.g. "--help") can short-circuit normal
	// command execution without the Command's own Handler needing to
	// know about it.
	immediate func(*Invocation) error
}

// Cmd returns the Command this Invocation was parsed against.
func (inv *Invocation) Cmd() *Command {
	return inv.cmd
}

// Parent returns the parent Invocation, for a sub-command, or nil for
// a top-level Invocation.
func (inv *Invocation) Parent() *Invocation {
	return inv.parent
}

// Argv returns the raw arguments this Invocation was parsed from,
// including the sub-command's own argv, if any.
func (inv *Invocation) Argv() []string {
	return inv.argv
}

// Values returns all values collected for the option or parameter
// named name, in the order they appeared on the command line. It
// returns nil if name never appeared.
func (inv *Invocation) Values(name string) []string {
	return inv.byName[name]
}

// Get returns the first value collected for the option or parameter
// named name, and whether it appeared at all.
func (inv *Invocation) Get(name string) (string, bool) {
	vals := inv.byName[name]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Present reports whether the option or parameter named name appeared
// on the command line.
func (inv *Invocation) Present(name string) bool {
	_, found := inv.byName[name]
	return found
}

// SubCommand returns the sub-command chosen by this Invocation and
// its remaining argv. It returns (nil, nil) if cmd has no
// sub-commands.
func (inv *Invocation) SubCommand() (*Command, []string) {
	return inv.subcmd, inv.subargv
}

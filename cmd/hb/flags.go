package main

import "github.com/spf13/pflag"

// anyFlagChanged reports whether the user set at least one of the
// named flags on the command line.
func anyFlagChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

package command

import (
	"flag"
	"strings"
)

// Args are the command line arguments following the command name.
type Args []string

func NewArgs(args []string) Args {
	return args[1:]
}

// Filter returns the arguments known to the given flag.FlagSet, including
// the values of non-boolean flags. Global and command flags share one
// argument list, so each set picks its own.
func (a Args) Filter(set *flag.FlagSet) Args {
	if set == nil {
		return a
	}
	var args Args
	for i, arg := range a {
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		name := strings.TrimPrefix(arg[1:], "-")
		inline := strings.Contains(name, "=")
		if inline {
			name = name[:strings.Index(name, "=")]
		}

		f := set.Lookup(name)
		if f == nil {
			continue
		}

		if inline || isBoolFlag(f) || len(a[i:]) == 1 {
			args = append(args, arg)
			continue
		}
		args = append(args, a[i:i+2]...)
	}
	return args
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

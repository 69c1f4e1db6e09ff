package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// SplitArgs separates flags from positional values. Region coordinates are often
// negative, so anything that parses as a number is positional even if it starts
// with a dash; "--" ends flag scanning.
func SplitArgs(fs *pflag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return flags, append(positional, args[i+1:]...)
		case len(a) < 2 || a[0] != '-' || isNumber(a):
			positional = append(positional, a)
		default:
			flags = append(flags, a)
			if !strings.Contains(a, "=") && takesValue(fs, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return flags, positional
}

func isNumber(s string) bool {
	if _, err := cast.ToFloat64E(s); err == nil {
		return true
	}
	_, err := cast.ToIntE(s)
	return err == nil
}

func takesValue(fs *pflag.FlagSet, arg string) bool {
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		f = fs.Lookup(arg[2:])
	case len(arg) == 2:
		f = fs.ShorthandLookup(arg[1:])
	}
	return f != nil && f.NoOptDefVal == ""
}

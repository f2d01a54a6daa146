// Package flagx lets several components parse their own flags from one
// argument list without tripping over each other's definitions.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-f value" and "-f=value" forms are recognized; a following
// token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPath returns the JSON config file given with -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

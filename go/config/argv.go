package config

import "github.com/lunixbochs/corntool/go/models"

// ResolveArgv picks the guest argv from either "-f file --args ..." or a bare
// positional remainder. Mixing the two, or giving neither, is a usage error.
func ResolveArgv(filename string, args, remainder []string) ([]string, error) {
	switch {
	case filename != "" && len(remainder) == 0:
		return append([]string{filename}, args...), nil
	case filename == "" && len(args) == 0 && len(remainder) > 0:
		return append([]string(nil), remainder...), nil
	}
	return nil, models.Usagef("run: give either -f FILE [--args ...] or a positional program and arguments, not both")
}

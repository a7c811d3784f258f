package models

import "fmt"

// UsageError is a command-line misuse: conflicting or insufficient options.
// It maps to the parser's usage exit status.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func Usagef(format string, a ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, a...)}
}

// ConfigError is a request that cannot be turned into a configuration,
// such as a payload format with no input source.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func Configf(format string, a ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, a...)}
}

// LookupError is an enumeration token that is not in its table.
type LookupError struct {
	Axis  string
	Token string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Axis, e.Token)
}

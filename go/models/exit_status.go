package models

import "fmt"

// ExitStatus is returned when a session terminates with a non-zero guest
// exit code. The top-level command exits with it unchanged.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit %d", e)
}

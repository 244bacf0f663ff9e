package environment

import (
	"fmt"

	roninErrors "github.com/roninagent/ronin/internal/errors"
)

// Environment provides shell execution and a working directory to a session.
// Implementations are stateful: Communicate may change the working directory
// and Cwd must reflect it.
type Environment interface {
	// Type returns the registry tag the environment was constructed from.
	Type() string

	// Communicate runs a shell command and returns its combined output and
	// exit code. A non-nil error means the command could not be run at all,
	// not that it exited non-zero.
	Communicate(command string) (string, int, error)

	// Cwd returns the current working directory.
	Cwd() string

	// Enter performs scoped setup before the first command.
	Enter() error

	// Exit tears the environment down.
	Exit() error
}

const TypeLocal = "local"

// New constructs an environment from its type tag. An unrecognized tag is the
// one fatal, non-recoverable condition in session construction.
func New(typeTag, path string) (Environment, error) {
	switch typeTag {
	case TypeLocal:
		return NewLocal(path)
	default:
		return nil, fmt.Errorf("%w: %q", roninErrors.ErrUnknownEnvironment, typeTag)
	}
}

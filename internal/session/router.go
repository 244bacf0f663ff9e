package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	roninErrors "github.com/roninagent/ronin/internal/errors"
)

// Router policy strings. Policy rejections are results, not failures.
const (
	MsgInteractiveNotAllowed = "Interactive Commands are not allowed"
	MsgBashFailed            = "Failed to execute bash command"
)

var interactivePrograms = map[string]bool{
	"vim":  true,
	"nano": true,
}

// Route dispatches one action string to a tool, the diff editor, or the
// shell fallback. Internally failures stay typed; here at the boundary every
// outcome resolves to a (text, done) pair and no error escapes to the step
// machine. Policy and shell failures map to their fixed messages.
func (s *Session) Route(action string) (string, bool) {
	output, err := s.dispatch(action)
	if err == nil {
		return output, false
	}

	switch {
	case errors.Is(err, roninErrors.ErrPolicy):
		return MsgInteractiveNotAllowed, false
	case errors.Is(err, roninErrors.ErrShellCommand):
		slog.Error("Failed to execute bash command", "session", s.id, "action", firstLine(action), "error", err)
		return MsgBashFailed, false
	}

	slog.Error("Action dispatch failed", "session", s.id, "action", firstLine(action), "error", err)
	return err.Error(), false
}

func (s *Session) dispatch(action string) (string, error) {
	fn, args, err := s.parseAction(action)
	if err != nil {
		return "", err
	}

	if interactivePrograms[fn] {
		return "", fmt.Errorf("%w: %s is interactive", roninErrors.ErrPolicy, fn)
	}

	// A multi-line python action would open an interactive interpreter
	// session; one-liners (python -c '...') are fine.
	if fn == "python" && countNonEmptyLines(action) != 1 {
		return "", fmt.Errorf("%w: multi-line python", roninErrors.ErrPolicy)
	}

	if fn == "edit_file" {
		// Always the dedicated diff routine, regardless of what is
		// registered under the name. Failures propagate after logging.
		output, err := s.applyDiff(s, action)
		if err != nil {
			slog.Error("Diff application failed", "session", s.id, "error", err)
			return "", err
		}
		return output, nil
	}

	if t, ok := s.registry.Get(fn); ok {
		output, err := t.Execute(s, args)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", roninErrors.ErrToolFailed, fn, err)
		}
		return output, nil
	}

	return s.shellFallback(fn, args)
}

// shellFallback treats an unregistered function name as a shell command.
// Zero exit returns the raw output unchanged.
func (s *Session) shellFallback(fn string, args []string) (string, error) {
	command := fn
	if len(args) > 0 {
		command = fn + " " + strings.Join(args, " ")
	}

	output, code, err := s.env.Communicate(command)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", roninErrors.ErrShellCommand, fn, err)
	}
	if code != 0 {
		return "", fmt.Errorf("%w: %s exited %d: %s", roninErrors.ErrShellCommand, fn, code, firstLine(output))
	}
	return output, nil
}

func countNonEmptyLines(s string) int {
	count := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

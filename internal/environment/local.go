package environment

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Local executes commands on the host through bash (or sh when bash is
// missing), anchored at a base path. The working directory is tracked here
// rather than in a persistent shell process, so `cd` is interpreted by the
// environment itself and replayed commands behave deterministically.
type Local struct {
	shellPath string
	basePath  string
	cwd       string
}

func NewLocal(path string) (*Local, error) {
	shellPath, err := exec.LookPath("bash")
	if err != nil {
		shellPath, err = exec.LookPath("sh")
		if err != nil {
			return nil, fmt.Errorf("shell not found: %w", err)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve base path: %w", err)
	}

	return &Local{
		shellPath: shellPath,
		basePath:  abs,
		cwd:       abs,
	}, nil
}

func (l *Local) Type() string {
	return TypeLocal
}

func (l *Local) Cwd() string {
	return l.cwd
}

func (l *Local) Enter() error {
	info, err := os.Stat(l.basePath)
	if err != nil {
		return fmt.Errorf("enter environment: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("enter environment: %s is not a directory", l.basePath)
	}
	return nil
}

func (l *Local) Exit() error {
	return nil
}

// Communicate runs one command in the tracked working directory. Bare `cd`
// invocations mutate the tracked directory instead of spawning a shell, which
// is what lets a restored session replay its snapshotted cwd.
func (l *Local) Communicate(command string) (string, int, error) {
	if target, ok := parseChdir(command); ok {
		return l.chdir(target)
	}

	cmd := exec.Command(l.shellPath, "-c", command)
	cmd.Dir = l.cwd
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String() + stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			slog.Debug("Command exited non-zero", "command", command, "code", exitErr.ExitCode())
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, fmt.Errorf("execute command: %w", err)
	}

	return output, 0, nil
}

func (l *Local) chdir(target string) (string, int, error) {
	next := target
	if !filepath.IsAbs(next) {
		next = filepath.Join(l.cwd, next)
	}
	next = filepath.Clean(next)

	info, err := os.Stat(next)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("cd: no such directory: %s", target), 1, nil
	}

	l.cwd = next
	return "", 0, nil
}

// parseChdir recognizes a plain `cd <dir>` command. Compound commands that
// happen to contain cd go to the shell untouched.
func parseChdir(command string) (string, bool) {
	trimmed := strings.TrimSpace(command)
	if !strings.HasPrefix(trimmed, "cd ") && trimmed != "cd" {
		return "", false
	}
	if strings.ContainsAny(trimmed, "|&;<>$`") {
		return "", false
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 1 {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		return home, true
	}
	if len(fields) != 2 {
		return "", false
	}
	return fields[1], true
}

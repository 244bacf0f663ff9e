// Package patch holds the default diff-application routine for edit_file
// actions. The session only knows the DiffApplier contract; hosts with their
// own patch pipeline inject a replacement.
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	roninErrors "github.com/roninagent/ronin/internal/errors"
	"github.com/roninagent/ronin/internal/tool"
)

// Apply parses a unified diff out of the raw edit_file action text and
// applies it to files resolved against the environment's working directory.
// It handles a single-file diff with one or more hunks; context lines are
// verified before anything is written.
func Apply(ctx tool.Context, rawAction string) (string, error) {
	diff := stripActionPrefix(rawAction)

	target, hunks, err := parse(diff)
	if err != nil {
		return "", err
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(ctx.Environment().Cwd(), target)
	}

	var lines []string
	if data, readErr := os.ReadFile(path); readErr == nil {
		lines = splitKeepingTrailing(string(data))
	} else if !os.IsNotExist(readErr) {
		return "", fmt.Errorf("read %s: %w", target, readErr)
	}

	for _, h := range hunks {
		lines, err = h.apply(lines)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", roninErrors.ErrToolFailed, target, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}

	return fmt.Sprintf("Applied %d hunk(s) to %s", len(hunks), target), nil
}

type hunk struct {
	oldStart int
	lines    []string // with leading ' ', '-', '+'
}

func (h hunk) apply(lines []string) ([]string, error) {
	// oldStart is 1-based; 0 means insertion into an empty file.
	idx := h.oldStart - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(lines) {
		return nil, fmt.Errorf("hunk start %d beyond end of file", h.oldStart)
	}

	out := append([]string{}, lines[:idx]...)
	pos := idx
	for _, l := range h.lines {
		if l == "" {
			l = " "
		}
		op, text := l[0], l[1:]
		switch op {
		case ' ':
			if pos >= len(lines) || lines[pos] != text {
				return nil, fmt.Errorf("context mismatch at line %d", pos+1)
			}
			out = append(out, text)
			pos++
		case '-':
			if pos >= len(lines) || lines[pos] != text {
				return nil, fmt.Errorf("deletion mismatch at line %d", pos+1)
			}
			pos++
		case '+':
			out = append(out, text)
		default:
			return nil, fmt.Errorf("unexpected hunk line %q", l)
		}
	}
	out = append(out, lines[pos:]...)
	return out, nil
}

func parse(diff string) (target string, hunks []hunk, err error) {
	var current *hunk
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "--- "):
			// Old-file header; the new-file header names the target.
		case strings.HasPrefix(line, "+++ "):
			target = normalizeHeaderPath(strings.TrimSpace(strings.TrimPrefix(line, "+++ ")))
		case strings.HasPrefix(line, "@@"):
			if current != nil {
				hunks = append(hunks, *current)
			}
			start, parseErr := parseHunkHeader(line)
			if parseErr != nil {
				return "", nil, parseErr
			}
			current = &hunk{oldStart: start}
		default:
			if current != nil && line != "" {
				current.lines = append(current.lines, line)
			}
		}
	}
	if current != nil {
		hunks = append(hunks, *current)
	}

	if target == "" || target == "/dev/null" {
		return "", nil, fmt.Errorf("%w: diff has no target file", roninErrors.ErrParse)
	}
	if len(hunks) == 0 {
		return "", nil, fmt.Errorf("%w: diff has no hunks", roninErrors.ErrParse)
	}
	return target, hunks, nil
}

// parseHunkHeader reads the old-file start line out of "@@ -l,c +l,c @@".
func parseHunkHeader(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.HasPrefix(fields[1], "-") {
		return 0, fmt.Errorf("%w: bad hunk header %q", roninErrors.ErrParse, line)
	}
	oldRange := strings.TrimPrefix(fields[1], "-")
	if i := strings.Index(oldRange, ","); i >= 0 {
		oldRange = oldRange[:i]
	}
	var start int
	if _, err := fmt.Sscanf(oldRange, "%d", &start); err != nil {
		return 0, fmt.Errorf("%w: bad hunk header %q", roninErrors.ErrParse, line)
	}
	return start, nil
}

func normalizeHeaderPath(p string) string {
	if p == "/dev/null" {
		return p
	}
	for _, prefix := range []string{"a/", "b/"} {
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix)
		}
	}
	return p
}

// stripActionPrefix drops the leading "edit_file" token so the applier sees
// only the diff body.
func stripActionPrefix(raw string) string {
	trimmed := strings.TrimLeft(raw, " \t\n")
	if strings.HasPrefix(trimmed, "edit_file") {
		trimmed = strings.TrimPrefix(trimmed, "edit_file")
		trimmed = strings.TrimLeft(trimmed, " \t\n")
	}
	return trimmed
}

func splitKeepingTrailing(s string) []string {
	return strings.Split(s, "\n")
}

package agent

import (
	"fmt"
	"strings"

	roninErrors "github.com/roninagent/ronin/internal/errors"

	"github.com/google/shlex"
)

const (
	thoughtOpen  = "<THOUGHT>"
	thoughtClose = "</THOUGHT>"
	actionOpen   = "<ACTION>"
	actionClose  = "</ACTION>"
)

// ParseResponse splits raw model output into (thought, action). The action
// block is mandatory; a response without one is malformed.
func ParseResponse(raw string) (thought, action string, err error) {
	thought = between(raw, thoughtOpen, thoughtClose)

	action = between(raw, actionOpen, actionClose)
	if action == "" {
		return "", "", fmt.Errorf("%w: missing %s block", roninErrors.ErrParse, actionOpen)
	}
	return strings.TrimSpace(thought), strings.TrimSpace(action), nil
}

// ParseAction tokenizes action text into a function name and positional
// arguments. edit_file actions carry a free-form diff payload, so only their
// leading token is inspected; everything else goes through shlex so quoted
// arguments survive intact.
func ParseAction(action string) (fn string, args []string, err error) {
	trimmed := strings.TrimSpace(action)
	if trimmed == "" {
		return "", nil, fmt.Errorf("%w: empty action", roninErrors.ErrParse)
	}

	if first := firstToken(trimmed); first == "edit_file" {
		return first, nil, nil
	}

	parts, splitErr := shlex.Split(trimmed)
	if splitErr != nil {
		return "", nil, fmt.Errorf("%w: %v", roninErrors.ErrParse, splitErr)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: empty action", roninErrors.ErrParse)
	}
	return parts[0], parts[1:], nil
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func between(s, openTag, closeTag string) string {
	start := strings.Index(s, openTag)
	if start < 0 {
		return ""
	}
	rest := s[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

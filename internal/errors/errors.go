package errors

import (
	"errors"
)

// Sentinel errors for the dispatch failure taxonomy. The command router maps
// every one of these to a plain (text, done=false) result; nothing below
// crosses the router boundary as a raised error.
var (
	// ErrParse - action text could not be tokenized
	ErrParse = errors.New("malformed action")

	// ErrPolicy - action rejected by policy (interactive program, multi-line interpreter)
	ErrPolicy = errors.New("policy rejection")

	// ErrToolFailed - a registered tool returned an error
	ErrToolFailed = errors.New("tool execution failed")

	// ErrShellCommand - shell fallback exited non-zero
	ErrShellCommand = errors.New("shell command failed")

	// ErrRestore - snapshot is malformed or references unknown components
	ErrRestore = errors.New("restore mismatch")

	// ErrUnknownEnvironment - unrecognized environment type tag at session
	// construction. The single fatal condition: construction must abort.
	ErrUnknownEnvironment = errors.New("unknown environment type")

	// ErrDuplicateTool - two tools registered under the same name
	ErrDuplicateTool = errors.New("duplicate tool name")
)

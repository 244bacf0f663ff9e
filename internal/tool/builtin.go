package tool

import (
	"strings"
)

// Builtins returns the default capability set registered on every session.
// Filesystem navigation tools live with the host application; these are the
// session-control capabilities the step machine and router rely on by name.
func Builtins() []Tool {
	return []Tool{
		&NoOp{},
		&GetCwd{},
		&AskUser{},
		&Submit{},
		&ExitTask{},
	}
}

// NoOp lets the agent explicitly take no action for a step.
type NoOp struct{}

func (t *NoOp) Name() string        { return "no_op" }
func (t *NoOp) Signature() string   { return "no_op" }
func (t *NoOp) Description() string { return "Do nothing. Use when no action is needed this step." }
func (t *NoOp) Execute(_ Context, _ []string) (string, error) {
	return "No operation performed", nil
}

// GetCwd reports the environment's working directory.
type GetCwd struct{}

func (t *GetCwd) Name() string        { return "get_cwd" }
func (t *GetCwd) Signature() string   { return "get_cwd" }
func (t *GetCwd) Description() string { return "Print the current working directory." }
func (t *GetCwd) Execute(ctx Context, _ []string) (string, error) {
	return ctx.Environment().Cwd(), nil
}

// AskUser relays a question to the human operator. The step machine
// intercepts the ask_user marker before dispatch, so direct execution only
// happens when the agent calls it with the question as arguments.
type AskUser struct{}

func (t *AskUser) Name() string      { return "ask_user" }
func (t *AskUser) Signature() string { return `ask_user "<question>"` }
func (t *AskUser) Description() string {
	return "Ask the user a question and wait for their reply."
}
func (t *AskUser) Execute(_ Context, args []string) (string, error) {
	return strings.Join(args, " "), nil
}

// Submit marks the task as complete.
type Submit struct{}

func (t *Submit) Name() string        { return "submit" }
func (t *Submit) Signature() string   { return "submit" }
func (t *Submit) Description() string { return "Submit the finished task." }
func (t *Submit) Execute(_ Context, _ []string) (string, error) {
	return "Submitted task", nil
}

// ExitTask abandons the task.
type ExitTask struct{}

func (t *ExitTask) Name() string        { return "exit" }
func (t *ExitTask) Signature() string   { return "exit" }
func (t *ExitTask) Description() string { return "Exit the task without submitting." }
func (t *ExitTask) Execute(_ Context, _ []string) (string, error) {
	return "Exited task", nil
}

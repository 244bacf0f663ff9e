// Package session orchestrates a single autonomous task-execution session:
// an append-only event log, the step machine that turns each event into the
// next action, and the router that dispatches agent actions to tools, the
// diff editor, or the shell.
package session

import (
	"fmt"
	"log/slog"

	"github.com/roninagent/ronin/internal/agent"
	"github.com/roninagent/ronin/internal/environment"
	"github.com/roninagent/ronin/internal/event"
	"github.com/roninagent/ronin/internal/patch"
	"github.com/roninagent/ronin/internal/tool"

	"github.com/oklog/ulid/v2"
)

// DefaultMaxSteps bounds how many events one StepEvent call may process. The
// original recursed without limit; a runaway cascade is now a visible result
// instead of call-stack growth. 0 disables the bound.
const DefaultMaxSteps = 100

// Arguments is everything a session needs besides the agent itself.
type Arguments struct {
	Path        string
	Environment string
	UserInput   agent.InputSource
}

// Session owns the event log, the environment, the tool registry, and the
// state bag for one task. It is single-threaded: the caller drives it one
// step at a time and nothing here is safe for concurrent use.
type Session struct {
	id       string
	path     string
	envType  string
	env      environment.Environment
	agent    agent.Agent
	registry *tool.Registry
	log      *event.Log
	state    *State
	input    agent.InputSource

	parseAction func(string) (string, []string, error)
	applyDiff   agent.DiffApplier
	maxSteps    int
	extraTools  []tool.Tool
}

// Option adjusts session construction.
type Option func(*Session)

// WithTools appends host capabilities after the builtin set.
func WithTools(tools ...tool.Tool) Option {
	return func(s *Session) {
		s.extraTools = append(s.extraTools, tools...)
	}
}

// WithDiffApplier swaps the diff-application routine used for edit_file.
func WithDiffApplier(apply agent.DiffApplier) Option {
	return func(s *Session) { s.applyDiff = apply }
}

// WithActionParser swaps the action tokenizer.
func WithActionParser(parse func(string) (string, []string, error)) Option {
	return func(s *Session) { s.parseAction = parse }
}

// WithMaxSteps sets the per-call step bound; 0 means unlimited.
func WithMaxSteps(n int) Option {
	return func(s *Session) { s.maxSteps = n }
}

// WithEnvironment bypasses the type-tag factory with a pre-built
// environment. Hosts use it to run sessions against custom backends.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Session) { s.env = env }
}

// New constructs a session. An unrecognized environment type aborts
// construction; every other failure mode downstream degrades to text in the
// event log.
func New(args Arguments, ag agent.Agent, opts ...Option) (*Session, error) {
	s := &Session{
		id:          ulid.Make().String(),
		path:        args.Path,
		envType:     args.Environment,
		agent:       ag,
		log:         event.NewLog(),
		state:       NewState(),
		input:       args.UserInput,
		parseAction: agent.ParseAction,
		applyDiff:   patch.Apply,
		maxSteps:    DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.env == nil {
		env, err := environment.New(args.Environment, args.Path)
		if err != nil {
			return nil, fmt.Errorf("session construction: %w", err)
		}
		s.env = env
	}

	registry, err := tool.NewRegistry(append(tool.Builtins(), s.extraTools...)...)
	if err != nil {
		return nil, fmt.Errorf("session construction: %w", err)
	}
	s.registry = registry

	slog.Debug("Session created", "session", s.id, "environment", args.Environment, "path", args.Path)
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Path() string { return s.path }

// Environment and PageSize satisfy tool.Context.
func (s *Session) Environment() environment.Environment { return s.env }

func (s *Session) PageSize() int { return s.state.PageSize }

func (s *Session) State() *State { return s.state }

func (s *Session) Log() *event.Log { return s.log }

// AvailableActions lists the registered capability names in order.
func (s *Session) AvailableActions() []string {
	return s.registry.Names()
}

// CommandDocs returns name -> {signature, docstring} for prompt construction.
func (s *Session) CommandDocs() map[string]tool.Doc {
	return s.registry.Docs()
}

// SubmitTask appends the initial Task event.
func (s *Session) SubmitTask(content string) {
	s.log.Append(event.New(event.TypeTask, content, "user"))
}

// Interrupt injects an interrupt into the timeline; the step machine relays
// it to the agent with the interrupt notice.
func (s *Session) Interrupt(message string) {
	s.log.Append(event.New(event.TypeInterrupt, message, "user"))
}

// Enter performs scoped environment setup.
func (s *Session) Enter() error { return s.env.Enter() }

// Exit tears the environment down.
func (s *Session) Exit() error { return s.env.Exit() }

func (s *Session) agentName() string {
	if id := s.agent.Identity(); id != nil {
		return id.Name
	}
	return ""
}

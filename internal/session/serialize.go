package session

import (
	"fmt"

	"github.com/roninagent/ronin/internal/agent"
	roninErrors "github.com/roninagent/ronin/internal/errors"
	"github.com/roninagent/ronin/internal/event"
)

// Snapshot is the persisted/transport form of a session. Agent chat history
// rides along as an opaque blob; cwd is queried live at snapshot time and
// replayed through the environment on restore.
type Snapshot struct {
	Path         string         `json:"path"`
	Environment  string         `json:"environment"`
	EventHistory []event.Event  `json:"event_history"`
	State        *State         `json:"state"`
	Cwd          string         `json:"cwd"`
	Agent        agent.Identity `json:"agent"`
}

// Snapshot captures everything needed to reconstruct the session later.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Path:         s.path,
		Environment:  s.envType,
		EventHistory: s.log.Events(),
		State:        s.state,
		Cwd:          s.env.Cwd(),
	}
	if id := s.agent.Identity(); id != nil {
		snap.Agent = *id
	}
	return snap
}

// Restore reconstructs a session from a snapshot through normal construction
// (which re-creates the environment from the type tag and path), then
// overwrites state, event log, and agent identity, and replays the
// snapshotted cwd into the fresh environment. The input source and agent are
// live values a snapshot cannot carry, so the caller supplies them again.
func Restore(snap Snapshot, ag agent.Agent, userInput agent.InputSource, opts ...Option) (*Session, error) {
	if snap.Environment == "" || snap.Path == "" {
		return nil, fmt.Errorf("%w: snapshot missing environment or path", roninErrors.ErrRestore)
	}

	s, err := New(Arguments{
		Path:        snap.Path,
		Environment: snap.Environment,
		UserInput:   userInput,
	}, ag, opts...)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	if snap.State != nil {
		s.state = snap.State
		s.state.normalize()
	}
	s.log.Replace(snap.EventHistory)

	if id := ag.Identity(); id != nil {
		*id = snap.Agent
	}

	// The fresh environment starts at the base path; the snapshotted cwd is
	// re-established the same way the agent would have reached it.
	if snap.Cwd != "" && snap.Cwd != s.env.Cwd() {
		if _, code, err := s.env.Communicate("cd " + snap.Cwd); err != nil || code != 0 {
			return nil, fmt.Errorf("%w: replay cwd %q", roninErrors.ErrRestore, snap.Cwd)
		}
	}

	return s, nil
}

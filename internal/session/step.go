package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/roninagent/ronin/internal/agent"
	"github.com/roninagent/ronin/internal/event"
)

// Fixed transition strings. These are part of the observable contract: hosts
// and the agent both see them verbatim.
const (
	MsgNoMoreEvents    = "No more events to process"
	MsgStopped         = "Stopped task"
	MsgNoUserInput     = "No user input provided"
	MsgStepLimit       = "Step limit reached, no terminal event produced"
	fallbackTask       = "Task unspecified ask user to specify task"
	interruptNotice    = "You have been interrupted, pay attention to this message "
	askUserMarker      = "ask_user"
	identifierUser     = "user"
)

// StepEvent drains the event log: it processes the event under the cursor,
// appends whatever the transition produces, advances, and keeps going until
// a terminal result, log exhaustion, or the step bound. done=true means the
// session reached a terminal state.
func (s *Session) StepEvent(ctx context.Context) (string, bool) {
	steps := 0
	for {
		if s.maxSteps > 0 && steps >= s.maxSteps {
			slog.Warn("Step limit reached", "session", s.id, "steps", steps)
			return MsgStepLimit, false
		}

		ev, ok := s.log.Current()
		if !ok {
			return MsgNoMoreEvents, true
		}
		slog.Info("Processing event", "session", s.id, "type", ev.Type, "id", ev.ID)

		switch ev.Type {
		case event.TypeStop:
			return MsgStopped, true

		case event.TypeTask:
			s.stepTask(ctx, ev)

		case event.TypeModelResponse:
			s.stepModelResponse(ev)

		case event.TypeToolResponse:
			s.stepToolResponse(ctx, ev)

		case event.TypeUserRequest:
			input, ok := s.readUserInput()
			if !ok {
				slog.Info("No user input provided", "session", s.id)
				s.log.Append(event.New(event.TypeStop, MsgNoUserInput, ""))
				return MsgNoUserInput, true
			}
			s.log.Append(event.New(event.TypeToolResponse, input, identifierUser))

		case event.TypeInterrupt:
			s.stepInterrupt(ctx, ev)

		default:
			slog.Warn("Skipping event of unknown type", "session", s.id, "type", ev.Type)
		}

		s.log.Advance()
		steps++
	}
}

// stepTask makes the first prediction for a task with an empty observation.
func (s *Session) stepTask(ctx context.Context, ev event.Event) {
	task := ev.Content
	if task == "" {
		task = fallbackTask
	}
	s.predict(ctx, task, "")
}

// stepModelResponse parses the model output and branches: user request, stop,
// or dispatch through the router.
func (s *Session) stepModelResponse(ev event.Event) {
	_, action, err := agent.ParseResponse(ev.Content)
	if err != nil {
		// Malformed model output degrades to a tool response carrying the
		// failure; the next prediction sees it and can recover.
		slog.Error("Failed to parse model response", "session", s.id, "error", err)
		s.log.Append(event.New(event.TypeToolResponse, err.Error(), s.env.Type()))
		return
	}

	if strings.Contains(action, askUserMarker) {
		question := strings.SplitN(action, askUserMarker, 2)[1]
		s.log.Append(event.New(event.TypeUserRequest, strings.TrimSpace(question), s.agentName()))
		return
	}

	switch strings.TrimSpace(action) {
	case "exit", "stop", "submit":
		s.log.Append(event.New(event.TypeStop, MsgStopped, s.agentName()))
		return
	}

	output, _ := s.Route(action)
	s.log.Append(event.New(event.TypeToolResponse, output, s.env.Type()))
}

// stepToolResponse feeds an observation back to the agent against the most
// recent task.
func (s *Session) stepToolResponse(ctx context.Context, ev event.Event) {
	s.predict(ctx, s.currentTask(), ev.Content)
}

// stepInterrupt relays an interrupt to the agent as an observation with the
// fixed notice prefix.
func (s *Session) stepInterrupt(ctx context.Context, ev event.Event) {
	s.predict(ctx, s.currentTask(), interruptNotice+ev.Content)
}

// predict calls the agent and appends the raw output as a ModelResponse. A
// prediction failure is recorded as a ToolResponse instead of raised: the
// event log stays the single source of truth and judgment is deferred to the
// next step.
func (s *Session) predict(ctx context.Context, task, observation string) {
	prediction, err := s.agent.Predict(ctx, task, observation, s)
	if err != nil {
		slog.Error("Prediction failed", "session", s.id, "error", err)
		s.log.Append(event.New(event.TypeToolResponse, err.Error(), s.env.Type()))
		return
	}
	s.log.Append(event.New(event.TypeModelResponse, prediction.Raw, s.agentName()))
}

func (s *Session) currentTask() string {
	if task, ok := s.log.MostRecentOfType(event.TypeTask); ok && task.Content != "" {
		return task.Content
	}
	return fallbackTask
}

func (s *Session) readUserInput() (string, bool) {
	if s.input == nil {
		return "", false
	}
	return s.input()
}

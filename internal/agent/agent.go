package agent

import (
	"context"

	"github.com/roninagent/ronin/internal/tool"
)

// Message is one entry of the agent's chat history. The core treats history
// as an opaque blob; this shape exists so snapshots can round-trip it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Identity is the serializable part of an agent: who it is and what it has
// said so far.
type Identity struct {
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	Temperature float32   `json:"temperature"`
	ChatHistory []Message `json:"chat_history"`
}

// Prediction is the outcome of one model call: the parsed thought/action pair
// and the raw text it was parsed from. The raw text is what gets logged.
type Prediction struct {
	Thought string
	Action  string
	Raw     string
}

// SessionInfo is what a prediction may read from the owning session without
// the agent package depending on it.
type SessionInfo interface {
	AvailableActions() []string
	CommandDocs() map[string]tool.Doc
}

// Agent is the external decision-maker turning (task, observation) into the
// next action. Error behavior is the caller's responsibility.
type Agent interface {
	Identity() *Identity
	Predict(ctx context.Context, task, observation string, info SessionInfo) (Prediction, error)
}

// InputSource is a blocking user-input retrieval call. ok=false is the
// end-of-input sentinel: the user is gone and the session must stop.
type InputSource func() (input string, ok bool)

// DiffApplier is the external diff-application contract for edit_file
// actions; the raw action text carries the diff in its own format.
type DiffApplier func(ctx tool.Context, rawAction string) (string, error)

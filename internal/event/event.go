package event

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeTask          Type = "Task"
	TypeModelResponse Type = "ModelResponse"
	TypeToolResponse  Type = "ToolResponse"
	TypeUserRequest   Type = "UserRequest"
	TypeInterrupt     Type = "Interrupt"
	TypeStop          Type = "Stop"
)

// Event is one immutable record in the session timeline. Identifier names the
// producer (agent name, environment type, "user"); it is empty when the
// producer is unknown, e.g. a Stop appended after the input source closed.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"ts"`
	Type       Type      `json:"type"`
	Content    string    `json:"content"`
	Identifier string    `json:"identifier,omitempty"`
}

// New stamps a ULID and timestamp onto a fresh event. ULIDs are monotonic
// enough for audit ordering within a single-threaded session.
func New(t Type, content, identifier string) Event {
	return Event{
		ID:         ulid.Make().String(),
		Timestamp:  time.Now(),
		Type:       t,
		Content:    content,
		Identifier: identifier,
	}
}

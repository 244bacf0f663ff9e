package event

// Log is the append-only ordered history of a session. Events are never
// mutated or removed; the cursor marks the next unprocessed event and only
// moves forward. Invariant: 0 <= cursor <= len(events).
type Log struct {
	events []Event
	cursor int
}

func NewLog() *Log {
	return &Log{}
}

// Append adds an event to the tail.
func (l *Log) Append(e Event) {
	l.events = append(l.events, e)
}

// Len returns the number of events appended so far.
func (l *Log) Len() int {
	return len(l.events)
}

// Cursor returns the index of the next unprocessed event.
func (l *Log) Cursor() int {
	return l.cursor
}

// Advance moves the cursor past the current event. It is a no-op once the
// cursor has reached the tail.
func (l *Log) Advance() {
	if l.cursor < len(l.events) {
		l.cursor++
	}
}

// Exhausted reports whether every appended event has been processed.
func (l *Log) Exhausted() bool {
	return l.cursor == len(l.events)
}

// Current returns the event under the cursor.
func (l *Log) Current() (Event, bool) {
	if l.cursor >= len(l.events) {
		return Event{}, false
	}
	return l.events[l.cursor], true
}

// At returns the event at index i.
func (l *Log) At(i int) (Event, bool) {
	if i < 0 || i >= len(l.events) {
		return Event{}, false
	}
	return l.events[i], true
}

// MostRecentOfType scans backward from the tail for the latest event of the
// given type. Used to recover the current task context for predictions.
func (l *Log) MostRecentOfType(t Type) (Event, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Type == t {
			return l.events[i], true
		}
	}
	return Event{}, false
}

// Events returns a copy of the full history.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Replace swaps in a restored history and resets the cursor to the head so a
// resumed session re-walks the log. Only the serializer calls this.
func (l *Log) Replace(events []Event) {
	l.events = make([]Event, len(events))
	copy(l.events, events)
	l.cursor = 0
}

// SetCursor restores a persisted cursor position, clamped to the log bounds.
func (l *Log) SetCursor(cursor int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(l.events) {
		cursor = len(l.events)
	}
	l.cursor = cursor
}

package session

// DefaultPageSize is the number of lines a file viewer tool shows per page.
const DefaultPageSize = 200

// EditorFile is the per-file viewer state a tool may maintain: which page the
// agent is looking at and the rendered content of that page.
type EditorFile struct {
	Offset  int    `json:"offset"`
	Content string `json:"content,omitempty"`
}

// State is the session's mutable configuration bag. It replaces the original
// free-form nested map with named fields plus one typed mapping for the
// editor subsystem.
type State struct {
	PageSize int                    `json:"page_size"`
	Editor   map[string]*EditorFile `json:"editor"`
}

func NewState() *State {
	return &State{
		PageSize: DefaultPageSize,
		Editor:   make(map[string]*EditorFile),
	}
}

// normalize repairs a state decoded from a snapshot so lookups never hit a
// nil map or a zero page size.
func (s *State) normalize() {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.Editor == nil {
		s.Editor = make(map[string]*EditorFile)
	}
}

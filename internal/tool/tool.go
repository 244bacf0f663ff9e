package tool

import (
	"fmt"
	"strings"

	"github.com/roninagent/ronin/internal/environment"
	roninErrors "github.com/roninagent/ronin/internal/errors"
)

// Context is the view of the owning session a tool may touch. The session
// satisfies it structurally; tools needing more can type-assert to richer
// interfaces they define themselves.
type Context interface {
	Environment() environment.Environment
	PageSize() int
}

// Tool is a named capability invoked through the command router with
// positional string arguments.
type Tool interface {
	Name() string
	Description() string
	Signature() string
	Execute(ctx Context, args []string) (string, error)
}

// Registry is the closed, ordered set of capabilities fixed at session
// construction. Names are validated unique up front; lookup is by name and
// iteration preserves registration order.
type Registry struct {
	ordered []Tool
	byName  map[string]Tool
}

func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]Tool, len(tools)),
	}
	for _, t := range tools {
		name := strings.TrimSpace(t.Name())
		if name == "" {
			return nil, fmt.Errorf("%w: empty tool name", roninErrors.ErrDuplicateTool)
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("%w: %s", roninErrors.ErrDuplicateTool, name)
		}
		r.byName[name] = t
		r.ordered = append(r.ordered, t)
	}
	return r, nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[strings.TrimSpace(name)]
	return t, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, t := range r.ordered {
		names = append(names, t.Name())
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.ordered)
}

// Doc describes one capability for prompt construction.
type Doc struct {
	Signature   string `json:"signature"`
	Description string `json:"docstring"`
}

// Docs returns name -> {signature, docstring} for every registered tool.
func (r *Registry) Docs() map[string]Doc {
	docs := make(map[string]Doc, len(r.ordered))
	for _, t := range r.ordered {
		docs[t.Name()] = Doc{
			Signature:   t.Signature(),
			Description: t.Description(),
		}
	}
	return docs
}

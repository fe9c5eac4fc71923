package lint

import (
	"sort"

	"github.com/quillcheck/quill/errors"
)

// Handler applies one check to one line, returning the (possibly annotated)
// line. Handlers must treat the input as immutable and attach findings via
// Line.WithIssue.
type Handler func(Line, Check) Line

// Registry maps check kinds to handlers. It is built once at startup and
// read-only afterwards; Resolve is a pure lookup safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a check kind, replacing any previous binding.
func (r *Registry) Register(kind string, handler Handler) {
	r.handlers[kind] = handler
}

// Resolve returns the handler for a kind. An unregistered kind is a
// configuration error: the caller must abort before processing any line,
// since proceeding would silently skip a requested rule.
func (r *Registry) Resolve(kind string) (Handler, error) {
	handler, ok := r.handlers[kind]
	if !ok {
		return nil, errors.NewUnknownCheckKindError(kind)
	}
	return handler, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

package action

import (
	"context"
	"fmt"
	"sort"
)

// Names of the dashboard actions, shared by key bindings and CLI
// subcommands.
const (
	LoadRegion      = "load-region"
	LoadNational    = "load-national"
	PostComment     = "post-comment"
	RefreshComments = "refresh-comments"
	RunEDA          = "run-eda"
	RunForecast     = "run-forecast"
)

// Func runs one user-triggerable action to completion. The error it returns
// has already been reported to the user.
type Func func(ctx context.Context) error

// Registry keeps a mapping from action names to their implementations.
type Registry struct {
	actions map[string]Func
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: map[string]Func{}}
}

// Register adds or replaces an action implementation.
func (r *Registry) Register(name string, fn Func) {
	if r.actions == nil {
		r.actions = map[string]Func{}
	}
	r.actions[name] = fn
}

// Resolve returns an action by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Func, error) {
	if fn, ok := r.actions[name]; ok && fn != nil {
		return fn, nil
	}
	return nil, fmt.Errorf("action %s is not registered", name)
}

// Names lists registered actions in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package selector tracks per-cycle rendering state: which AST nodes a
// Renderer has already emitted, which item refs have been claimed by an
// earlier scope, and the widget handles a Collector later reads back.
// State is single-threaded; callers must not mutate it concurrently.
package selector

import "sync"

// WidgetHandle is an opaque reference to a rendered widget, owned by
// whatever View implementation built it. The core never inspects it.
type WidgetHandle any

// Scope is one class-or-background rendering cycle's bookkeeping.
type Scope struct {
	Name string

	rendered map[string]bool
	widgets  map[string]WidgetHandle
	order    []string // insertion order, so Collector walks deterministically
}

func newScope(name string) *Scope {
	return &Scope{
		Name:     name,
		rendered: make(map[string]bool),
		widgets:  make(map[string]WidgetHandle),
	}
}

// IsRendered reports whether nodeId has already been emitted in this
// scope, so recursive composition does not double-render a node.
func (s *Scope) IsRendered(nodeID string) bool {
	return s.rendered[nodeID]
}

// MarkRendered records nodeId as emitted.
func (s *Scope) MarkRendered(nodeID string) {
	s.rendered[nodeID] = true
}

// RegisterWidget binds a nodeId to its View-owned handle, in the order
// widgets are created — Collector walks this order when it reconstructs
// item records.
func (s *Scope) RegisterWidget(nodeID string, handle WidgetHandle) {
	if _, exists := s.widgets[nodeID]; !exists {
		s.order = append(s.order, nodeID)
	}
	s.widgets[nodeID] = handle
}

// WidgetFor returns the handle registered for nodeId, or nil if none.
func (s *Scope) WidgetFor(nodeID string) WidgetHandle {
	return s.widgets[nodeID]
}

// WidgetOrder returns node ids in registration order.
func (s *Scope) WidgetOrder() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// State is the full per-cycle bookkeeping shared across the class and
// background scopes. claimedItemRefs is process-wide within one cycle —
// it implements the "background cannot re-grant a ref the class already
// grants" cross-scope policy from the Renderer.
type State struct {
	mu      sync.Mutex
	scopes  map[string]*Scope
	claimed map[string]bool
}

// New returns an empty selector State for one initialize()->collect() cycle.
func New() *State {
	return &State{
		scopes:  make(map[string]*Scope),
		claimed: make(map[string]bool),
	}
}

// BeginScope creates (or returns the existing) scope named name.
func (st *State) BeginScope(name string) *Scope {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.scopes[name]; ok {
		return s
	}
	s := newScope(name)
	st.scopes[name] = s
	return s
}

// EndScope is a no-op hook kept for symmetry with BeginScope and to give
// a future View implementation an explicit teardown point per scope.
func (st *State) EndScope(name string) {}

// Scope returns a previously begun scope, or nil.
func (st *State) Scope(name string) *Scope {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.scopes[name]
}

// Claim marks ref as claimed by the current scope's render. It returns
// false if some earlier scope already claimed the same ref this cycle,
// signaling the Renderer to elide a mandatory duplicate.
func (st *State) Claim(ref string) bool {
	if ref == "" {
		return true
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.claimed[ref] {
		return false
	}
	st.claimed[ref] = true
	return true
}

// Reset drops every scope, widget handle and claimed ref, returning the
// state to empty. Core does not call it: each Core.Initialize builds a
// fresh State instead.
func (st *State) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.scopes = make(map[string]*Scope)
	st.claimed = make(map[string]bool)
}

// Package collector reconstructs the list of chosen item records from a
// rendered Widget tree's post-interaction state. It never touches the
// AST; it reads back through the same widget handles Renderer.Bind
// created.
package collector

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/renderer"
	"github.com/KirkDiggler/heromancer/internal/selector"
)

// Record is one resolved pick: a ref plus the quantity and favorite flag
// the user ended up with.
type Record struct {
	Ref      catalogue.Ref
	Quantity int
	Favorite bool
}

// WidgetState is the read side of a View's live widget: the core reads
// current user-visible values through it instead of touching the UI
// toolkit directly.
type WidgetState interface {
	// SelectedOption returns the index of a Select's chosen option.
	SelectedOption(nodeID string) int
	// Checked reports whether a Checkbox is currently checked.
	Checked(nodeID string) bool
	// Favorited reports whether nodeID's favorite toggle is set.
	Favorited(nodeID string) bool
}

// Options configures non-stacking behavior; defaults to
// catalogue.NonStackableDefault() when NonStackableKinds is nil.
type Options struct {
	NonStackableKinds map[catalogue.Kind]bool
}

// Collect walks scope's widget tree in registration order and returns
// the merged, ordered record list. widgets maps each registered widget
// back to the Widget value that was bound to it (the renderer.Bind
// caller is expected to keep this association; the widget handle itself
// is opaque to the core).
func Collect(scope *selector.Scope, widgets map[string]renderer.Widget, state WidgetState, opts Options) []Record {
	nonStackable := opts.NonStackableKinds
	if nonStackable == nil {
		nonStackable = catalogue.NonStackableDefault()
	}

	// Bind registers a Group's children as well as the Group itself; they
	// are reached by descending from the Group, so each atom counts once.
	nested := make(map[string]bool)
	for _, w := range widgets {
		if g, ok := w.(*renderer.Group); ok {
			for _, child := range g.Children {
				nested[child.NodeID()] = true
			}
		}
	}

	var raw []Record
	for _, nodeID := range scope.WidgetOrder() {
		if nested[nodeID] {
			continue
		}
		w, ok := widgets[nodeID]
		if !ok {
			continue
		}
		raw = append(raw, collectWidget(w, widgets, state)...)
	}

	favorited := make(map[string]bool)
	for _, nodeID := range scope.WidgetOrder() {
		if state.Favorited(nodeID) {
			if w, ok := widgets[nodeID]; ok {
				for _, r := range collectWidget(w, widgets, state) {
					favorited[r.Ref.ID] = true
				}
			}
		}
	}
	for i := range raw {
		if favorited[raw[i].Ref.ID] {
			raw[i].Favorite = true
		}
	}

	return mergeAndSort(raw, nonStackable)
}

func collectWidget(w renderer.Widget, widgets map[string]renderer.Widget, state WidgetState) []Record {
	switch widget := w.(type) {
	case *renderer.Select:
		idx := state.SelectedOption(widget.ID)
		if idx < 0 || idx >= len(widget.Options) {
			return nil
		}
		opt := widget.Options[idx]
		if opt.Ref.Unresolved() {
			return nil
		}
		return []Record{{Ref: opt.Ref, Quantity: opt.Quantity}}
	case *renderer.Checkbox:
		if !state.Checked(widget.ID) {
			return nil
		}
		if widget.Ref.Unresolved() {
			return nil
		}
		return []Record{{Ref: widget.Ref, Quantity: widget.Quantity}}
	case *renderer.Linked:
		out := make([]Record, 0, len(widget.BundledRefs))
		for _, opt := range widget.BundledRefs {
			if opt.Ref.Unresolved() {
				continue
			}
			out = append(out, Record{Ref: opt.Ref, Quantity: opt.Quantity})
		}
		return out
	case *renderer.Group:
		var out []Record
		for _, child := range widget.Children {
			out = append(out, collectWidget(child, widgets, state)...)
		}
		return out
	default:
		return nil
	}
}

// mergeAndSort sums quantities for stackable duplicates sharing a ref,
// ORs their favorite flags, and orders the result: favorites first, then
// kind priority (weapon, armor, shield, remainder), then name.
func mergeAndSort(records []Record, nonStackable map[catalogue.Kind]bool) []Record {
	byRef := make(map[string]*Record)
	order := make([]string, 0, len(records))

	for _, r := range records {
		if nonStackable[r.Ref.Kind] {
			// Non-stackable refs never merge, even if repeated — each
			// occurrence is a distinct record keyed by its position.
			order = append(order, r.Ref.ID+"#"+strconv.Itoa(len(order)))
			cp := r
			byRef[order[len(order)-1]] = &cp
			continue
		}
		key := r.Ref.ID
		if existing, ok := byRef[key]; ok {
			existing.Quantity += r.Quantity
			existing.Favorite = existing.Favorite || r.Favorite
			continue
		}
		order = append(order, key)
		cp := r
		byRef[key] = &cp
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		out = append(out, *byRef[key])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Favorite != out[j].Favorite {
			return out[i].Favorite
		}
		pi, pj := kindPriority(out[i].Ref.Kind), kindPriority(out[j].Ref.Kind)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(out[i].Ref.Name) < strings.ToLower(out[j].Ref.Name)
	})
	return out
}

var collectorKindPriority = map[catalogue.Kind]int{
	catalogue.KindWeapon: 0,
	catalogue.KindArmor:  1,
	catalogue.KindShield: 2,
}

func kindPriority(k catalogue.Kind) int {
	if p, ok := collectorKindPriority[k]; ok {
		return p
	}
	return 3
}

package renderer

import (
	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/lookup"
	"github.com/KirkDiggler/heromancer/internal/selector"
)

// Options configures one RenderScope call.
type Options struct {
	Favorites bool // emit a Favorite widget alongside every user-observable atom

	// AllowOptOutOfMandatory controls whether a mandatory AND atom (one
	// with no OR alternative) may still be unchecked. Default false:
	// mandatory atoms render as disabled, checked checkboxes.
	AllowOptOutOfMandatory bool
}

// RenderScope is the pure, total C5 transform: an EquipmentAST root plus
// the running selector state produces one Widget tree. It never reaches
// outside scope/state/idx; building concrete UI elements is View's job.
func RenderScope(idx *lookup.Index, scope *selector.Scope, state *selector.State, root ast.Node, opts Options) Widget {
	r := &renderer{idx: idx, scope: scope, state: state, opts: opts}
	return r.render(root, renderCtx{})
}

type renderCtx struct {
	hasORAncestor bool
}

type renderer struct {
	idx   *lookup.Index
	scope *selector.Scope
	state *selector.State
	opts  Options
}

func (r *renderer) render(n ast.Node, ctx renderCtx) Widget {
	if n == nil || r.scope.IsRendered(n.ID()) {
		return nil
	}
	switch node := n.(type) {
	case *ast.And:
		return r.renderAnd(node, ctx)
	case *ast.Or:
		return r.renderOr(node)
	case *ast.Item:
		return r.renderItem(node, ctx)
	case *ast.Category:
		return r.renderCategory(node)
	case *ast.Linked:
		return r.renderLinked(node)
	case *ast.Focus:
		return r.renderFocus(node)
	case *ast.Wealth:
		r.scope.MarkRendered(node.ID())
		return nil // wealth opt-out is driven by config flags / convertWealth, not a widget
	default:
		return nil
	}
}

func (r *renderer) renderAnd(node *ast.And, ctx renderCtx) Widget {
	r.scope.MarkRendered(node.ID())
	childCtx := renderCtx{hasORAncestor: ctx.hasORAncestor}

	children := make([]Widget, 0, len(node.Items))
	for _, child := range node.Items {
		if w := r.render(child, childCtx); w != nil {
			children = append(children, w)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return &Group{ID: node.ID(), Kind: GroupAnd, Children: children}
}

// renderOr emits a Select when every child is a leaf (ITEM/LINKED/
// CATEGORY — a category flattens into the same Select as its sibling
// concrete items, e.g. "a greataxe, or any martial melee weapon"),
// otherwise a Group{OR} of nested widgets.
func (r *renderer) renderOr(node *ast.Or) Widget {
	r.scope.MarkRendered(node.ID())
	if allLeaf(node.Items) {
		return r.renderOrAsSelect(node)
	}

	childCtx := renderCtx{hasORAncestor: true}
	children := make([]Widget, 0, len(node.Items))
	for _, child := range node.Items {
		if w := r.render(child, childCtx); w != nil {
			children = append(children, w)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return &Group{ID: node.ID(), Kind: GroupOr, Children: children}
}

func allLeaf(items []ast.Node) bool {
	for _, it := range items {
		switch it.(type) {
		case *ast.Item, *ast.Linked, *ast.Category:
		default:
			return false
		}
	}
	return true
}

func (r *renderer) renderOrAsSelect(node *ast.Or) Widget {
	options := make([]Option, 0, len(node.Items))
	for _, child := range node.Items {
		switch it := child.(type) {
		case *ast.Item:
			if it.Ref.Unresolved() {
				continue
			}
			options = append(options, Option{Ref: it.Ref, Label: optionLabel(it), Quantity: it.Count})
		case *ast.Linked:
			if len(it.Items) == 0 {
				continue
			}
			first, ok := it.Items[0].(*ast.Item)
			if !ok {
				continue
			}
			options = append(options, Option{Ref: first.Ref, Label: it.Label, Quantity: first.Count})
		case *ast.Category:
			r.scope.MarkRendered(it.ID())
			for _, ref := range r.idx.LookupByCategory(it.Key) {
				options = append(options, Option{Ref: ref, Label: ref.Name, Quantity: it.Count})
			}
		}
	}
	if len(options) == 0 {
		return nil
	}
	sel := &Select{ID: node.ID(), Options: options, DefaultIndex: clampDefault(node.DefaultIndex, len(options))}
	return r.withFavorite(sel)
}

func (r *renderer) renderItem(node *ast.Item, ctx renderCtx) Widget {
	r.scope.MarkRendered(node.ID())
	if node.Ref.Unresolved() {
		return nil
	}
	if !r.state.Claim(node.Ref.ID) {
		return nil // an earlier scope already granted this ref
	}
	// A mandatory atom (no OR alternative) cannot be unchecked unless
	// policy explicitly allows opting out of mandatory gear.
	disabled := !ctx.hasORAncestor && !r.opts.AllowOptOutOfMandatory
	cb := &Checkbox{ID: node.ID(), Ref: node.Ref, Quantity: node.Count, PreChecked: true, Disabled: disabled}
	return r.withFavorite(cb)
}

func (r *renderer) renderCategory(node *ast.Category) Widget {
	r.scope.MarkRendered(node.ID())
	refs := r.idx.LookupByCategory(node.Key)
	if len(refs) == 0 {
		return nil
	}
	options := make([]Option, 0, len(refs))
	for _, ref := range refs {
		options = append(options, Option{Ref: ref, Label: ref.Name, Quantity: node.Count})
	}
	sel := &Select{ID: node.ID(), Options: options, DefaultIndex: -1} // a category has no default
	return r.withFavorite(sel)
}

func (r *renderer) renderFocus(node *ast.Focus) Widget {
	r.scope.MarkRendered(node.ID())
	refs := r.idx.LookupByCategory(catalogue.CategoryKey{Axis: catalogue.KindFocus, Tradition: node.Tradition})
	if len(refs) == 0 {
		return nil
	}
	options := make([]Option, 0, len(refs))
	for _, ref := range refs {
		options = append(options, Option{Ref: ref, Label: ref.Name, Quantity: node.Count})
	}
	sel := &Select{ID: node.ID(), Options: options, DefaultIndex: 0}
	return r.withFavorite(sel)
}

func (r *renderer) renderLinked(node *ast.Linked) Widget {
	r.scope.MarkRendered(node.ID())
	bundled := make([]Option, 0, len(node.Items))
	for _, child := range node.Items {
		item, ok := child.(*ast.Item)
		if !ok || item.Ref.Unresolved() {
			continue
		}
		if !r.state.Claim(item.Ref.ID) {
			continue
		}
		bundled = append(bundled, Option{Ref: item.Ref, Label: item.Ref.Name, Quantity: item.Count})
	}
	if len(bundled) == 0 {
		return nil
	}
	linked := &Linked{ID: node.ID(), VisibleLabel: node.Label, BundledRefs: bundled}
	return r.withFavorite(linked)
}

// withFavorite pairs w with a Favorite toggle under a small AND group
// when Options.Favorites is set, leaving w untouched otherwise. The
// Favorite's own id only needs to be unique for widget registration;
// Collector and WidgetState key favorite status by w's id via For.
func (r *renderer) withFavorite(w Widget) Widget {
	if w == nil || !r.opts.Favorites {
		return w
	}
	fav := &Favorite{ID: w.NodeID() + ":favorite", For: w.NodeID()}
	return &Group{ID: w.NodeID() + ":with-favorite", Kind: GroupAnd, Children: []Widget{w, fav}}
}

func optionLabel(item *ast.Item) string {
	if item.Label != "" {
		return item.Label
	}
	return item.Ref.Name
}

func clampDefault(idx, n int) int {
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

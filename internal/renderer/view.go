package renderer

import (
	"github.com/KirkDiggler/heromancer/internal/selector"
)

// View is the declarative UI builder the core renders through. The
// core never produces raw markup; every pixel-facing concern (a
// Discord embed, a DOM tree, a terminal prompt) lives behind an
// implementation of this interface.
type View interface {
	NewContainer(nodeID string, kind GroupKind) selector.WidgetHandle
	NewSelect(nodeID string, s *Select) selector.WidgetHandle
	NewCheckbox(nodeID string, c *Checkbox) selector.WidgetHandle
	NewLinked(nodeID string, l *Linked) selector.WidgetHandle
	NewFavorite(nodeID string, f *Favorite) selector.WidgetHandle
}

// Bind walks w and registers a handle for every node into scope via
// view, in render order. It is the only place widget handles are
// created, so a torn-down scope (selector.State.Reset) leaves no
// dangling handles behind.
func Bind(view View, scope *selector.Scope, w Widget) {
	if w == nil {
		return
	}
	switch widget := w.(type) {
	case *Group:
		handle := view.NewContainer(widget.ID, widget.Kind)
		scope.RegisterWidget(widget.ID, handle)
		for _, child := range widget.Children {
			Bind(view, scope, child)
		}
	case *Select:
		scope.RegisterWidget(widget.ID, view.NewSelect(widget.ID, widget))
	case *Checkbox:
		scope.RegisterWidget(widget.ID, view.NewCheckbox(widget.ID, widget))
	case *Linked:
		scope.RegisterWidget(widget.ID, view.NewLinked(widget.ID, widget))
	case *Favorite:
		scope.RegisterWidget(widget.ID, view.NewFavorite(widget.ID, widget))
	}
}

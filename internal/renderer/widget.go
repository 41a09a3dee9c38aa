// Package renderer turns a planned EquipmentAST into a declarative
// widget tree. It never mutates the AST and never touches a concrete UI
// toolkit directly — callers that need pixels bind the returned Widget
// tree through a View implementation.
package renderer

import "github.com/KirkDiggler/heromancer/internal/catalogue"

// Widget is the declarative output of rendering one AST node.
type Widget interface {
	NodeID() string
	isWidget()
}

// Option is one pickable alternative inside a Select, or one bundled
// member of a Linked widget.
type Option struct {
	Ref      catalogue.Ref
	Label    string
	Quantity int
}

// Select offers a single choice among Options; exactly one is active.
type Select struct {
	ID           string
	Options      []Option
	DefaultIndex int // pre-selected option; -1 when none is pre-selected
}

func (s *Select) NodeID() string { return s.ID }
func (*Select) isWidget()        {}

// Checkbox is a yes/no atom — a mandatory or optional single item.
type Checkbox struct {
	ID         string
	Ref        catalogue.Ref
	Quantity   int
	PreChecked bool
	Disabled   bool
}

func (c *Checkbox) NodeID() string { return c.ID }
func (*Checkbox) isWidget()        {}

// Linked is shown as a single visual row bundling several refs that are
// granted (or withheld) together.
type Linked struct {
	ID           string
	VisibleLabel string
	BundledRefs  []Option
}

func (l *Linked) NodeID() string { return l.ID }
func (*Linked) isWidget()        {}

// GroupKind distinguishes a structural AND container from an OR one.
type GroupKind string

const (
	GroupAnd GroupKind = "and"
	GroupOr  GroupKind = "or"
)

// Group wraps child widgets under a structural node.
type Group struct {
	ID       string
	Kind     GroupKind
	Children []Widget
}

func (g *Group) NodeID() string { return g.ID }
func (*Group) isWidget()        {}

// Favorite is a toggle attached to a sibling choice, present only when
// Options.Favorites is set.
type Favorite struct {
	ID  string
	For string // node id of the sibling atom this favorite toggles
}

func (f *Favorite) NodeID() string { return f.ID }
func (*Favorite) isWidget()        {}

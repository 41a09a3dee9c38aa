// Package ast is the EquipmentAST: the normalized, in-memory
// representation of one equipment tree (class or background), built by
// the extractor and rewritten in place by the group planner. Trees are
// acyclic by construction — children are stored as slices, never
// back-pointers — and every node carries a globally unique id assigned
// at extraction time (unique per scope; ids may collide across scopes).
package ast

import "github.com/KirkDiggler/heromancer/internal/catalogue"

// Kind tags the variant of an EquipmentNode.
type Kind string

const (
	KindAnd      Kind = "AND"
	KindOr       Kind = "OR"
	KindItem     Kind = "ITEM"
	KindCategory Kind = "CATEGORY"
	KindLinked   Kind = "LINKED"
	KindFocus    Kind = "FOCUS"
	KindWealth   Kind = "WEALTH"
)

// Node is the common interface every EquipmentNode variant implements.
type Node interface {
	ID() string
	Kind() Kind
}

// And requires every child to contribute. GroupID, when non-empty,
// names the source descriptor group this node was extracted from.
type And struct {
	NodeID  string
	GroupID string
	Items   []Node
}

func (n *And) ID() string  { return n.NodeID }
func (n *And) Kind() Kind  { return KindAnd }
func (n *And) Children() []Node { return n.Items }

// Or requires exactly one child to contribute. A singleton OR is
// collapsed to its child by the extractor, so a well-formed Or always
// has at least two children. DefaultIndex, when >= 0, names the child
// the renderer should pre-select.
type Or struct {
	NodeID       string
	Label        string
	DefaultIndex int
	Items        []Node
}

func (n *Or) ID() string  { return n.NodeID }
func (n *Or) Kind() Kind  { return KindOr }
func (n *Or) Children() []Node { return n.Items }

// Item is a concrete catalogue item with multiplicity. Placeholder is
// set when a malformed descriptor was replaced by a sentinel so the
// extractor never aborts on one bad entry.
type Item struct {
	NodeID      string
	Ref         catalogue.Ref
	Count       int
	Label       string
	Placeholder bool
}

func (n *Item) ID() string { return n.NodeID }
func (n *Item) Kind() Kind { return KindItem }

// Category asks the user to pick Count items from the LookupIndex bucket
// addressed by Key.
type Category struct {
	NodeID string
	Key    catalogue.CategoryKey
	Count  int
}

func (n *Category) ID() string { return n.NodeID }
func (n *Category) Kind() Kind { return KindCategory }

// Linked is an opaque bundle of ITEM/CATEGORY children rendered as a
// single visual choice (e.g. "a weapon and its ammunition", or a named
// package from a source module). It never contains AND/OR.
type Linked struct {
	NodeID string
	Label  string
	Items  []Node // ITEM or CATEGORY only
}

func (n *Linked) ID() string { return n.NodeID }
func (n *Linked) Kind() Kind { return KindLinked }
func (n *Linked) Children() []Node { return n.Items }

// Focus asks the user to pick one arcane/druidic/holy focus matching
// Tradition.
type Focus struct {
	NodeID    string
	Tradition string
	Count     int
}

func (n *Focus) ID() string { return n.NodeID }
func (n *Focus) Kind() Kind { return KindFocus }

// Wealth is the opt-out leaf of the equipment grammar. The renderer
// emits no widget for it and nothing replaces its ancestor subtree with
// coin; wealth instead of gear is chosen through core.Config's
// SkipClassEquipment/SkipBackgroundEquipment and Core.ConvertWealth.
type Wealth struct {
	NodeID string
	Amount int
}

func (n *Wealth) ID() string { return n.NodeID }
func (n *Wealth) Kind() Kind { return KindWealth }

// Parent is implemented by the two structural variants whose children
// can themselves be structural (And, Or); Linked also exposes Children
// but is constrained to flat ITEM/CATEGORY content by invariant, not by
// the type system, since a LINKED built in violation of that invariant
// should still be walkable for diagnostics.
type Parent interface {
	Node
	Children() []Node
}

var (
	_ Parent = (*And)(nil)
	_ Parent = (*Or)(nil)
	_ Parent = (*Linked)(nil)
)

// Walk visits n and every descendant depth-first, pre-order.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	if p, ok := n.(Parent); ok {
		for _, c := range p.Children() {
			Walk(c, visit)
		}
	}
}

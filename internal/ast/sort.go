package ast

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
)

// kindPriority orders representative catalogue kinds for And-child
// sorting: weapon > armor > shield > tool > everything else.
var kindPriority = map[catalogue.Kind]int{
	catalogue.KindWeapon: 0,
	catalogue.KindArmor:  1,
	catalogue.KindShield: 2,
	catalogue.KindTool:   3,
}

func priorityOf(k catalogue.Kind) int {
	if p, ok := kindPriority[k]; ok {
		return p
	}
	return 4
}

// representativeKind picks the catalogue kind used to rank n among its
// siblings: an Item or Category's own kind/axis, a Linked's first child
// (a bundle is ranked by its visible item), a Focus's focus kind, and
// KindOther for anything else. Nested And/Or groups therefore share the
// lowest priority tier with every kind outside weapon/armor/shield/tool
// and are ordered by name within it (an And has no name, so it sorts
// first in that tier).
func representativeKind(n Node) catalogue.Kind {
	switch v := n.(type) {
	case *Item:
		return v.Ref.Kind
	case *Category:
		return v.Key.Axis
	case *Linked:
		if len(v.Items) > 0 {
			return representativeKind(v.Items[0])
		}
	case *Focus:
		return catalogue.KindFocus
	}
	return catalogue.KindOther
}

func nameOf(n Node) string {
	switch v := n.(type) {
	case *Item:
		if v.Label != "" {
			return v.Label
		}
		return v.Ref.Name
	case *Linked:
		return v.Label
	case *Category:
		return v.Key.String()
	case *Focus:
		return v.Tradition
	case *Or:
		return v.Label
	}
	return ""
}

func isLinked(n Node) bool {
	_, ok := n.(*Linked)
	return ok
}

// SortAndChildren stable-sorts an And's children by (is-linked, kind
// priority, name), per the AST's invariant 4. It never reorders within
// a tie, so re-sorting an already-sorted slice is a no-op.
func SortAndChildren(children []Node) {
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if isLinked(a) != isLinked(b) {
			return isLinked(a) // linked bundles sort before plain atoms
		}
		pa, pb := priorityOf(representativeKind(a)), priorityOf(representativeKind(b))
		if pa != pb {
			return pa < pb
		}
		return strings.ToLower(nameOf(a)) < strings.ToLower(nameOf(b))
	})
}

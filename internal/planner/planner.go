// Package planner rewrites an EquipmentAST's AND groups to collapse
// compound patterns a Renderer should show as one choice: weapon+ammo
// bundles, identical weapon stacks, and focus/focus-item duplicates.
package planner

import (
	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
)

// Plan walks root bottom-up and rewrites every AND group it finds.
// Planning is idempotent: running it again on an already-planned tree
// is a no-op.
func Plan(root ast.Node) ast.Node {
	return planNode(root)
}

func planNode(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.And:
		for i, child := range node.Items {
			node.Items[i] = planNode(child)
		}
		node.Items = rewriteAnd(node.Items)
		ast.SortAndChildren(node.Items)
		return node
	case *ast.Or:
		for i, child := range node.Items {
			node.Items[i] = planNode(child)
		}
		return node
	case *ast.Linked:
		for i, child := range node.Items {
			node.Items[i] = planNode(child)
		}
		return node
	default:
		return n
	}
}

// rewriteAnd applies the three compound-detection passes in priority
// order, each operating on the output of the previous one.
func rewriteAnd(items []ast.Node) []ast.Node {
	items = mergeWeaponAmmo(items)
	items = mergeIdenticalWeapons(items)
	items = mergeFocusDuplicates(items)
	return items
}

// mergeWeaponAmmo collapses exactly one weapon child plus one-or-more
// ammunition-tagged children into a single LINKED bundle. Trees with
// more than one weapon child are left alone — the bundle is ambiguous.
func mergeWeaponAmmo(items []ast.Node) []ast.Node {
	var weaponIdx = -1
	var weapons int
	var ammoIdx []int

	for i, it := range items {
		item, ok := it.(*ast.Item)
		if !ok {
			continue
		}
		if item.Ref.Kind == catalogue.KindWeapon {
			if weaponIdx == -1 {
				weaponIdx = i
			}
			weapons++
			continue
		}
		if item.Ref.Kind == catalogue.KindConsumable && item.Ref.BoolTag("ammunition") {
			ammoIdx = append(ammoIdx, i)
		}
	}

	if weapons != 1 || len(ammoIdx) == 0 {
		return items
	}

	weapon := items[weaponIdx].(*ast.Item)
	bundled := []ast.Node{weapon}
	for _, idx := range ammoIdx {
		bundled = append(bundled, items[idx])
	}

	label := weapon.Label
	if label == "" {
		label = weapon.Ref.Name
	}
	linked := &ast.Linked{NodeID: weapon.NodeID, Label: label, Items: bundled}

	merged := make([]ast.Node, 0, len(items)-len(ammoIdx))
	skip := map[int]bool{weaponIdx: true}
	for _, idx := range ammoIdx {
		skip[idx] = true
	}
	inserted := false
	for i, it := range items {
		if skip[i] {
			if !inserted {
				merged = append(merged, linked)
				inserted = true
			}
			continue
		}
		merged = append(merged, it)
	}
	return merged
}

// mergeIdenticalWeapons sums the count of sibling ITEM nodes that refer
// to the same resolved ref, keeping the first node's id.
func mergeIdenticalWeapons(items []ast.Node) []ast.Node {
	seen := make(map[string]*ast.Item)
	out := make([]ast.Node, 0, len(items))

	for _, it := range items {
		item, ok := it.(*ast.Item)
		if !ok || item.Ref.Unresolved() || item.Ref.ID == "" {
			out = append(out, it)
			continue
		}
		if existing, ok := seen[item.Ref.ID]; ok {
			existing.Count += item.Count
			continue
		}
		seen[item.Ref.ID] = item
		out = append(out, it)
	}
	return out
}

// mergeFocusDuplicates drops a focus-kind ITEM child whose tradition
// matches a sibling FOCUS node — the FOCUS already represents the pick.
func mergeFocusDuplicates(items []ast.Node) []ast.Node {
	traditions := make(map[string]bool)
	for _, it := range items {
		if f, ok := it.(*ast.Focus); ok {
			traditions[f.Tradition] = true
		}
	}
	if len(traditions) == 0 {
		return items
	}

	out := make([]ast.Node, 0, len(items))
	for _, it := range items {
		if item, ok := it.(*ast.Item); ok && item.Ref.Kind == catalogue.KindFocus {
			if traditions[item.Ref.Tag("tradition")] {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

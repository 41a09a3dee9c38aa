package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/planner"
)

func weaponItem(id, name string) *ast.Item {
	return &ast.Item{NodeID: id, Ref: catalogue.Ref{ID: id, Name: name, Kind: catalogue.KindWeapon}, Count: 1}
}

func ammoItem(id, name string) *ast.Item {
	return &ast.Item{
		NodeID: id,
		Ref: catalogue.Ref{ID: id, Name: name, Kind: catalogue.KindConsumable,
			System: map[string]any{"ammunition": true}},
		Count: 20,
	}
}

func TestPlan_MergesWeaponAndAmmoIntoLinked(t *testing.T) {
	root := &ast.And{NodeID: "root", Items: []ast.Node{
		weaponItem("w1", "Shortbow"),
		ammoItem("a1", "Arrows"),
	}}

	planned := planner.Plan(root).(*ast.And)
	require.Len(t, planned.Items, 1)

	linked, ok := planned.Items[0].(*ast.Linked)
	require.True(t, ok)
	assert.Equal(t, "Shortbow", linked.Label)
	assert.Len(t, linked.Items, 2)
}

func TestPlan_MergesIdenticalWeapons(t *testing.T) {
	root := &ast.And{NodeID: "root", Items: []ast.Node{
		weaponItem("dagger", "Dagger"),
		weaponItem("dagger", "Dagger"),
	}}

	planned := planner.Plan(root).(*ast.And)
	require.Len(t, planned.Items, 1)
	assert.Equal(t, 2, planned.Items[0].(*ast.Item).Count)
}

func TestPlan_DropsFocusItemDuplicatedByFocusNode(t *testing.T) {
	focusItem := &ast.Item{
		NodeID: "fi",
		Ref: catalogue.Ref{ID: "arcane-focus", Name: "Arcane Focus", Kind: catalogue.KindFocus,
			System: map[string]any{"tradition": "arcane"}},
		Count: 1,
	}
	root := &ast.And{NodeID: "root", Items: []ast.Node{
		&ast.Focus{NodeID: "f1", Tradition: "arcane", Count: 1},
		focusItem,
	}}

	planned := planner.Plan(root).(*ast.And)
	require.Len(t, planned.Items, 1)
	_, isFocus := planned.Items[0].(*ast.Focus)
	assert.True(t, isFocus)
}

func TestPlan_IsIdempotent(t *testing.T) {
	root := &ast.And{NodeID: "root", Items: []ast.Node{
		weaponItem("dagger", "Dagger"),
		weaponItem("dagger", "Dagger"),
	}}

	once := planner.Plan(root)
	twice := planner.Plan(once)

	andTwice := twice.(*ast.And)
	require.Len(t, andTwice.Items, 1)
	assert.Equal(t, 2, andTwice.Items[0].(*ast.Item).Count)
}

func TestPlan_RecursesIntoNestedGroups(t *testing.T) {
	nested := &ast.And{NodeID: "inner", Items: []ast.Node{
		weaponItem("dagger", "Dagger"),
		weaponItem("dagger", "Dagger"),
	}}
	root := &ast.Or{NodeID: "root", Items: []ast.Node{
		nested,
		weaponItem("mace", "Mace"),
	}}

	planned := planner.Plan(root).(*ast.Or)
	innerPlanned := planned.Items[0].(*ast.And)
	assert.Len(t, innerPlanned.Items, 1)
}

package extractor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/catalogue/cataloguefake"
	"github.com/KirkDiggler/heromancer/internal/document"
	"github.com/KirkDiggler/heromancer/internal/extractor"
)

// sequentialIDs is a deterministic IDGenerator so tests can assert on
// exact tree shape without caring about id values.
type sequentialIDs struct{ n int }

func (s *sequentialIDs) New() string {
	s.n++
	return fmt.Sprintf("node-%d", s.n)
}

type fakeDoc struct {
	entries document.List
	err     error
}

func (f *fakeDoc) GetStartingEquipment(_ context.Context, _ document.SourceRef) (document.List, error) {
	return f.entries, f.err
}

func (f *fakeDoc) GetStartingWealth(_ context.Context, _ document.SourceRef) (*document.WealthDescriptor, error) {
	return nil, nil
}

func newStore() *cataloguefake.Store {
	return cataloguefake.New().
		AddPack(catalogue.PackRef{ID: "phb"}).
		AddItem("phb", catalogue.IndexEntry{ID: "longsword", Name: "Longsword", Kind: catalogue.KindWeapon}).
		AddItem("phb", catalogue.IndexEntry{ID: "shield", Name: "Shield", Kind: catalogue.KindShield}).
		AddItem("phb", catalogue.IndexEntry{ID: "dungeoneers-pack", Name: "Dungeoneer's Pack", Kind: catalogue.KindEquipment})
}

func TestExtract_SingletonORCollapsesToChild(t *testing.T) {
	entries := document.List{
		{Type: document.EntryOR, GroupID: "g1"},
		{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "longsword"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	item, ok := root.(*ast.Item)
	require.True(t, ok, "a singleton OR must collapse to its bare child, not wrap it")
	assert.Equal(t, "Longsword", item.Ref.Name)
}

func TestExtract_MultiItemOR_KeepsOrNode(t *testing.T) {
	entries := document.List{
		{Type: document.EntryOR, GroupID: "g1", Label: "weapon choice"},
		{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "longsword"},
		{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "shield"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	or, ok := root.(*ast.Or)
	require.True(t, ok)
	assert.Len(t, or.Items, 2)
}

func TestExtract_CommaSeparatedRefKey_BuildsLinkedBundle(t *testing.T) {
	entries := document.List{
		{Type: document.EntryItem, RefKey: "longsword, shield", Label: "sword and board"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	linked, ok := root.(*ast.Linked)
	require.True(t, ok)
	require.Len(t, linked.Items, 2)
	assert.Equal(t, "sword and board", linked.Label)
}

func TestExtract_UnresolvableRef_BecomesUnresolvedItemNotError(t *testing.T) {
	entries := document.List{
		{Type: document.EntryItem, RefKey: "nonexistent-item"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	item, ok := root.(*ast.Item)
	require.True(t, ok)
	assert.True(t, item.Ref.Unresolved())
}

func TestExtract_NoDescriptors_ReturnsNotOK(t *testing.T) {
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	_, ok := ex.Extract(context.Background(), &fakeDoc{entries: nil}, document.SourceRef{ID: "fighter"})
	assert.False(t, ok)
}

func TestExtract_EmptySourceRef_ReturnsNotOK(t *testing.T) {
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	_, ok := ex.Extract(context.Background(), &fakeDoc{}, document.SourceRef{})
	assert.False(t, ok)
}

func TestExtract_ANDGroupChildrenAreStablySorted(t *testing.T) {
	entries := document.List{
		{Type: document.EntryAND, GroupID: "g1"},
		{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "shield"},
		{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "longsword"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	and, ok := root.(*ast.And)
	require.True(t, ok)
	require.Len(t, and.Items, 2)
	assert.Equal(t, "Longsword", and.Items[0].(*ast.Item).Ref.Name, "weapon kind sorts before shield kind")
	assert.Equal(t, "Shield", and.Items[1].(*ast.Item).Ref.Name)
}

func TestExtract_MultipleRootsWrapInSyntheticAnd(t *testing.T) {
	entries := document.List{
		{Type: document.EntryItem, RefKey: "longsword"},
		{Type: document.EntryItem, RefKey: "shield"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	_, ok = root.(*ast.And)
	assert.True(t, ok)
}

func TestExtract_CategoryEntry_BuildsCategoryNode(t *testing.T) {
	entries := document.List{
		{Type: document.EntryCategory, Proficiency: "martial", Shape: "melee"},
	}
	ex := extractor.New(newStore(), &sequentialIDs{}, extractor.Options{})
	root, ok := ex.Extract(context.Background(), &fakeDoc{entries: entries}, document.SourceRef{ID: "fighter"})
	require.True(t, ok)

	cat, ok := root.(*ast.Category)
	require.True(t, ok)
	assert.Equal(t, catalogue.KindWeapon, cat.Key.Axis)
	assert.Equal(t, "martial", cat.Key.Proficiency)
}

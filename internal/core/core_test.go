package core_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/catalogue/cataloguefake"
	"github.com/KirkDiggler/heromancer/internal/collector"
	"github.com/KirkDiggler/heromancer/internal/core"
	mockdice "github.com/KirkDiggler/heromancer/internal/dice/mock"
	"github.com/KirkDiggler/heromancer/internal/document"
	"github.com/KirkDiggler/heromancer/internal/lookup"
	"github.com/KirkDiggler/heromancer/internal/renderer"
	"github.com/KirkDiggler/heromancer/internal/selector"
)

type sequentialIDs struct{ n int }

func (s *sequentialIDs) New() string {
	s.n++
	return fmt.Sprintf("node-%d", s.n)
}

type fakeView struct{}

func (fakeView) NewContainer(string, renderer.GroupKind) selector.WidgetHandle { return nil }
func (fakeView) NewSelect(string, *renderer.Select) selector.WidgetHandle      { return nil }
func (fakeView) NewCheckbox(string, *renderer.Checkbox) selector.WidgetHandle  { return nil }
func (fakeView) NewLinked(string, *renderer.Linked) selector.WidgetHandle      { return nil }
func (fakeView) NewFavorite(string, *renderer.Favorite) selector.WidgetHandle  { return nil }

// fakeWidgetState checks every Checkbox and picks option 0 of every
// Select, simulating a user who accepts every default.
type fakeWidgetState struct{}

func (fakeWidgetState) SelectedOption(string) int { return 0 }
func (fakeWidgetState) Checked(string) bool       { return true }
func (fakeWidgetState) Favorited(string) bool     { return false }

type fakeCatalogueDoc struct {
	equipment map[string]document.List
	wealth    map[string]*document.WealthDescriptor
}

func (f *fakeCatalogueDoc) GetStartingEquipment(_ context.Context, ref document.SourceRef) (document.List, error) {
	return f.equipment[ref.ID], nil
}

func (f *fakeCatalogueDoc) GetStartingWealth(_ context.Context, ref document.SourceRef) (*document.WealthDescriptor, error) {
	return f.wealth[ref.ID], nil
}

func buildFighterStore() *cataloguefake.Store {
	return cataloguefake.New().
		AddPack(catalogue.PackRef{ID: "phb"}).
		AddItem("phb", catalogue.IndexEntry{ID: "longsword", Name: "Longsword", Kind: catalogue.KindWeapon}).
		AddItem("phb", catalogue.IndexEntry{ID: "shield", Name: "Shield", Kind: catalogue.KindShield}).
		AddItem("phb", catalogue.IndexEntry{ID: "dungeoneers-pack", Name: "Dungeoneer's Pack", Kind: catalogue.KindEquipment})
}

func TestCore_InitializeRenderCollect_MandatoryGearPath(t *testing.T) {
	store := buildFighterStore()
	packs, err := store.PackList(context.Background())
	require.NoError(t, err)
	idx := lookup.Build(context.Background(), store, packs).Index

	doc := &fakeCatalogueDoc{equipment: map[string]document.List{
		"fighter": {
			{Type: document.EntryAND, GroupID: "g1"},
			{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "longsword"},
			{Type: document.EntryItem, ParentGroupID: "g1", RefKey: "shield"},
		},
	}}

	c := core.New(idx, store, doc, &sequentialIDs{}, mockdice.NewManualMockRoller(), core.Config{}, core.Notifications{})

	prepared, err := c.Initialize(context.Background(), document.SourceRef{Kind: document.SourceClass, ID: "fighter"}, document.SourceRef{})
	require.NoError(t, err)
	require.NotNil(t, prepared.ClassRoot)

	rendered, err := c.Render(context.Background(), fakeView{}, prepared)
	require.NoError(t, err)

	records := c.Collect(prepared, rendered, fakeWidgetState{}, core.Filters{Class: true})
	require.Len(t, records, 2)

	names := []string{records[0].Ref.Name, records[1].Ref.Name}
	assert.ElementsMatch(t, []string{"Longsword", "Shield"}, names)
}

func TestCore_SkipClassEquipment_OmitsClassSubtree(t *testing.T) {
	store := buildFighterStore()
	packs, _ := store.PackList(context.Background())
	idx := lookup.Build(context.Background(), store, packs).Index

	doc := &fakeCatalogueDoc{equipment: map[string]document.List{
		"fighter": {{Type: document.EntryItem, RefKey: "longsword"}},
	}}

	c := core.New(idx, store, doc, &sequentialIDs{}, mockdice.NewManualMockRoller(),
		core.Config{SkipClassEquipment: true}, core.Notifications{})

	prepared, err := c.Initialize(context.Background(), document.SourceRef{Kind: document.SourceClass, ID: "fighter"}, document.SourceRef{})
	require.NoError(t, err)

	rendered, err := c.Render(context.Background(), fakeView{}, prepared)
	require.NoError(t, err)
	assert.Nil(t, rendered.Widgets["class"])

	records := c.Collect(prepared, rendered, fakeWidgetState{}, core.Filters{Class: true})
	assert.Empty(t, records)
}

func TestCore_ConvertWealth_FallsBackToAverageOnRollFailure(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.FailNextRoll()
	c := core.New(nil, nil, nil, &sequentialIDs{}, roller, core.Config{}, core.Notifications{})

	coins := c.ConvertWealth(context.Background(), &document.WealthDescriptor{
		Formula: "5d4", Multiplier: 10, Denomination: "gold",
	})
	assert.Equal(t, 120, coins.Gold)
}

func TestCore_Initialize_IsIdempotentAcrossRepeatedCalls(t *testing.T) {
	store := buildFighterStore()
	packs, _ := store.PackList(context.Background())
	idx := lookup.Build(context.Background(), store, packs).Index
	doc := &fakeCatalogueDoc{equipment: map[string]document.List{
		"fighter": {{Type: document.EntryItem, RefKey: "longsword"}},
	}}

	c := core.New(idx, store, doc, &sequentialIDs{}, mockdice.NewManualMockRoller(), core.Config{}, core.Notifications{})

	first, err := c.Initialize(context.Background(), document.SourceRef{Kind: document.SourceClass, ID: "fighter"}, document.SourceRef{})
	require.NoError(t, err)
	second, err := c.Initialize(context.Background(), document.SourceRef{Kind: document.SourceClass, ID: "fighter"}, document.SourceRef{})
	require.NoError(t, err)

	assert.NotEqual(t, first.Generation, second.Generation)

	rendered, err := c.Render(context.Background(), fakeView{}, second)
	require.NoError(t, err)
	records := c.Collect(second, rendered, fakeWidgetState{}, core.Filters{Class: true})
	require.Len(t, records, 1)
	assert.Equal(t, "Longsword", records[0].Ref.Name)
}

var _ collector.WidgetState = fakeWidgetState{}

package main

import (
	"context"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/catalogue/cataloguefake"
	"github.com/KirkDiggler/heromancer/internal/document"
)

// demoCatalogueDoc is a tiny in-memory document.Catalogue standing in
// for the host's DocumentCatalogue, used only by the demo command.
type demoCatalogueDoc struct {
	equipment map[string]document.List
	wealth    map[string]*document.WealthDescriptor
}

func (d *demoCatalogueDoc) GetStartingEquipment(_ context.Context, ref document.SourceRef) (document.List, error) {
	return d.equipment[ref.ID], nil
}

func (d *demoCatalogueDoc) GetStartingWealth(_ context.Context, ref document.SourceRef) (*document.WealthDescriptor, error) {
	return d.wealth[ref.ID], nil
}

// buildFighterFixture assembles a phb-only fighter: a longbow-and-arrows
// bundle for the Planner to merge, plus a longsword-or-any-martial-melee-
// weapon choice, exercising C1-C9 end to end.
func buildFighterFixture() (*cataloguefake.Store, *demoCatalogueDoc) {
	store := cataloguefake.New().
		AddPack(catalogue.PackRef{ID: "phb", Name: "Player's Handbook"}).
		AddItem("phb", catalogue.IndexEntry{ID: "longbow", Name: "Longbow", Kind: catalogue.KindWeapon}).
		AddItem("phb", catalogue.IndexEntry{ID: "arrows", Name: "Arrows (20)", Kind: catalogue.KindConsumable,
			System: map[string]any{"ammunition": true}}).
		AddItem("phb", catalogue.IndexEntry{ID: "shield", Name: "Shield", Kind: catalogue.KindShield}).
		AddItem("phb", catalogue.IndexEntry{ID: "longsword", Name: "Longsword", Kind: catalogue.KindWeapon,
			System: map[string]any{"proficiency": "martial", "shape": "melee"}}).
		AddItem("phb", catalogue.IndexEntry{ID: "handaxe", Name: "Handaxe", Kind: catalogue.KindWeapon,
			System: map[string]any{"proficiency": "martial", "shape": "melee"}}).
		AddItem("phb", catalogue.IndexEntry{ID: "dungeoneers-pack", Name: "Dungeoneer's Pack", Kind: catalogue.KindEquipment})

	doc := &demoCatalogueDoc{
		equipment: map[string]document.List{
			"fighter": {
				{Type: document.EntryAND, GroupID: "root"},
				{Type: document.EntryOR, GroupID: "weapon-choice", ParentGroupID: "root"},
				{Type: document.EntryItem, ParentGroupID: "weapon-choice", RefKey: "longsword"},
				{Type: document.EntryCategory, ParentGroupID: "weapon-choice", Proficiency: "martial", Shape: "melee", Count: 1},
				{Type: document.EntryItem, ParentGroupID: "root", RefKey: "longbow"},
				{Type: document.EntryItem, ParentGroupID: "root", RefKey: "arrows", Count: 20},
				{Type: document.EntryItem, ParentGroupID: "root", RefKey: "shield"},
				{Type: document.EntryItem, ParentGroupID: "root", RefKey: "dungeoneers-pack"},
			},
		},
		wealth: map[string]*document.WealthDescriptor{
			"fighter": {Formula: "5d4", Multiplier: 10, Denomination: "gp"},
		},
	}

	return store, doc
}

// Package core wires the equipment resolution pipeline — extractor,
// planner, renderer, selector, collector, wealth converter — behind the
// four public operations the rest of the assistant calls.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/collector"
	"github.com/KirkDiggler/heromancer/internal/dice"
	"github.com/KirkDiggler/heromancer/internal/document"
	"github.com/KirkDiggler/heromancer/internal/errtax"
	"github.com/KirkDiggler/heromancer/internal/extractor"
	"github.com/KirkDiggler/heromancer/internal/lookup"
	"github.com/KirkDiggler/heromancer/internal/planner"
	"github.com/KirkDiggler/heromancer/internal/renderer"
	"github.com/KirkDiggler/heromancer/internal/selector"
	"github.com/KirkDiggler/heromancer/internal/wealth"
)

// Config is the enumerated configuration surface from the external
// interfaces section: feature flags plus the cross-scope claim and
// stacking policies.
type Config struct {
	SkipClassEquipment      bool
	SkipBackgroundEquipment bool
	Favorites               bool
	AllowOptOutOfMandatory  bool
	NonStackableKinds       map[catalogue.Kind]bool
	RefResolveTimeout       time.Duration
}

// Notifications are the optional subscriber hooks the public surface
// exposes. Render calls OnRendered when it finishes; Core never calls
// OnSelectionChanged or OnClaimed.
type Notifications struct {
	OnRendered         func()
	OnSelectionChanged func(nodeID string)
	OnClaimed          func(ref catalogue.Ref)
}

// Prepared is the handle Initialize returns and every later operation
// takes. It is discarded and replaced wholesale by the next Initialize
// call; holding a stale Prepared after a new Initialize is safe but
// reads frozen data.
type Prepared struct {
	Generation     uint64
	ClassRef       document.SourceRef
	BackgroundRef  document.SourceRef
	ClassRoot      ast.Node
	BackgroundRoot ast.Node
	state          *selector.State
}

// RenderResult binds each scope's flattened node-id -> Widget map, the
// shape Collect needs to read back live widget state.
type RenderResult struct {
	Widgets map[string]map[string]renderer.Widget
}

// Filters selects which scopes Collect reads from.
type Filters struct {
	Class      bool
	Background bool
}

// Core is the C9 façade. It owns the long-lived LookupIndex and the
// collaborators every operation needs; Prepared and its SelectorState
// are scoped to one initialize->collect cycle.
type Core struct {
	mu sync.Mutex

	idx          *lookup.Index
	store        catalogue.ItemStore
	catalogueDoc document.Catalogue
	ids          extractor.IDGenerator
	wealth       *wealth.Converter

	cfg    Config
	notify Notifications

	generation uint64
	prepared   *Prepared
}

// New builds a Core bound to a pre-built LookupIndex and its
// collaborators. Build the index once per session via lookup.Build (or
// lookup.RedisCache.Load) before constructing Core.
func New(idx *lookup.Index, store catalogue.ItemStore, catalogueDoc document.Catalogue, ids extractor.IDGenerator, roller dice.Roller, cfg Config, notify Notifications) *Core {
	return &Core{
		idx:          idx,
		store:        store,
		catalogueDoc: catalogueDoc,
		ids:          ids,
		wealth:       wealth.New(roller),
		cfg:          cfg,
		notify:       notify,
	}
}

// Initialize tears down any previous cycle, extracts and plans both
// scopes concurrently, and returns a fresh Prepared handle. Overlapping
// calls serialize on the core's mutex, satisfying the "later call awaits
// the earlier to reset()" ordering guarantee; there is no partial
// hand-off between them.
func (c *Core) Initialize(ctx context.Context, classRef, backgroundRef document.SourceRef) (*Prepared, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	gen := c.generation
	state := selector.New()

	ex := extractor.New(c.store, c.ids, extractor.Options{RefResolveTimeout: c.cfg.RefResolveTimeout})

	var classRoot, backgroundRoot ast.Node
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if root, ok := ex.Extract(gctx, c.catalogueDoc, classRef); ok {
			classRoot = planner.Plan(root)
		}
		return nil
	})
	g.Go(func() error {
		if root, ok := ex.Extract(gctx, c.catalogueDoc, backgroundRef); ok {
			backgroundRoot = planner.Plan(root)
		}
		return nil
	})
	_ = g.Wait() // neither branch returns an error; extraction degrades to "not ok" internally

	prepared := &Prepared{
		Generation:     gen,
		ClassRef:       classRef,
		BackgroundRef:  backgroundRef,
		ClassRoot:      classRoot,
		BackgroundRoot: backgroundRoot,
		state:          state,
	}
	c.prepared = prepared
	return prepared, nil
}

// Render produces the Renderer output for both scopes and binds widget
// handles into target through view. It is re-entrant: calling it again
// on the same Prepared re-renders from scratch into whatever scopes
// target represents (a fresh View each call is the caller's
// responsibility — Render does not dispose a prior target).
func (c *Core) Render(_ context.Context, view renderer.View, prepared *Prepared) (*RenderResult, error) {
	if prepared == nil || prepared.state == nil {
		return nil, errtax.New(errtax.KindCollectorInconsistent, "render", errors.New("nil prepared handle"))
	}

	result := &RenderResult{Widgets: make(map[string]map[string]renderer.Widget)}
	opts := renderer.Options{Favorites: c.cfg.Favorites, AllowOptOutOfMandatory: c.cfg.AllowOptOutOfMandatory}

	if !c.cfg.SkipClassEquipment && prepared.ClassRoot != nil {
		scope := prepared.state.BeginScope("class")
		w := renderer.RenderScope(c.idx, scope, prepared.state, prepared.ClassRoot, opts)
		renderer.Bind(view, scope, w)
		result.Widgets["class"] = flatten(w)
	}
	if !c.cfg.SkipBackgroundEquipment && prepared.BackgroundRoot != nil {
		scope := prepared.state.BeginScope("background")
		w := renderer.RenderScope(c.idx, scope, prepared.state, prepared.BackgroundRoot, opts)
		renderer.Bind(view, scope, w)
		result.Widgets["background"] = flatten(w)
	}

	if c.notify.OnRendered != nil {
		c.notify.OnRendered()
	}
	return result, nil
}

// Collect reconstructs the item record list for the scopes filters
// selects, reading live values through ws. Deterministic given identical
// widget state.
func (c *Core) Collect(prepared *Prepared, rendered *RenderResult, ws collector.WidgetState, filters Filters) []collector.Record {
	if prepared == nil || prepared.state == nil || rendered == nil {
		return nil
	}
	opts := collector.Options{NonStackableKinds: c.cfg.NonStackableKinds}

	var out []collector.Record
	if filters.Class {
		if scope := prepared.state.Scope("class"); scope != nil {
			out = append(out, collector.Collect(scope, rendered.Widgets["class"], ws, opts)...)
		}
	}
	if filters.Background {
		if scope := prepared.state.Scope("background"); scope != nil {
			out = append(out, collector.Collect(scope, rendered.Widgets["background"], ws, opts)...)
		}
	}
	return out
}

// ConvertWealth is pure and has no effect on selector state.
func (c *Core) ConvertWealth(ctx context.Context, descriptor *document.WealthDescriptor) wealth.CoinMap {
	return c.wealth.Convert(ctx, descriptor)
}

// flatten indexes every node in a rendered Widget tree by its node id,
// the shape Collect needs to read widget values back by id.
func flatten(w renderer.Widget) map[string]renderer.Widget {
	out := make(map[string]renderer.Widget)
	var visit func(renderer.Widget)
	visit = func(w renderer.Widget) {
		if w == nil {
			return
		}
		out[w.NodeID()] = w
		if g, ok := w.(*renderer.Group); ok {
			for _, child := range g.Children {
				visit(child)
			}
		}
	}
	visit(w)
	return out
}

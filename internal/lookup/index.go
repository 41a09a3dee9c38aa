// Package lookup builds and serves the LookupIndex: a one-time
// classification of every catalogue item into proficiency/category
// buckets. It is the only long-lived, read-only state in the core —
// built once per session and invalidated only when the set of active
// packs changes.
package lookup

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/errtax"
)

// Index is a read-only, concurrency-safe classification of the active
// catalogue. Any number of goroutines may call its lookup methods once
// Build has returned.
type Index struct {
	buckets   map[catalogue.CategoryKey][]catalogue.Ref
	byLocalID map[string][]catalogue.Ref // localID -> refs across packs, packHint breaks ties
	store     catalogue.ItemStore
}

// BuildResult pairs the built Index with the pack failures encountered
// along the way, so a caller can surface a PackUnavailable notification
// without the build itself failing.
type BuildResult struct {
	Index  *Index
	Errors []*errtax.Error
}

// Build reads every active pack's index (not full documents) and
// classifies weapon/armor/shield/tool/focus/equipment items into
// buckets. A pack whose index read fails is logged via the returned
// errors and skipped; the index is still built from whatever packs
// succeeded.
func Build(ctx context.Context, store catalogue.ItemStore, packs []catalogue.PackRef) *BuildResult {
	idx := &Index{
		buckets:   make(map[catalogue.CategoryKey][]catalogue.Ref),
		byLocalID: make(map[string][]catalogue.Ref),
		store:     store,
	}

	var mu sync.Mutex
	var buildErrs []*errtax.Error

	g, gctx := errgroup.WithContext(ctx)
	for _, pack := range packs {
		pack := pack
		g.Go(func() error {
			entries, err := store.PackIndex(gctx, pack.ID)
			if err != nil {
				mu.Lock()
				buildErrs = append(buildErrs, errtax.New(errtax.KindPackUnavailable, pack.ID, err))
				mu.Unlock()
				return nil // pack skipped, build continues
			}

			mu.Lock()
			for _, e := range entries {
				idx.index(pack, e)
			}
			mu.Unlock()
			return nil
		})
	}
	// Build never fails the whole operation on a pack error; the only
	// error errgroup could propagate here is ctx cancellation.
	_ = g.Wait()

	for key := range idx.buckets {
		sortRefsByName(idx.buckets[key])
	}

	return &BuildResult{Index: idx, Errors: buildErrs}
}

func (idx *Index) index(pack catalogue.PackRef, entry catalogue.IndexEntry) {
	ref := catalogue.Ref{
		ID:      pack.ID + "." + entry.ID,
		Name:    entry.Name,
		Kind:    entry.Kind,
		PackID:  pack.ID,
		LocalID: entry.ID,
		System:  entry.System,
	}

	idx.byLocalID[entry.ID] = append(idx.byLocalID[entry.ID], ref)

	if !catalogue.IsClassifiable(entry.Kind) {
		return
	}
	for _, key := range classify(entry) {
		idx.buckets[key] = append(idx.buckets[key], ref)
	}
}

// LookupByCategory returns the bucket for key, ordered by name and
// stable across calls. The returned slice is a defensive copy.
func (idx *Index) LookupByCategory(key catalogue.CategoryKey) []catalogue.Ref {
	refs := idx.buckets[key]
	out := make([]catalogue.Ref, len(refs))
	copy(out, refs)
	return out
}

// ResolveRef locates an item by its local id, preferring packHint when
// more than one pack defines that id. Returns nil if no pack defines it.
func (idx *Index) ResolveRef(localID, packHint string) *catalogue.Ref {
	candidates := idx.byLocalID[localID]
	if len(candidates) == 0 {
		return nil
	}
	if packHint != "" {
		for i := range candidates {
			if candidates[i].PackID == packHint {
				ref := candidates[i]
				return &ref
			}
		}
	}
	ref := candidates[0]
	return &ref
}

func sortRefsByName(refs []catalogue.Ref) {
	sort.SliceStable(refs, func(i, j int) bool {
		return strings.ToLower(refs[i].Name) < strings.ToLower(refs[j].Name)
	})
}

package catalogue

import "context"

// PackRef identifies one content pack in the active catalogue.
type PackRef struct {
	ID   string
	Name string
}

// IndexEntry is one row of a pack's index, the lightweight listing
// ItemStore reads during LookupIndex.build instead of full documents.
type IndexEntry struct {
	ID     string
	Name   string
	Kind   Kind
	Tags   []string
	System map[string]any
}

// ItemStore is the host's catalogue access, consumed by LookupIndex and
// Extractor. The core never reads packs directly.
//
// ResolveRef favors packHint when it is non-empty and the item exists in
// that pack; otherwise it searches the active catalogue. PackIndex scans
// one pack's lightweight index (not full documents). PackList enumerates
// the packs currently active in the session.
type ItemStore interface {
	ResolveRef(ctx context.Context, localID, packHint string) (*Ref, error)
	PackIndex(ctx context.Context, packID string) ([]IndexEntry, error)
	PackList(ctx context.Context) ([]PackRef, error)
}

// Package cataloguefake provides a hand-rolled, deterministic ItemStore
// test double, in the manner of the dice package's manual mock roller:
// callers preload packs and items instead of recording gomock
// expectations, which keeps equipment-tree fixtures readable.
package cataloguefake

import (
	"context"
	"fmt"
	"sync"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
)

// Store is a fully in-memory catalogue.ItemStore.
type Store struct {
	mu      sync.Mutex
	packs   []catalogue.PackRef
	entries map[string][]catalogue.IndexEntry // packID -> entries
	refs    map[string]catalogue.Ref          // packID+"."+localID -> Ref
	failing map[string]error                  // packID -> forced PackIndex error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string][]catalogue.IndexEntry),
		refs:    make(map[string]catalogue.Ref),
		failing: make(map[string]error),
	}
}

// AddPack registers a pack so it shows up in PackList.
func (s *Store) AddPack(pack catalogue.PackRef) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packs = append(s.packs, pack)
	return s
}

// FailPack makes PackIndex return err for packID, simulating an
// unreadable pack.
func (s *Store) FailPack(packID string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[packID] = err
	return s
}

// AddItem registers one catalogue item under packID, available both via
// PackIndex and ResolveRef.
func (s *Store) AddItem(packID string, entry catalogue.IndexEntry) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[packID] = append(s.entries[packID], entry)
	s.refs[packID+"."+entry.ID] = catalogue.Ref{
		ID:      packID + "." + entry.ID,
		Name:    entry.Name,
		Kind:    entry.Kind,
		PackID:  packID,
		LocalID: entry.ID,
		System:  entry.System,
	}
	return s
}

func (s *Store) PackList(_ context.Context) ([]catalogue.PackRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalogue.PackRef, len(s.packs))
	copy(out, s.packs)
	return out, nil
}

func (s *Store) PackIndex(_ context.Context, packID string) ([]catalogue.IndexEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failing[packID]; ok {
		return nil, err
	}
	out := make([]catalogue.IndexEntry, len(s.entries[packID]))
	copy(out, s.entries[packID])
	return out, nil
}

func (s *Store) ResolveRef(_ context.Context, localID, packHint string) (*catalogue.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if packHint != "" {
		if ref, ok := s.refs[packHint+"."+localID]; ok {
			return &ref, nil
		}
	}
	for key, ref := range s.refs {
		_ = key
		if ref.LocalID == localID {
			found := ref
			return &found, nil
		}
	}
	return nil, fmt.Errorf("cataloguefake: no item %q", localID)
}

package document

import "context"

// SourceKind distinguishes the two scopes a character draws starting
// equipment from.
type SourceKind string

const (
	SourceClass      SourceKind = "class"
	SourceBackground SourceKind = "background"
)

// SourceRef identifies the class or background item the Extractor reads
// a descriptor list from.
type SourceRef struct {
	Kind   SourceKind
	ID     string
	PackID string
}

// WealthDescriptor is the raw starting-wealth expression attached to a
// class or background, read alongside its equipment descriptors.
type WealthDescriptor struct {
	Literal    bool   // true: Amount is a literal count in Denomination
	Amount     int    // literal amount, ignored when Literal is false
	Formula    string // dice formula, e.g. "5d4", ignored when Literal is true
	Multiplier int    // applied before conversion; 0 and 1 both mean "no multiplier"
	Denomination string // "pp" | "gp" | "ep" | "sp" | "cp"
}

// Catalogue is the DocumentCatalogue collaborator: it supplies the source
// items (class, background) the Extractor reads equipment descriptors
// from. Description enrichment and the rest of the document catalogue's
// responsibilities live entirely on the host side.
type Catalogue interface {
	GetStartingEquipment(ctx context.Context, ref SourceRef) (List, error)
	GetStartingWealth(ctx context.Context, ref SourceRef) (*WealthDescriptor, error)
}

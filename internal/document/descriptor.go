// Package document models the raw, host-shaped equipment descriptors the
// Extractor reads from a class or background, and the DocumentCatalogue
// collaborator that supplies them. Descriptors are the pre-AST wire shape:
// flat entries with a parent-reference field, exactly as a content pack
// author would write them, before the Extractor gives them graph identity.
package document

// EntryType tags what one descriptor entry represents before extraction.
type EntryType string

const (
	EntryAND      EntryType = "AND"
	EntryOR       EntryType = "OR"
	EntryItem     EntryType = "item"     // concrete ref, or comma-separated set -> LINKED
	EntryCategory EntryType = "category" // proficiency + shape keyed bucket
	EntryFocus    EntryType = "focus"
	EntryFreeform EntryType = "freeform" // legacy free-text description
)

// Entry is one row of a source item's starting-equipment descriptor list.
// GroupID is this entry's own identity when it is a structural AND/OR;
// ParentGroupID links a child entry (structural or leaf) to its parent
// group. Entries with an empty ParentGroupID are roots.
type Entry struct {
	Type          EntryType
	GroupID       string
	ParentGroupID string
	Count         int // multiplicity for item/category entries, ignored otherwise

	// Content key, meaning depends on Type:
	//   EntryItem:     RefKey (comma-separated for a LINKED bundle), optional RefPack
	//   EntryCategory: Proficiency + Shape (or ToolType/Tradition for non-weapon axes)
	//   EntryFocus:    Tradition
	//   EntryFreeform: Text
	RefKey      string
	RefPack     string
	Proficiency string
	Shape       string
	ToolType    string
	Tradition   string
	Text        string

	Label string // optional display override, mainly for LINKED bundles
}

// List is the ordered descriptor set attached to one source item.
type List []Entry

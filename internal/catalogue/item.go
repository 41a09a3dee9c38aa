// Package catalogue defines the data the equipment resolution core reads
// from the host's content packs, and the ItemStore interface it reads
// them through. Nothing in this package touches the host's actual
// compendium; concrete lookups are supplied by whoever wires ItemStore.
package catalogue

// Kind classifies a catalogue item for bucketing and rendering decisions.
type Kind string

const (
	KindWeapon      Kind = "weapon"
	KindArmor       Kind = "armor"
	KindShield      Kind = "shield"
	KindTool        Kind = "tool"
	KindConsumable  Kind = "consumable"
	KindContainer   Kind = "container"
	KindEquipment   Kind = "equipment"
	KindLoot        Kind = "loot"
	KindFocus       Kind = "focus"
	KindOther       Kind = "other"
	KindUnresolved  Kind = "unresolved"
	KindPlaceholder Kind = "placeholder"
)

// classifiable lists the kinds LookupIndex buckets by declarative tags.
// Everything else is indexed only by ItemRef.
var classifiable = map[Kind]bool{
	KindWeapon:    true,
	KindArmor:     true,
	KindShield:    true,
	KindTool:      true,
	KindFocus:     true,
	KindEquipment: true,
}

// IsClassifiable reports whether LookupIndex buckets items of this kind.
func IsClassifiable(k Kind) bool {
	return classifiable[k]
}

// Ref is an opaque, stable identity for one catalogue item plus the
// dereferenced fields the rest of the core needs. A Ref with
// Kind == KindUnresolved carries only Name (the literal text the
// extractor saw) and no guarantee the item exists.
type Ref struct {
	ID     string // opaque stable identifier, e.g. "pack.localId"
	Name   string
	Kind   Kind
	PackID string
	LocalID string
	System map[string]any // declarative tags: proficiency, shape, tool type, tradition, ammunition, stackable...
}

// Unresolved reports whether this ref failed to dereference against the
// catalogue (timeout, deleted item, or typo in a source descriptor).
func (r Ref) Unresolved() bool {
	return r.Kind == KindUnresolved || r.Kind == KindPlaceholder
}

// Tag reads a string tag out of System, defaulting to "".
func (r Ref) Tag(key string) string {
	if r.System == nil {
		return ""
	}
	s, _ := r.System[key].(string)
	return s
}

// BoolTag reads a bool tag out of System, defaulting to false.
func (r Ref) BoolTag(key string) bool {
	if r.System == nil {
		return false
	}
	b, _ := r.System[key].(bool)
	return b
}

// NonStackableDefault is the set of kinds that do not merge by default
// when the Collector sees two rendered atoms pointing at the same ref.
func NonStackableDefault() map[Kind]bool {
	return map[Kind]bool{
		KindWeapon: true,
		KindArmor:  true,
		KindShield: true,
	}
}

// CategoryKey addresses one bucket inside a LookupIndex. Axis picks the
// bucket family; the remaining fields narrow within it. Two CategoryKeys
// with the same Axis but different Proficiency/Shape/ToolType/Tradition
// address different buckets.
type CategoryKey struct {
	Axis        Kind   // weapon | armor | tool | focus | shield | equipment
	Proficiency string // "simple" | "martial" | "light" | "medium" | "heavy" | ""
	Shape       string // "melee" | "ranged" | "" (weapons)
	ToolType    string // "artisan" | "gaming-set" | "musical-instrument" | "" (tools)
	Tradition   string // "arcane" | "druidic" | "holy" | "" (focuses)
}

// String renders a stable, human-readable identity for logging and map
// keys that don't need the full struct comparability.
func (k CategoryKey) String() string {
	s := string(k.Axis)
	for _, part := range []string{k.Proficiency, k.Shape, k.ToolType, k.Tradition} {
		if part != "" {
			s += "/" + part
		}
	}
	return s
}

package lookup

import "github.com/KirkDiggler/heromancer/internal/catalogue"

// classifiers is a table keyed by catalogue.Kind rather than an
// `if kind == ... else if kind == ...` chain, per the core's policy of
// replacing ad-hoc type/kind dispatch with lookup tables.
var classifiers = map[catalogue.Kind]func(catalogue.IndexEntry) []catalogue.CategoryKey{
	catalogue.KindWeapon:    classifyWeapon,
	catalogue.KindArmor:     classifyArmor,
	catalogue.KindShield:    classifyShield,
	catalogue.KindTool:      classifyTool,
	catalogue.KindFocus:     classifyFocus,
	catalogue.KindEquipment: classifyEquipment,
}

// classify returns every bucket key entry belongs in. An item can match
// more than one bucket (e.g. a martial melee weapon is bucketed under
// both "martial melee" and plain "martial"); classify
// returns each independently and the caller inserts into all of them.
func classify(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	fn, ok := classifiers[entry.Kind]
	if !ok {
		return nil
	}
	return fn(entry)
}

func tag(entry catalogue.IndexEntry, key string) string {
	if entry.System == nil {
		return ""
	}
	s, _ := entry.System[key].(string)
	return s
}

func classifyWeapon(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	proficiency := tag(entry, "proficiency") // "simple" | "martial"
	shape := tag(entry, "shape")              // "melee" | "ranged"
	if proficiency == "" {
		return nil
	}
	keys := []catalogue.CategoryKey{{Axis: catalogue.KindWeapon, Proficiency: proficiency, Shape: shape}}
	if shape != "" {
		// Also bucket under the proficiency alone, for choices that don't
		// care about melee vs. ranged (e.g. "any martial weapon").
		keys = append(keys, catalogue.CategoryKey{Axis: catalogue.KindWeapon, Proficiency: proficiency})
	}
	return keys
}

func classifyArmor(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	proficiency := tag(entry, "proficiency") // "light" | "medium" | "heavy"
	if proficiency == "" {
		return nil
	}
	return []catalogue.CategoryKey{{Axis: catalogue.KindArmor, Proficiency: proficiency}}
}

func classifyShield(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	return []catalogue.CategoryKey{{Axis: catalogue.KindShield}}
}

func classifyTool(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	toolType := tag(entry, "toolType")
	if toolType == "" {
		return nil
	}
	return []catalogue.CategoryKey{{Axis: catalogue.KindTool, ToolType: toolType}}
}

func classifyFocus(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	tradition := tag(entry, "tradition")
	if tradition == "" {
		return nil
	}
	return []catalogue.CategoryKey{{Axis: catalogue.KindFocus, Tradition: tradition}}
}

func classifyEquipment(entry catalogue.IndexEntry) []catalogue.CategoryKey {
	// Generic "equipment" items only bucket when a pack explicitly tags
	// them as belonging to a named equipment category (e.g. musical
	// instruments, which the rulebook treats as tools for proficiency
	// purposes but ships under the "equipment" kind).
	toolType := tag(entry, "toolType")
	if toolType == "" {
		return nil
	}
	return []catalogue.CategoryKey{{Axis: catalogue.KindTool, ToolType: toolType}}
}

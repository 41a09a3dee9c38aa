// Package extractor builds an EquipmentAST from the raw descriptor list
// a DocumentCatalogue attaches to a class or background. It tolerates
// missing and legacy shapes: a single malformed entry never aborts
// extraction, and Extract itself never returns an error to its caller —
// failures are recorded as placeholder nodes instead.
package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/heromancer/internal/ast"
	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/document"
)

// IDGenerator hands out globally unique node ids at extraction time.
// Implementations need not be cryptographically random; google/uuid's
// generator is the default.
type IDGenerator interface {
	New() string
}

// Options configures one Extract call.
type Options struct {
	RefResolveTimeout time.Duration // default 3s, per-ref
}

func (o Options) timeout() time.Duration {
	if o.RefResolveTimeout <= 0 {
		return 3 * time.Second
	}
	return o.RefResolveTimeout
}

// Extractor turns descriptor lists into EquipmentAST trees.
type Extractor struct {
	store catalogue.ItemStore
	ids   IDGenerator
	opts  Options
}

// New builds an Extractor bound to store for ref dereferencing and ids
// for node identity.
func New(store catalogue.ItemStore, ids IDGenerator, opts Options) *Extractor {
	return &Extractor{store: store, ids: ids, opts: opts}
}

// Extract reads ref's descriptor list from catalogueDoc and returns the
// root EquipmentNode. A nil/unresolvable source yields a nil root and
// ok=false; the caller (Public API) turns that into an empty Prepared
// handle rather than propagating an error.
func (e *Extractor) Extract(ctx context.Context, catalogueDoc document.Catalogue, ref document.SourceRef) (ast.Node, bool) {
	if ref.ID == "" {
		return nil, false
	}

	entries, err := catalogueDoc.GetStartingEquipment(ctx, ref)
	if err != nil || len(entries) == 0 {
		return nil, false
	}

	roots, childrenOf := partition(entries)
	if len(roots) == 0 {
		return nil, false
	}

	built := make([]ast.Node, 0, len(roots))
	for _, entry := range roots {
		built = append(built, e.build(ctx, entry, childrenOf))
	}

	if len(built) == 1 {
		return built[0], true
	}
	root := &ast.And{NodeID: e.ids.New(), Items: built}
	ast.SortAndChildren(root.Items)
	return root, true
}

// partition splits entries into roots (no parent group) and a lookup of
// each group's direct children, keyed by GroupID.
func partition(entries document.List) (roots document.List, childrenOf map[string]document.List) {
	childrenOf = make(map[string]document.List)
	for _, e := range entries {
		if e.ParentGroupID == "" {
			roots = append(roots, e)
		} else {
			childrenOf[e.ParentGroupID] = append(childrenOf[e.ParentGroupID], e)
		}
	}
	return roots, childrenOf
}

func (e *Extractor) build(ctx context.Context, entry document.Entry, childrenOf map[string]document.List) ast.Node {
	switch entry.Type {
	case document.EntryAND:
		return e.buildGroup(ctx, entry, childrenOf, true)
	case document.EntryOR:
		return e.buildGroup(ctx, entry, childrenOf, false)
	case document.EntryItem:
		return e.buildItem(ctx, entry)
	case document.EntryCategory:
		return e.buildCategory(entry)
	case document.EntryFocus:
		return &ast.Focus{NodeID: e.ids.New(), Tradition: entry.Tradition, Count: countOrOne(entry.Count)}
	case document.EntryFreeform:
		return e.buildFreeform(entry)
	default:
		return e.placeholder(fmt.Sprintf("unknown entry type %q", entry.Type))
	}
}

func (e *Extractor) buildGroup(ctx context.Context, entry document.Entry, childrenOf map[string]document.List, and bool) ast.Node {
	childEntries := childrenOf[entry.GroupID]
	children := make([]ast.Node, 0, len(childEntries))
	for _, c := range childEntries {
		children = append(children, e.build(ctx, c, childrenOf))
	}

	if and {
		node := &ast.And{NodeID: e.ids.New(), GroupID: entry.GroupID, Items: children}
		ast.SortAndChildren(node.Items)
		return node
	}

	// Invariant 3: a singleton OR collapses to its child.
	if len(children) == 1 {
		return children[0]
	}
	if len(children) == 0 {
		return e.placeholder("empty OR group " + entry.GroupID)
	}
	return &ast.Or{NodeID: e.ids.New(), Label: entry.Label, DefaultIndex: defaultIndex(children), Items: children}
}

// defaultIndex picks the first child that resolves fully, per the
// renderer's documented default policy — computed here too so a caller
// that renders without re-deriving defaults still gets one.
func defaultIndex(children []ast.Node) int {
	for i, c := range children {
		if item, ok := c.(*ast.Item); ok {
			if item.Ref.Unresolved() || item.Placeholder {
				continue
			}
		}
		return i
	}
	return 0
}

func (e *Extractor) buildItem(ctx context.Context, entry document.Entry) ast.Node {
	keys := strings.Split(entry.RefKey, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}

	if len(keys) == 1 {
		return e.resolveItem(ctx, keys[0], entry.RefPack, countOrOne(entry.Count), entry.Label)
	}

	// Comma-separated set -> LINKED bundle (invariant 2: flat, no AND/OR).
	items := make([]ast.Node, 0, len(keys))
	for _, k := range keys {
		items = append(items, e.resolveItem(ctx, k, entry.RefPack, 1, ""))
	}
	label := entry.Label
	if label == "" {
		label = strings.Join(keys, " and ")
	}
	return &ast.Linked{NodeID: e.ids.New(), Label: label, Items: items}
}

func (e *Extractor) resolveItem(ctx context.Context, key, packHint string, count int, label string) *ast.Item {
	rctx, cancel := context.WithTimeout(ctx, e.opts.timeout())
	defer cancel()

	ref, err := e.store.ResolveRef(rctx, key, packHint)
	if err != nil || ref == nil {
		return &ast.Item{
			NodeID: e.ids.New(),
			Ref:    catalogue.Ref{Name: key, Kind: catalogue.KindUnresolved},
			Count:  count,
			Label:  label,
		}
	}
	return &ast.Item{NodeID: e.ids.New(), Ref: *ref, Count: count, Label: label}
}

func (e *Extractor) buildCategory(entry document.Entry) ast.Node {
	key := catalogue.CategoryKey{
		Axis:        categoryAxis(entry),
		Proficiency: entry.Proficiency,
		Shape:       entry.Shape,
		ToolType:    entry.ToolType,
		Tradition:   entry.Tradition,
	}
	return &ast.Category{NodeID: e.ids.New(), Key: key, Count: countOrOne(entry.Count)}
}

func categoryAxis(entry document.Entry) catalogue.Kind {
	switch {
	case entry.ToolType != "":
		return catalogue.KindTool
	case entry.Tradition != "":
		return catalogue.KindFocus
	case entry.Shape != "" || entry.Proficiency == "simple" || entry.Proficiency == "martial":
		return catalogue.KindWeapon
	case entry.Proficiency == "light" || entry.Proficiency == "medium" || entry.Proficiency == "heavy":
		return catalogue.KindArmor
	default:
		return catalogue.KindEquipment
	}
}

// buildFreeform best-effort parses a legacy free-text description. The
// heuristic line-by-line parser of the original host is intentionally
// not reproduced; a free-form entry becomes a single-item AND whose ref
// is the literal text, marked unresolved. The renderer emits no widget
// for an unresolved ref, so the text is not displayed.
func (e *Extractor) buildFreeform(entry document.Entry) ast.Node {
	text := strings.TrimSpace(entry.Text)
	if text == "" {
		return e.placeholder("empty freeform entry")
	}
	item := &ast.Item{
		NodeID: e.ids.New(),
		Ref:    catalogue.Ref{Name: text, Kind: catalogue.KindUnresolved},
		Count:  1,
	}
	return &ast.And{NodeID: e.ids.New(), Items: []ast.Node{item}}
}

func (e *Extractor) placeholder(reason string) ast.Node {
	return &ast.Item{
		NodeID:      e.ids.New(),
		Ref:         catalogue.Ref{Name: reason, Kind: catalogue.KindPlaceholder},
		Count:       1,
		Placeholder: true,
	}
}

func countOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

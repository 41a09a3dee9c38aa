// Package discordview renders the core's declarative widget tree onto
// Discord message components: a reference View implementation, not
// part of the core itself.
package discordview

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/heromancer/internal/renderer"
	"github.com/KirkDiggler/heromancer/internal/selector"
)

const maxComponentsPerRow = 5

// Adapter accumulates discordgo message components as the renderer
// binds widgets into it, packing them into action rows in emission
// order. One Adapter is built per render; it is not reused across
// scopes.
type Adapter struct {
	scope      string
	rows       []discordgo.MessageComponent
	currentRow []discordgo.MessageComponent
}

// New builds an Adapter for scope ("class" or "background"), used to
// namespace custom IDs so a class select and a background select never
// collide.
func New(scope string) *Adapter {
	return &Adapter{scope: scope}
}

var _ renderer.View = (*Adapter)(nil)

// NewContainer starts a fresh row for a Group's children. Discord has
// no native "container" component; AND/OR grouping is expressed purely
// by adjacency of the rows that follow.
func (a *Adapter) NewContainer(nodeID string, _ renderer.GroupKind) selector.WidgetHandle {
	a.newRow()
	return nodeID
}

// NewSelect renders an OR/CATEGORY choice as a Discord select menu.
func (a *Adapter) NewSelect(nodeID string, s *renderer.Select) selector.WidgetHandle {
	options := make([]discordgo.SelectMenuOption, len(s.Options))
	for i, opt := range s.Options {
		options[i] = discordgo.SelectMenuOption{
			Label:   optionLabel(opt),
			Value:   fmt.Sprintf("%d", i),
			Default: i == s.DefaultIndex,
		}
	}

	menu := discordgo.SelectMenu{
		CustomID:    a.customID("select", nodeID),
		Placeholder: "Choose one",
		Options:     options,
	}
	a.add(menu)
	return menu
}

// NewCheckbox renders a mandatory or opt-out item as a toggle button.
// Disabled mandatory items render as a pre-pressed, non-interactive
// button so the player still sees what they're getting.
func (a *Adapter) NewCheckbox(nodeID string, c *renderer.Checkbox) selector.WidgetHandle {
	style := discordgo.SecondaryButton
	if c.PreChecked {
		style = discordgo.SuccessButton
	}

	button := discordgo.Button{
		Label:    checkboxLabel(c),
		Style:    style,
		CustomID: a.customID("toggle", nodeID),
		Disabled: c.Disabled,
	}
	a.add(button)
	return button
}

// NewLinked renders a bundled choice (e.g. weapon+ammo) as a single
// informational, disabled button — bundles are always granted as a
// unit, never toggled piecewise.
func (a *Adapter) NewLinked(nodeID string, l *renderer.Linked) selector.WidgetHandle {
	button := discordgo.Button{
		Label:    l.VisibleLabel,
		Style:    discordgo.SuccessButton,
		CustomID: a.customID("linked", nodeID),
		Disabled: true,
	}
	a.add(button)
	return button
}

// NewFavorite renders a star toggle alongside its sibling atom.
func (a *Adapter) NewFavorite(nodeID string, f *renderer.Favorite) selector.WidgetHandle {
	button := discordgo.Button{
		Label:    "★",
		Style:    discordgo.SecondaryButton,
		CustomID: a.customID("favorite", f.For),
	}
	a.add(button)
	return button
}

// Components returns the built action rows, ready to attach to a
// discordgo.InteractionResponseData or MessageSend.
func (a *Adapter) Components() []discordgo.MessageComponent {
	a.newRow()
	return a.rows
}

func (a *Adapter) customID(action, nodeID string) string {
	return fmt.Sprintf("heromancer:%s:%s:%s", a.scope, action, nodeID)
}

func (a *Adapter) add(c discordgo.MessageComponent) {
	if len(a.currentRow) >= maxComponentsPerRow {
		a.newRow()
	}
	a.currentRow = append(a.currentRow, c)
}

func (a *Adapter) newRow() {
	if len(a.currentRow) == 0 {
		return
	}
	a.rows = append(a.rows, discordgo.ActionsRow{Components: a.currentRow})
	a.currentRow = nil
}

func optionLabel(opt renderer.Option) string {
	if opt.Quantity > 1 {
		return fmt.Sprintf("%s x%d", opt.Label, opt.Quantity)
	}
	return opt.Label
}

func checkboxLabel(c *renderer.Checkbox) string {
	label := c.Ref.Name
	if c.Quantity > 1 {
		return fmt.Sprintf("%s x%d", label, c.Quantity)
	}
	return label
}

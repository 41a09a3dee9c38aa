// Command heromancerctl is a demo harness for the equipment resolution
// core: it builds a small in-memory fixture catalogue and drives
// Initialize -> Render -> Collect -> ConvertWealth from the command
// line, binding the render step to the Discord view adapter so the
// produced component tree can be inspected without a live bot.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/heromancer/internal/config"
	"github.com/KirkDiggler/heromancer/internal/core"
	mockdice "github.com/KirkDiggler/heromancer/internal/dice/mock"
	"github.com/KirkDiggler/heromancer/internal/document"
	"github.com/KirkDiggler/heromancer/internal/lookup"
	"github.com/KirkDiggler/heromancer/internal/uuid"
	"github.com/KirkDiggler/heromancer/internal/view/discordview"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with process environment")
	}

	if err := rootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "heromancerctl",
		Short: "Drive the equipment resolution core against a fixture catalogue",
	}
	root.AddCommand(resolveCmd())
	return root
}

func resolveCmd() *cobra.Command {
	var favorites bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Initialize, render, and collect a fighter's starting equipment",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runResolve(favorites)
		},
	}
	cmd.Flags().BoolVar(&favorites, "favorites", false, "emit Favorite widgets alongside each atom")
	return cmd
}

func runResolve(favorites bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	store, doc := buildFighterFixture()

	packs, err := store.PackList(ctx)
	if err != nil {
		return fmt.Errorf("list packs: %w", err)
	}
	build := lookup.Build(ctx, store, packs)
	for _, buildErr := range build.Errors {
		log.Printf("lookup: %v", buildErr)
	}

	c := core.New(build.Index, store, doc, uuid.NewGoogleUUIDGenerator(), mockdice.NewManualMockRoller(),
		core.Config{
			Favorites:              favorites,
			AllowOptOutOfMandatory: cfg.Core.AllowOptOutOfMandatory,
			RefResolveTimeout:      cfg.Core.RefResolveTimeout,
		},
		core.Notifications{OnRendered: func() { log.Println("rendered") }},
	)

	prepared, err := c.Initialize(ctx,
		document.SourceRef{Kind: document.SourceClass, ID: "fighter"},
		document.SourceRef{},
	)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	view := discordview.New("class")
	rendered, err := c.Render(ctx, view, prepared)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	fmt.Printf("rendered %d class widgets\n", len(rendered.Widgets["class"]))
	for _, row := range view.Components() {
		fmt.Printf("row: %+v\n", row)
	}

	records := c.Collect(prepared, rendered, acceptAllDefaults{}, core.Filters{Class: true})
	fmt.Println("collected items:")
	for _, rec := range records {
		fmt.Printf("  %dx %s (favorite=%v)\n", rec.Quantity, rec.Ref.Name, rec.Favorite)
	}

	coins := c.ConvertWealth(ctx, &document.WealthDescriptor{Formula: "5d4", Multiplier: 10, Denomination: "gp"})
	fmt.Printf("wealth roll: %d gold\n", coins.Gold)

	return nil
}

// acceptAllDefaults is a WidgetState that checks every checkbox and
// picks the first option of every Select, whatever the Renderer
// pre-selected.
type acceptAllDefaults struct{}

func (acceptAllDefaults) SelectedOption(string) int { return 0 }
func (acceptAllDefaults) Checked(string) bool       { return true }
func (acceptAllDefaults) Favorited(string) bool     { return false }

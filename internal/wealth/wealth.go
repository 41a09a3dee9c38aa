// Package wealth converts a starting-wealth descriptor (literal amount
// or dice formula, optionally multiplied) into per-denomination coin
// counts.
package wealth

import (
	"context"

	"github.com/KirkDiggler/heromancer/internal/dice"
	"github.com/KirkDiggler/heromancer/internal/document"
)

// CoinMap is the non-negative coin count per denomination. Unset
// denominations are zero; the converter never splits across them.
type CoinMap struct {
	Platinum int
	Gold     int
	Electrum int
	Silver   int
	Copper   int
}

// Converter evaluates wealth descriptors via a Dice collaborator.
type Converter struct {
	dice dice.Roller
}

// New binds a Converter to roller. Pass dice.NewRandomRoller() in
// production; tests substitute a ManualMockRoller.
func New(roller dice.Roller) *Converter {
	return &Converter{dice: roller}
}

// Convert turns descriptor into a CoinMap. A literal amount is assigned
// directly; a formula is rolled, falling back to its rounded-down
// average if rolling fails. Multipliers apply before the denomination
// assignment.
func (c *Converter) Convert(_ context.Context, descriptor *document.WealthDescriptor) CoinMap {
	if descriptor == nil {
		return CoinMap{}
	}

	amount := descriptor.Amount
	if !descriptor.Literal {
		amount = c.evaluateFormula(descriptor.Formula)
	}

	multiplier := descriptor.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	amount *= multiplier

	return assign(descriptor.Denomination, amount)
}

func (c *Converter) evaluateFormula(formula string) int {
	result, err := c.dice.Roll(formula)
	if err == nil {
		return result.Total
	}
	avg, avgErr := c.dice.Average(formula)
	if avgErr != nil {
		return 0
	}
	return avg
}

func assign(denomination string, amount int) CoinMap {
	if amount < 0 {
		amount = 0
	}
	var coins CoinMap
	switch denomination {
	case "platinum", "pp":
		coins.Platinum = amount
	case "electrum", "ep":
		coins.Electrum = amount
	case "silver", "sp":
		coins.Silver = amount
	case "copper", "cp":
		coins.Copper = amount
	default: // "gold"/"gp" and unrecognized denominations default to gold
		coins.Gold = amount
	}
	return coins
}

// Package mockdice provides a hand-rolled dice.Roller test double that
// plays back predetermined results instead of generating gomock code.
package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/heromancer/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
	failNext  bool
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetRolls sets the sequence of individual die results Roll consumes,
// resetting the read position.
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// FailNextRoll makes the next Roll call return an error, simulating the
// wealth converter's roll-failure fallback path.
func (m *ManualMockRoller) FailNextRoll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = true
}

// Reset clears all queued rolls and failure flags.
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.failNext = false
}

func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll against the queued results instead of
// math/rand. Count and sides come from formulaStr, not from the queue.
func (m *ManualMockRoller) Roll(formulaStr string) (*dice.RollResult, error) {
	f, err := dice.ParseFormula(formulaStr)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	fail := m.failNext
	m.failNext = false
	m.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("mock roller: forced roll failure for %q", formulaStr)
	}

	rolls := make([]int, f.Count)
	rawTotal := 0
	for i := 0; i < f.Count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > f.Sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, f.Sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total: rawTotal + f.Bonus,
		Rolls: rolls,
		Bonus: f.Bonus,
		Count: f.Count,
		Sides: f.Sides,
	}, nil
}

// Average implements dice.Roller.Average by delegating to the formula's
// closed-form expectation; it never touches the queued rolls.
func (m *ManualMockRoller) Average(formulaStr string) (int, error) {
	f, err := dice.ParseFormula(formulaStr)
	if err != nil {
		return 0, err
	}
	return f.Count*(f.Sides+1)/2 + f.Bonus, nil
}

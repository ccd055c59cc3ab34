package sim

import (
	"fmt"
	"math/rand"
	"time"

	"cell-dashboard/internal/model"
)

// MaxCells is the most cells a single ledger may hold; the UI slider tops out
// at the same value.
const MaxCells = 12

// Default temperature draw range in °C.
const (
	DefaultTempMinC = 25.0
	DefaultTempMaxC = 40.0
)

// Factory builds fresh ledgers from an ordered list of chemistry selections.
type Factory struct {
	// TempMinC/TempMaxC bound the uniform temperature draw.
	TempMinC float64
	TempMaxC float64

	rng *rand.Rand
}

// NewFactory returns a factory with the default temperature range. Pass a
// seeded rng for deterministic output; nil uses a time-seeded source.
func NewFactory(rng *rand.Rand) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Factory{
		TempMinC: DefaultTempMinC,
		TempMaxC: DefaultTempMaxC,
		rng:      rng,
	}
}

// CreateCells builds a new ledger with one cell per chemistry selection, in
// order. Identifiers are cell_<i>_<chemistry>, 1-indexed. Each cell gets its
// chemistry's nominal voltage and bounds, zero current (and therefore zero
// capacity), and a temperature drawn uniformly from the factory's range,
// rounded to 1 decimal.
//
// The returned ledger is owned by the caller; the factory keeps no state
// beyond its rng.
func (f *Factory) CreateCells(chemistries []string) (*Ledger, error) {
	if len(chemistries) == 0 {
		return nil, fmt.Errorf("%w: no chemistries given", ErrInvalidInput)
	}
	if len(chemistries) > MaxCells {
		return nil, fmt.Errorf("%w: %d cells requested, max is %d", ErrInvalidInput, len(chemistries), MaxCells)
	}

	ledger := newLedger(len(chemistries))
	for i, raw := range chemistries {
		chem, ok := model.ParseChemistry(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown chemistry %q at position %d", ErrInvalidInput, raw, i+1)
		}
		temp := f.TempMinC + f.rng.Float64()*(f.TempMaxC-f.TempMinC)
		cell, _ := model.NewCell(chem, temp)
		ledger.add(model.CellID(i+1, chem), cell)
	}
	return ledger, nil
}

package sim

import (
	"fmt"

	"cell-dashboard/internal/model"
)

// Ledger is the in-memory collection of all configured cells for one session.
// Iteration order is creation order. The zero value is an empty ledger.
//
// A Ledger is not safe for concurrent use; the session store serializes access
// and swaps whole ledgers on commit.
type Ledger struct {
	ids   []string
	cells map[string]model.CellRecord
}

// Entry pairs a cell identifier with its record, for ordered iteration.
type Entry struct {
	ID   string
	Cell model.CellRecord
}

func newLedger(capacity int) *Ledger {
	return &Ledger{
		ids:   make([]string, 0, capacity),
		cells: make(map[string]model.CellRecord, capacity),
	}
}

func (l *Ledger) add(id string, cell model.CellRecord) {
	if l.cells == nil {
		l.cells = make(map[string]model.CellRecord)
	}
	l.ids = append(l.ids, id)
	l.cells[id] = cell
}

// Len returns the number of cells.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// Get returns the record for id.
func (l *Ledger) Get(id string) (model.CellRecord, bool) {
	c, ok := l.cells[id]
	return c, ok
}

// Entries returns all cells in creation order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.ids))
	for _, id := range l.ids {
		out = append(out, Entry{ID: id, Cell: l.cells[id]})
	}
	return out
}

// Clone returns a deep copy. Records are values, so copying the map suffices.
func (l *Ledger) Clone() *Ledger {
	out := newLedger(len(l.ids))
	out.ids = append(out.ids, l.ids...)
	for id, c := range l.cells {
		out.cells[id] = c
	}
	return out
}

// SetCurrent replaces one cell's current and recomputes its capacity.
// Everything else on the record is untouched.
func (l *Ledger) SetCurrent(id string, amps float64) error {
	if !model.ValidCurrent(amps) {
		return fmt.Errorf("%w: %.2f A not in [%.1f, %.1f]", ErrOutOfRange, amps, model.MinCurrentA, model.MaxCurrentA)
	}
	cell, ok := l.cells[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	cell.ApplyCurrent(amps)
	l.cells[id] = cell
	return nil
}

// ApplyCurrents applies a batch of current updates to a candidate copy and
// returns it, leaving the receiver untouched. The whole batch fails on the
// first invalid entry, so callers either commit every update or none. Swapping
// the returned ledger in for the old one is the commit point.
func (l *Ledger) ApplyCurrents(currents map[string]float64) (*Ledger, error) {
	candidate := l.Clone()
	// Walk in creation order so error reporting is deterministic.
	for _, id := range candidate.ids {
		amps, ok := currents[id]
		if !ok {
			continue
		}
		if err := candidate.SetCurrent(id, amps); err != nil {
			return nil, err
		}
	}
	for id := range currents {
		if _, ok := candidate.cells[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
	}
	return candidate, nil
}

// TotalCapacity sums capacity over all cells, in Wh.
func (l *Ledger) TotalCapacity() float64 {
	sum := 0.0
	for _, id := range l.ids {
		sum += l.cells[id].Capacity
	}
	return sum
}

// TotalCurrent sums current over all cells, in A.
func (l *Ledger) TotalCurrent() float64 {
	sum := 0.0
	for _, id := range l.ids {
		sum += l.cells[id].Current
	}
	return sum
}

// AverageTemperature returns the mean cell temperature in °C.
func (l *Ledger) AverageTemperature() (float64, error) {
	if len(l.ids) == 0 {
		return 0, ErrEmptyLedger
	}
	sum := 0.0
	for _, id := range l.ids {
		sum += l.cells[id].Temp
	}
	return sum / float64(len(l.ids)), nil
}

// CountByChemistry returns the number of cells per chemistry.
func (l *Ledger) CountByChemistry() map[model.Chemistry]int {
	out := make(map[model.Chemistry]int)
	for _, id := range l.ids {
		out[l.cells[id].Type]++
	}
	return out
}

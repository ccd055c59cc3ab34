package model

import (
	"fmt"
	"math"
	"strings"
)

// Chemistry is a supported cell chemistry.
// Keep these values stable; they are used in cell identifiers and CSV output.
type Chemistry string

const (
	ChemistryLFP Chemistry = "LFP"
	ChemistryNMC Chemistry = "NMC"
)

// Current bounds in amperes. The UI exposes a 0.0-10.0 slider; the core
// enforces the same domain.
const (
	MinCurrentA = 0.0
	MaxCurrentA = 10.0
)

// ChemistrySpec defines the fixed electrical envelope of a chemistry.
// Units:
// - NominalVoltage: V (assigned to every cell of this chemistry at creation)
// - MinVoltage/MaxVoltage: V (safe operating bounds)
type ChemistrySpec struct {
	NominalVoltage float64
	MinVoltage     float64
	MaxVoltage     float64
}

var chemistrySpecs = map[Chemistry]ChemistrySpec{
	ChemistryLFP: {NominalVoltage: 3.2, MinVoltage: 2.8, MaxVoltage: 3.6},
	ChemistryNMC: {NominalVoltage: 3.6, MinVoltage: 3.2, MaxVoltage: 4.0},
}

// Chemistries returns the supported chemistries in a stable order.
func Chemistries() []Chemistry {
	return []Chemistry{ChemistryLFP, ChemistryNMC}
}

// Spec returns the fixed spec for a chemistry.
func (c Chemistry) Spec() (ChemistrySpec, bool) {
	s, ok := chemistrySpecs[c]
	return s, ok
}

// ParseChemistry accepts "LFP"/"lfp"/"NMC"/"nmc".
func ParseChemistry(s string) (Chemistry, bool) {
	c := Chemistry(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := chemistrySpecs[c]; !ok {
		return "", false
	}
	return c, true
}

// CellRecord is one simulated battery cell.
//
// Voltage, MinVoltage, MaxVoltage and Type come from the chemistry spec and
// never change after creation. Temp is drawn once at creation. Current is the
// only mutable input; Capacity is always voltage*current rounded to 2 decimals
// and must be recomputed through ApplyCurrent, never set directly.
type CellRecord struct {
	Type       Chemistry
	Voltage    float64
	Current    float64
	Temp       float64
	Capacity   float64
	MinVoltage float64
	MaxVoltage float64
}

// NewCell builds a record for the chemistry with the given temperature reading.
// Current starts at 0; capacity is derived from it, so it starts at 0 too.
func NewCell(chem Chemistry, temp float64) (CellRecord, bool) {
	spec, ok := chem.Spec()
	if !ok {
		return CellRecord{}, false
	}
	r := CellRecord{
		Type:       chem,
		Voltage:    spec.NominalVoltage,
		Temp:       Round1(temp),
		MinVoltage: spec.MinVoltage,
		MaxVoltage: spec.MaxVoltage,
	}
	r.ApplyCurrent(0)
	return r, true
}

// ApplyCurrent sets the current and recomputes the derived capacity.
// Bounds checking is the caller's job; this only maintains the invariant
// capacity == round(voltage*current, 2).
func (r *CellRecord) ApplyCurrent(amps float64) {
	r.Current = amps
	r.Capacity = Round2(r.Voltage * amps)
}

// ValidCurrent reports whether amps is within the allowed [0, 10] A domain.
func ValidCurrent(amps float64) bool {
	return amps >= MinCurrentA && amps <= MaxCurrentA
}

// CellID builds the canonical identifier for the i-th cell (1-indexed),
// e.g. "cell_1_lfp". The chemistry segment is lowercase.
func CellID(i int, chem Chemistry) string {
	return fmt.Sprintf("cell_%d_%s", i, strings.ToLower(string(chem)))
}

// Round1 rounds to 1 decimal place (temperature precision).
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds to 2 decimal places (capacity precision).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

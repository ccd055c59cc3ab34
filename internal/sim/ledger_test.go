package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cell-dashboard/internal/model"
)

func testLedger(t *testing.T, chemistries ...string) *Ledger {
	t.Helper()
	f := NewFactory(rand.New(rand.NewSource(1)))
	ledger, err := f.CreateCells(chemistries)
	require.NoError(t, err)
	return ledger
}

func TestSetCurrent(t *testing.T) {
	ledger := testLedger(t, "lfp", "nmc")

	require.NoError(t, ledger.SetCurrent("cell_1_lfp", 2.0))
	cell, ok := ledger.Get("cell_1_lfp")
	require.True(t, ok)
	assert.Equal(t, 2.0, cell.Current)
	assert.Equal(t, 6.4, cell.Capacity)

	// Other fields untouched.
	assert.Equal(t, model.ChemistryLFP, cell.Type)
	assert.Equal(t, 3.2, cell.Voltage)
	assert.Equal(t, 2.8, cell.MinVoltage)

	// The NMC cell is unaffected.
	other, _ := ledger.Get("cell_2_nmc")
	assert.Equal(t, 0.0, other.Current)
}

func TestSetCurrentCapacityRounding(t *testing.T) {
	ledger := testLedger(t, "nmc")
	// 3.6 * 3.33 = 11.988 -> 11.99
	require.NoError(t, ledger.SetCurrent("cell_1_nmc", 3.33))
	cell, _ := ledger.Get("cell_1_nmc")
	assert.Equal(t, 11.99, cell.Capacity)
}

func TestSetCurrentErrors(t *testing.T) {
	ledger := testLedger(t, "lfp")

	assert.ErrorIs(t, ledger.SetCurrent("cell_1_lfp", -1), ErrOutOfRange)
	assert.ErrorIs(t, ledger.SetCurrent("cell_1_lfp", 10.1), ErrOutOfRange)
	assert.ErrorIs(t, ledger.SetCurrent("cell_9_lfp", 1), ErrNotFound)

	// Failed updates leave the record alone.
	cell, _ := ledger.Get("cell_1_lfp")
	assert.Equal(t, 0.0, cell.Current)
}

func TestApplyCurrentsCommitsAtomically(t *testing.T) {
	ledger := testLedger(t, "lfp", "nmc", "lfp")

	candidate, err := ledger.ApplyCurrents(map[string]float64{
		"cell_1_lfp": 1.0,
		"cell_2_nmc": 2.5,
	})
	require.NoError(t, err)

	// The original is untouched until the caller swaps.
	orig, _ := ledger.Get("cell_1_lfp")
	assert.Equal(t, 0.0, orig.Current)

	c1, _ := candidate.Get("cell_1_lfp")
	assert.Equal(t, 1.0, c1.Current)
	assert.Equal(t, 3.2, c1.Capacity)
	c2, _ := candidate.Get("cell_2_nmc")
	assert.Equal(t, 2.5, c2.Current)
	assert.Equal(t, 9.0, c2.Capacity)
	// Cells not named keep their values.
	c3, _ := candidate.Get("cell_3_lfp")
	assert.Equal(t, 0.0, c3.Current)
}

func TestApplyCurrentsFailsWholesale(t *testing.T) {
	ledger := testLedger(t, "lfp", "nmc")

	_, err := ledger.ApplyCurrents(map[string]float64{
		"cell_1_lfp": 1.0,
		"cell_2_nmc": 99.0,
	})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ledger.ApplyCurrents(map[string]float64{
		"cell_1_lfp":   1.0,
		"cell_404_lfp": 1.0,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing committed either time.
	cell, _ := ledger.Get("cell_1_lfp")
	assert.Equal(t, 0.0, cell.Current)
}

func TestAggregates(t *testing.T) {
	ledger := testLedger(t, "lfp", "lfp", "nmc")
	require.NoError(t, ledger.SetCurrent("cell_1_lfp", 2.0)) // 6.4
	require.NoError(t, ledger.SetCurrent("cell_3_nmc", 1.0)) // 3.6

	assert.InDelta(t, 10.0, ledger.TotalCapacity(), 1e-9)
	assert.InDelta(t, 3.0, ledger.TotalCurrent(), 1e-9)

	// Cross-check against an independent recomputation.
	sum := 0.0
	for _, e := range ledger.Entries() {
		sum += model.Round2(e.Cell.Voltage * e.Cell.Current)
	}
	assert.InDelta(t, sum, ledger.TotalCapacity(), 1e-9)

	avg, err := ledger.AverageTemperature()
	require.NoError(t, err)
	manual := 0.0
	for _, e := range ledger.Entries() {
		manual += e.Cell.Temp
	}
	assert.InDelta(t, manual/3, avg, 1e-9)

	counts := ledger.CountByChemistry()
	assert.Equal(t, map[model.Chemistry]int{
		model.ChemistryLFP: 2,
		model.ChemistryNMC: 1,
	}, counts)
}

func TestAverageTemperatureEmptyLedger(t *testing.T) {
	var empty Ledger
	_, err := empty.AverageTemperature()
	assert.ErrorIs(t, err, ErrEmptyLedger)
	assert.Equal(t, 0.0, empty.TotalCapacity())
	assert.Equal(t, 0, empty.Len())
}

func TestCloneIsDeep(t *testing.T) {
	ledger := testLedger(t, "lfp")
	clone := ledger.Clone()
	require.NoError(t, clone.SetCurrent("cell_1_lfp", 5))

	orig, _ := ledger.Get("cell_1_lfp")
	assert.Equal(t, 0.0, orig.Current)
	copied, _ := clone.Get("cell_1_lfp")
	assert.Equal(t, 5.0, copied.Current)
}

package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cell-dashboard/internal/model"
	"cell-dashboard/internal/sim"
)

func buildLedger(t *testing.T, chemistries ...string) *sim.Ledger {
	t.Helper()
	f := sim.NewFactory(rand.New(rand.NewSource(1)))
	ledger, err := f.CreateCells(chemistries)
	require.NoError(t, err)
	return ledger
}

func TestScatterSeries(t *testing.T) {
	ledger := buildLedger(t, "lfp", "nmc")
	require.NoError(t, ledger.SetCurrent("cell_2_nmc", 4.0))

	pts := ScatterSeries(ledger)
	require.Len(t, pts, 2)
	assert.Equal(t, "cell_1_lfp", pts[0].CellID)
	assert.Equal(t, model.ChemistryLFP, pts[0].Type)
	assert.Equal(t, 3.2, pts[0].Voltage)
	assert.Equal(t, 4.0, pts[1].Current)
	assert.Equal(t, 14.4, pts[1].Capacity)
}

func TestTemperatureHistogram(t *testing.T) {
	ledger := buildLedger(t, "lfp", "lfp", "nmc", "nmc", "lfp")

	bins := TemperatureHistogram(ledger, 10)
	require.Len(t, bins, 10)

	total := 0
	for _, b := range bins {
		assert.Less(t, b.Low, b.High)
		for _, n := range b.Counts {
			total += n
		}
	}
	assert.Equal(t, ledger.Len(), total)

	// Bins tile the observed range without gaps.
	for i := 1; i < len(bins); i++ {
		assert.InDelta(t, bins[i-1].High, bins[i].Low, 1e-9)
	}
}

func TestTemperatureHistogramSingleCell(t *testing.T) {
	ledger := buildLedger(t, "nmc")
	bins := TemperatureHistogram(ledger, 5)
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Counts[model.ChemistryNMC]
	}
	assert.Equal(t, 1, total)
}

func TestTemperatureHistogramEmpty(t *testing.T) {
	var empty sim.Ledger
	assert.Nil(t, TemperatureHistogram(&empty, 10))
}

func TestCapacityBars(t *testing.T) {
	ledger := buildLedger(t, "lfp", "nmc")
	require.NoError(t, ledger.SetCurrent("cell_1_lfp", 1.0))

	bars := CapacityBars(ledger)
	require.Len(t, bars, 2)
	assert.Equal(t, 3.2, bars[0].Capacity)
	assert.Equal(t, 0.0, bars[1].Capacity)
}

func TestSummarize(t *testing.T) {
	ledger := buildLedger(t, "lfp", "lfp", "nmc")
	require.NoError(t, ledger.SetCurrent("cell_3_nmc", 2.0))

	s, err := Summarize(ledger)
	require.NoError(t, err)
	assert.Equal(t, 3, s.CellCount)
	assert.InDelta(t, 7.2, s.TotalCapacity, 1e-9)
	assert.InDelta(t, 2.0, s.TotalCurrent, 1e-9)
	assert.Equal(t, 2, s.CountsByType[model.ChemistryLFP])
	assert.Equal(t, 1, s.CountsByType[model.ChemistryNMC])

	avg, err := ledger.AverageTemperature()
	require.NoError(t, err)
	assert.Equal(t, avg, s.AvgTemp)
}

func TestSummarizeEmpty(t *testing.T) {
	var empty sim.Ledger
	_, err := Summarize(&empty)
	assert.ErrorIs(t, err, sim.ErrEmptyLedger)
}

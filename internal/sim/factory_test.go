package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cell-dashboard/internal/model"
)

func TestCreateCellsIdentifiersAndOrder(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(1)))
	ledger, err := f.CreateCells([]string{"lfp", "nmc", "lfp"})
	require.NoError(t, err)
	require.Equal(t, 3, ledger.Len())

	entries := ledger.Entries()
	assert.Equal(t, "cell_1_lfp", entries[0].ID)
	assert.Equal(t, "cell_2_nmc", entries[1].ID)
	assert.Equal(t, "cell_3_lfp", entries[2].ID)

	assert.Equal(t, 3.2, entries[0].Cell.Voltage)
	assert.Equal(t, 3.6, entries[1].Cell.Voltage)
}

func TestCreateCellsDefaults(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(42)))
	ledger, err := f.CreateCells([]string{"LFP", "NMC"})
	require.NoError(t, err)

	for _, e := range ledger.Entries() {
		spec, ok := e.Cell.Type.Spec()
		require.True(t, ok)
		assert.Equal(t, spec.NominalVoltage, e.Cell.Voltage, e.ID)
		assert.Equal(t, spec.MinVoltage, e.Cell.MinVoltage, e.ID)
		assert.Equal(t, spec.MaxVoltage, e.Cell.MaxVoltage, e.ID)
		assert.Equal(t, 0.0, e.Cell.Current, e.ID)
		assert.Equal(t, 0.0, e.Cell.Capacity, e.ID)
		assert.GreaterOrEqual(t, e.Cell.Temp, DefaultTempMinC, e.ID)
		assert.LessOrEqual(t, e.Cell.Temp, DefaultTempMaxC, e.ID)
		// 1 decimal place
		assert.Equal(t, model.Round1(e.Cell.Temp), e.Cell.Temp, e.ID)
	}
}

func TestCreateCellsDeterministicWithSeed(t *testing.T) {
	a := NewFactory(rand.New(rand.NewSource(7)))
	b := NewFactory(rand.New(rand.NewSource(7)))

	la, err := a.CreateCells([]string{"lfp", "nmc"})
	require.NoError(t, err)
	lb, err := b.CreateCells([]string{"lfp", "nmc"})
	require.NoError(t, err)

	assert.Equal(t, la.Entries(), lb.Entries())
}

func TestCreateCellsInvalidInput(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(1)))

	_, err := f.CreateCells(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.CreateCells([]string{"lfp", "unobtainium"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tooMany := make([]string, MaxCells+1)
	for i := range tooMany {
		tooMany[i] = "lfp"
	}
	_, err = f.CreateCells(tooMany)
	assert.ErrorIs(t, err, ErrInvalidInput)

	atMax := make([]string, MaxCells)
	for i := range atMax {
		atMax[i] = "nmc"
	}
	ledger, err := f.CreateCells(atMax)
	require.NoError(t, err)
	assert.Equal(t, MaxCells, ledger.Len())
}

func TestCreateCellsCustomTempRange(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(3)))
	f.TempMinC = 30
	f.TempMaxC = 31

	ledger, err := f.CreateCells([]string{"lfp", "lfp", "lfp", "lfp"})
	require.NoError(t, err)
	for _, e := range ledger.Entries() {
		assert.GreaterOrEqual(t, e.Cell.Temp, 30.0)
		assert.LessOrEqual(t, e.Cell.Temp, 31.0)
	}
}

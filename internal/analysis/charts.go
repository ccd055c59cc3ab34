// Package analysis computes chart-ready series from a cell ledger. The
// frontend renders these directly (scatter, histogram, bar, pie); nothing in
// the core depends on how they are drawn.
package analysis

import (
	"cell-dashboard/internal/model"
	"cell-dashboard/internal/sim"
)

// DefaultHistogramBins matches the dashboard's temperature histogram.
const DefaultHistogramBins = 10

// ScatterPoint is one cell in the voltage-vs-current view. Capacity drives
// marker size, chemistry drives color, temperature shows on hover.
type ScatterPoint struct {
	CellID   string
	Type     model.Chemistry
	Voltage  float64
	Current  float64
	Capacity float64
	Temp     float64
}

// HistogramBin is one temperature bucket with per-chemistry counts.
// The interval is [Low, High), except the last bin which includes High.
type HistogramBin struct {
	Low    float64
	High   float64
	Counts map[model.Chemistry]int
}

// CapacityBar is one bar in the per-cell capacity comparison.
type CapacityBar struct {
	CellID   string
	Type     model.Chemistry
	Capacity float64
}

// Summary is the quick-stats block shown next to the current inputs.
type Summary struct {
	TotalCapacity float64
	AvgTemp       float64
	TotalCurrent  float64
	CountsByType  map[model.Chemistry]int
	CellCount     int
}

// ScatterSeries returns one point per cell in creation order.
func ScatterSeries(l *sim.Ledger) []ScatterPoint {
	out := make([]ScatterPoint, 0, l.Len())
	for _, e := range l.Entries() {
		out = append(out, ScatterPoint{
			CellID:   e.ID,
			Type:     e.Cell.Type,
			Voltage:  e.Cell.Voltage,
			Current:  e.Cell.Current,
			Capacity: e.Cell.Capacity,
			Temp:     e.Cell.Temp,
		})
	}
	return out
}

// TemperatureHistogram buckets cell temperatures into bins equal-width bins
// spanning the observed range. With a single distinct temperature the span is
// widened by half a degree either side so every bin has nonzero width.
func TemperatureHistogram(l *sim.Ledger, bins int) []HistogramBin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	entries := l.Entries()
	if len(entries) == 0 {
		return nil
	}

	lo, hi := entries[0].Cell.Temp, entries[0].Cell.Temp
	for _, e := range entries[1:] {
		if e.Cell.Temp < lo {
			lo = e.Cell.Temp
		}
		if e.Cell.Temp > hi {
			hi = e.Cell.Temp
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{
			Low:    lo + float64(i)*width,
			High:   lo + float64(i+1)*width,
			Counts: make(map[model.Chemistry]int),
		}
	}
	for _, e := range entries {
		idx := int((e.Cell.Temp - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Counts[e.Cell.Type]++
	}
	return out
}

// CapacityBars returns per-cell capacities in creation order.
func CapacityBars(l *sim.Ledger) []CapacityBar {
	out := make([]CapacityBar, 0, l.Len())
	for _, e := range l.Entries() {
		out = append(out, CapacityBar{
			CellID:   e.ID,
			Type:     e.Cell.Type,
			Capacity: e.Cell.Capacity,
		})
	}
	return out
}

// Summarize computes the quick-stats block. Fails with the ledger's
// EmptyLedger error when there are no cells.
func Summarize(l *sim.Ledger) (Summary, error) {
	avg, err := l.AverageTemperature()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TotalCapacity: l.TotalCapacity(),
		AvgTemp:       avg,
		TotalCurrent:  l.TotalCurrent(),
		CountsByType:  l.CountByChemistry(),
		CellCount:     l.Len(),
	}, nil
}

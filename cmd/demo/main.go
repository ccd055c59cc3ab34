package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"cell-dashboard/internal/analysis"
	"cell-dashboard/internal/sim"
)

// Demo:
// - Generate a small pack of LFP and NMC cells
// - Apply some currents and show the recomputed capacities
// - Print the summary block and optionally write the CSV snapshot
func main() {
	seed := flag.Int64("seed", 1, "rng seed for the temperature draws")
	outCSV := flag.String("out", "", "Optional path to write the CSV snapshot")
	flag.Parse()

	factory := sim.NewFactory(rand.New(rand.NewSource(*seed)))
	ledger, err := factory.CreateCells([]string{"lfp", "nmc", "lfp", "nmc"})
	if err != nil {
		panic(err)
	}

	fmt.Println("generated cells:")
	for _, e := range ledger.Entries() {
		fmt.Printf("  %s  %s  %.1fV  %.1f°C\n", e.ID, e.Cell.Type, e.Cell.Voltage, e.Cell.Temp)
	}

	// Batch update, committed as a whole like the dashboard's
	// "Update All Currents" button.
	updated, err := ledger.ApplyCurrents(map[string]float64{
		"cell_1_lfp": 2.0,
		"cell_2_nmc": 1.5,
		"cell_3_lfp": 0.5,
	})
	if err != nil {
		panic(err)
	}
	ledger = updated

	fmt.Println("\nafter current updates:")
	for _, e := range ledger.Entries() {
		fmt.Printf("  %s  current=%.1fA  capacity=%.2fWh\n", e.ID, e.Cell.Current, e.Cell.Capacity)
	}

	summary, err := analysis.Summarize(ledger)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\ntotal capacity: %.2f Wh\n", summary.TotalCapacity)
	fmt.Printf("average temperature: %.1f °C\n", summary.AvgTemp)
	fmt.Printf("total current: %.1f A\n", summary.TotalCurrent)

	if *outCSV != "" {
		if err := sim.WriteCSVFile(*outCSV, ledger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("wrote snapshot to %s\n", *outCSV)
	}
}

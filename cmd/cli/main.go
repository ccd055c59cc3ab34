package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"cell-dashboard/internal/analysis"
	"cell-dashboard/internal/model"
	"cell-dashboard/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli generate --types lfp,nmc,lfp --out results/cells.csv")
	fmt.Println("  cli stats --types lfp,nmc --current 2.5")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - generate creates cells with zero current and writes the CSV snapshot")
	fmt.Println("  - stats applies one current to every cell and prints the summary block")
	fmt.Println("  - pass --seed to make temperature draws reproducible")
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	types := fs.String("types", "", "Comma-separated chemistries, one per cell (lfp/nmc)")
	outPath := fs.String("out", "results/cells.csv", "Output CSV path")
	seed := fs.Int64("seed", 0, "Optional rng seed (0 = time-based)")
	_ = fs.Parse(args)

	ledger := buildLedger(*types, *seed)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fatal(err)
	}
	if err := sim.WriteCSVFile(*outPath, ledger); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d cells to %s\n", ledger.Len(), *outPath)
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	types := fs.String("types", "", "Comma-separated chemistries, one per cell (lfp/nmc)")
	current := fs.Float64("current", 0, "Current in A applied to every cell")
	seed := fs.Int64("seed", 0, "Optional rng seed (0 = time-based)")
	_ = fs.Parse(args)

	ledger := buildLedger(*types, *seed)

	if *current != 0 {
		currents := make(map[string]float64, ledger.Len())
		for _, e := range ledger.Entries() {
			currents[e.ID] = *current
		}
		updated, err := ledger.ApplyCurrents(currents)
		if err != nil {
			fatal(err)
		}
		ledger = updated
	}

	summary, err := analysis.Summarize(ledger)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-14s %-6s %-9s %-9s %-7s %-9s\n", "cell", "type", "voltage", "current", "temp", "capacity")
	for _, e := range ledger.Entries() {
		fmt.Printf("%-14s %-6s %-9.1f %-9.1f %-7.1f %-9.2f\n",
			e.ID, e.Cell.Type, e.Cell.Voltage, e.Cell.Current, e.Cell.Temp, e.Cell.Capacity)
	}
	fmt.Println("")
	fmt.Printf("Total Capacity: %.2f Wh\n", summary.TotalCapacity)
	fmt.Printf("Average Temperature: %.1f °C\n", summary.AvgTemp)
	fmt.Printf("Total Current: %.1f A\n", summary.TotalCurrent)
	for _, chem := range model.Chemistries() {
		fmt.Printf("%s Cells: %d\n", chem, summary.CountsByType[chem])
	}
}

func buildLedger(types string, seed int64) *sim.Ledger {
	chemistries := splitTypes(types)
	if len(chemistries) == 0 {
		fmt.Println("--types is required (e.g. --types lfp,nmc)")
		os.Exit(2)
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	factory := sim.NewFactory(rng)

	ledger, err := factory.CreateCells(chemistries)
	if err != nil {
		fatal(err)
	}
	return ledger
}

func splitTypes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

package sim

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// CSVHeader is the human-readable header row for exported snapshots: the
// record's column names with underscores replaced by spaces and title-cased,
// identifier first. Keep the order in sync with snapshotRow.
var CSVHeader = []string{
	"Cell ID",
	"Voltage",
	"Current",
	"Temp",
	"Capacity",
	"Min Voltage",
	"Max Voltage",
	"Type",
}

// Snapshot returns the ledger as rows ready for delimited output, one per cell
// in creation order. Column order matches CSVHeader.
func (l *Ledger) Snapshot() [][]string {
	rows := make([][]string, 0, l.Len())
	for _, e := range l.Entries() {
		rows = append(rows, snapshotRow(e))
	}
	return rows
}

func snapshotRow(e Entry) []string {
	return []string{
		e.ID,
		fmtFloat(e.Cell.Voltage),
		fmtFloat(e.Cell.Current),
		fmtFloat(e.Cell.Temp),
		fmtFloat(e.Cell.Capacity),
		fmtFloat(e.Cell.MinVoltage),
		fmtFloat(e.Cell.MaxVoltage),
		string(e.Cell.Type),
	}
}

// WriteCSV renders the ledger snapshot to w, header first.
func WriteCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range l.Snapshot() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the ledger snapshot to a file at path.
func WriteCSVFile(path string, l *Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, l)
}

// fmtFloat renders stored values without trailing zeros. Rounding already
// happened when the value was stored (1 decimal for temperature, 2 for
// capacity), so the shortest representation round-trips exactly.
func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

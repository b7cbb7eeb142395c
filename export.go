package vblanklat

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// exportHeader is the fixed column order of the output table.
var exportHeader = []string{"timestamp", "count", "event_type"}

// ExportCSV materializes the log as a delimited table at path: a header row
// and one row per record, in insertion order. Export is all-or-nothing; the
// run has no other durable artifact, so any failure is reported as fatal.
// Re-exporting the same log produces byte-identical output.
func ExportCSV(path string, log *RecordLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrExport, path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		f.Close()
		return fmt.Errorf("%w: write header: %v", ErrExport, err)
	}
	row := make([]string, 3)
	for _, r := range log.Records() {
		row[0] = strconv.FormatInt(r.Timestamp, 10)
		row[1] = strconv.FormatInt(r.Count, 10)
		row[2] = string(r.Event)
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("%w: write row: %v", ErrExport, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: flush %s: %v", ErrExport, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrExport, path, err)
	}
	return nil
}

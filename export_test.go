package vblanklat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleLog() *RecordLog {
	log := NewRecordLog(2)
	log.AppendPair(TimePair{Hardware: 166667, CPU: 170000}, 101)
	log.AppendPair(TimePair{Hardware: 333334, CPU: 336100}, 102)
	return log
}

func TestExportCSVContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	assert.NoError(t, ExportCSV(path, sampleLog()))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	expected := "timestamp,count,event_type\n" +
		"166667,101,hardware_time\n" +
		"170000,101,cpu_time\n" +
		"333334,102,hardware_time\n" +
		"336100,102,cpu_time\n"
	assert.Equal(t, expected, string(data))
}

func TestExportCSVEmptyLogStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	assert.NoError(t, ExportCSV(path, NewRecordLog(0)))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "timestamp,count,event_type\n", string(data))
}

func TestExportCSVIdempotent(t *testing.T) {
	dir := t.TempDir()
	log := sampleLog()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")

	assert.NoError(t, ExportCSV(pathA, log))
	assert.NoError(t, ExportCSV(pathB, log))

	a, err := os.ReadFile(pathA)
	assert.NoError(t, err)
	b, err := os.ReadFile(pathB)
	assert.NoError(t, err)
	assert.Equal(t, a, b, "re-export must be byte-identical")
}

func TestExportCSVCreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "records.csv")
	err := ExportCSV(path, sampleLog())
	assert.ErrorIs(t, err, ErrExport)
}

package vblanklat

import set3 "github.com/TomTonic/Set3"

// EventType tags which clock produced a record's timestamp.
type EventType string

const (
	// EventHardwareTime marks a timestamp taken from the presentation
	// backend's own counter at the detected present event.
	EventHardwareTime EventType = "hardware_time"
	// EventCPUTime marks a timestamp taken from the CPU monotonic clock at
	// the moment the loop learned of the present event.
	EventCPUTime EventType = "cpu_time"
)

// VBlankRecord is one timing observation. Timestamp is in 100 ns ticks of
// the time base named by Event, relative to the run's startup anchor. Count
// is the display refresh counter value from the same backend sample; it is
// the cross-reference key between the two streams and the input to
// missed-frame accounting.
type VBlankRecord struct {
	Timestamp int64
	Count     int64
	Event     EventType
}

// RecordLog is the append-only event log of one capture run. A single
// goroutine appends; records are never mutated or removed. The log lives
// until export, after which it may be discarded.
type RecordLog struct {
	records []VBlankRecord
}

// NewRecordLog returns an empty log sized for the given number of frames
// (two records per frame).
func NewRecordLog(frames int64) *RecordLog {
	if frames < 0 {
		frames = 0
	}
	return &RecordLog{records: make([]VBlankRecord, 0, 2*frames)}
}

// AppendPair appends the hardware record followed by the CPU record for one
// completed poll cycle. Both carry the same refresh count, keeping the pair
// adjacent and cross-referenced.
func (l *RecordLog) AppendPair(times TimePair, refreshCount int64) {
	l.records = append(l.records,
		VBlankRecord{Timestamp: times.Hardware, Count: refreshCount, Event: EventHardwareTime},
		VBlankRecord{Timestamp: times.CPU, Count: refreshCount, Event: EventCPUTime},
	)
}

// Len returns the number of records in the log.
func (l *RecordLog) Len() int {
	return len(l.records)
}

// Records returns the records in insertion order. The returned slice is the
// log's backing store; callers must treat it as read-only.
func (l *RecordLog) Records() []VBlankRecord {
	return l.records
}

// ByEvent returns the records of one stream, in insertion order.
func (l *RecordLog) ByEvent(event EventType) []VBlankRecord {
	out := make([]VBlankRecord, 0, len(l.records)/2)
	for _, r := range l.records {
		if r.Event == event {
			out = append(out, r)
		}
	}
	return out
}

// DistinctCounts returns the number of distinct refresh counter values seen
// across all records.
func (l *RecordLog) DistinctCounts() int {
	set := set3.EmptyWithCapacity[uint64](uint32(len(l.records)*7/5 + 1))
	for _, r := range l.records {
		set.Add(uint64(r.Count))
	}
	return int(set.Size())
}

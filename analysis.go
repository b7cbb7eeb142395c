package vblanklat

import set3 "github.com/TomTonic/Set3"

// Report summarizes a finished capture log: stream sizes, refresh counter
// coverage, ordering health, and the skew between the hardware and CPU
// timestamp streams. It is a pure function of the log and never touches the
// record path.
type Report struct {
	HardwareRecords int
	CPURecords      int

	// DistinctCounts is the number of distinct refresh counter values.
	DistinctCounts int
	// MissedFrames is the total of refresh counter gaps between
	// consecutive hardware records (a jump of n accounts for n-1 misses).
	MissedFrames int64
	// OrderViolations counts records whose timestamp failed to strictly
	// increase within their stream.
	OrderViolations int

	// Skew statistics over per-frame (CPU - hardware) timestamp
	// differences, in 100 ns ticks. The CPU reading is taken after the
	// poll returns, so positive skew bounds the notification latency.
	SkewMedian float64
	SkewMean   float64
	SkewStddev float64
}

// Analyze computes the Report for a log.
func Analyze(log *RecordLog) Report {
	hw := log.ByEvent(EventHardwareTime)
	cpu := log.ByEvent(EventCPUTime)

	rep := Report{
		HardwareRecords: len(hw),
		CPURecords:      len(cpu),
	}

	counts := set3.EmptyWithCapacity[uint64](uint32(len(hw)*7/5 + 1))
	for i, r := range hw {
		counts.Add(uint64(r.Count))
		if i > 0 {
			if r.Timestamp <= hw[i-1].Timestamp {
				rep.OrderViolations++
			}
			if gap := r.Count - hw[i-1].Count; gap > 1 {
				rep.MissedFrames += gap - 1
			}
		}
	}
	for i := 1; i < len(cpu); i++ {
		if cpu[i].Timestamp <= cpu[i-1].Timestamp {
			rep.OrderViolations++
		}
	}
	rep.DistinctCounts = int(counts.Size())

	n := min(len(hw), len(cpu))
	if n > 0 {
		skews := make([]float64, n)
		for i := range n {
			skews[i] = float64(cpu[i].Timestamp - hw[i].Timestamp)
		}
		rep.SkewMedian = Median(skews)
		rep.SkewMean, _, rep.SkewStddev = Statistics(skews)
	}
	return rep
}

package vblanklat

// Correlator converts present-event timestamps into two comparable streams:
// the backend's own counter and the CPU monotonic clock, both anchored at
// the same startup instant and expressed in 100 ns ticks.
//
// The present event itself only carries a hardware timestamp. The CPU
// reading is taken at the nearest point where the loop learns of the event,
// bounded by poll granularity, so the difference between the two streams is
// an upper bound on the hardware-to-software notification latency.
type Correlator struct {
	startHardware int64
	startCPU      CPUStamp
}

// NewCorrelator anchors both time bases. startHardware must be a current
// reading of the clock that stamps FrameCounterSample.SyncTime; the CPU
// anchor is taken in the same instant.
func NewCorrelator(startHardware int64) *Correlator {
	return &Correlator{
		startHardware: startHardware,
		startCPU:      ReadCPUClock(),
	}
}

// TimePair holds the two readings for one present event, each in 100 ns
// ticks since its anchor.
type TimePair struct {
	Hardware int64
	CPU      int64
}

// Correlate produces the pair of readings for a freshly polled sample. Call
// it immediately after the poller returns so the CPU reading stays as close
// as possible to the detected event.
func (c *Correlator) Correlate(sample FrameCounterSample) TimePair {
	return TimePair{
		Hardware: sample.SyncTime - c.startHardware,
		CPU:      CPUElapsedTicks(c.startCPU),
	}
}

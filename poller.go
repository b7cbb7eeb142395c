package vblanklat

import "time"

// FrameCounterSample is one reading of the presentation backend's counters.
// Samples are ephemeral: the poller only compares them against the previous
// reading to detect that the display flipped.
type FrameCounterSample struct {
	// PresentCount increments once per actual display-side present.
	PresentCount uint64
	// SyncTime is the backend's timestamp of the last present, in native
	// counter ticks.
	SyncTime int64
	// RefreshCount is the display refresh counter at the last present.
	RefreshCount uint64
}

// StatsSource exposes the active presentation backend's current counters.
type StatsSource interface {
	FrameStatistics() (FrameCounterSample, error)
}

// Poller detects the next real display-side present event after a
// presentation request. It spins on FrameStatistics until the present
// counter moves; display refresh periods are on the order of milliseconds,
// so a scheduler-level sleep here would corrupt the measured latency. An
// optional Interval of a few microseconds trades timing precision for CPU.
//
// Known limitation: if the backend never advances the counter (occluded
// window, disabled output), WaitForPresent blocks forever.
type Poller struct {
	Source StatsSource
	// Interval is slept between polls. Zero (the default) means a pure
	// busy-wait for maximum precision.
	Interval time.Duration
}

// WaitForPresent blocks until the backend reports a present count different
// from last, and returns that sample.
func (p *Poller) WaitForPresent(last uint64) (FrameCounterSample, error) {
	for {
		sample, err := p.Source.FrameStatistics()
		if err != nil {
			return FrameCounterSample{}, err
		}
		if sample.PresentCount != last {
			return sample, nil
		}
		if p.Interval > 0 {
			time.Sleep(p.Interval)
		}
	}
}

// MissedPresents returns how many presents happened between two consecutive
// observed counter values without being individually observed. A jump of 1
// is the expected case and yields 0.
func MissedPresents(prev, next uint64) uint64 {
	if next <= prev+1 {
		return 0
	}
	return next - prev - 1
}

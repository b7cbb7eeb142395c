package vblanklat

import "math"

// tickNanos is the shared unit of the exported timestamp streams: 100 ns,
// the granularity of the hardware sync timestamps on the reference
// presentation backend. CPU readings are scaled to the same unit so the two
// streams compare without a conversion factor at analysis time.
const tickNanos = 100

const iterationsForCalibration = 1_000_000

// cpuClockPrecision caches the measured granularity of ReadCPUClock in
// nanoseconds. -1 means not yet calibrated.
var cpuClockPrecision = int64(-1)

// CPUClockPrecision returns the smallest nonzero difference observable
// between two ReadCPUClock calls, in nanoseconds. 100 ns on Windows,
// typically between 20 ns and 100 ns elsewhere. The first call runs a
// calibration loop; the result is cached for the life of the process.
func CPUClockPrecision() int64 {
	if cpuClockPrecision == int64(-1) {
		cpuClockPrecision = calibrateCPUClock()
	}
	return cpuClockPrecision
}

func calibrateCPUClock() int64 {
	minDiff := int64(math.MaxInt64)
	for range iterationsForCalibration {
		t1 := ReadCPUClock()
		t2 := ReadCPUClock()
		diff := CPUElapsedNanos(t1, t2)
		if diff > 0 && diff < minDiff {
			minDiff = diff
		}
	}
	return minDiff
}

// CPUElapsedTicks returns the time elapsed since the given reading, in the
// shared 100 ns tick unit.
func CPUElapsedTicks(since CPUStamp) int64 {
	return CPUElapsedNanos(since, ReadCPUClock()) / tickNanos
}

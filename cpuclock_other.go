//go:build !windows

package vblanklat

import "time"

// CPUStamp is a raw reading of the highest-resolution CPU clock on the
// current system. Readings are only comparable with each other within one
// run of the process, never across restarts or machines.
//
// On non-Windows systems time.Now carries the monotonic clock, which is the
// best userspace-visible resolution available without a kernel call.
type CPUStamp = time.Time

// ReadCPUClock samples the monotonic clock.
func ReadCPUClock() CPUStamp {
	return time.Now()
}

// CPUElapsedNanos returns later-earlier in nanoseconds. Negative when the
// arguments are swapped.
func CPUElapsedNanos(earlier, later CPUStamp) int64 {
	return later.Sub(earlier).Nanoseconds()
}

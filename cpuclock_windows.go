package vblanklat

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// CPUStamp is a raw reading of the highest-resolution CPU clock on the
// current system. Readings are only comparable with each other within one
// run of the process, never across restarts or machines.
//
// On Windows this is the performance counter, which is also the clock the
// presentation backend stamps its sync times with, so the two time bases
// share an origin and rate.
type CPUStamp = int64

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")
	procQPF     = modkernel32.NewProc("QueryPerformanceFrequency")
	procQPC     = modkernel32.NewProc("QueryPerformanceCounter")

	qpcFrequency = queryFrequency()
)

// queryFrequency returns the performance counter rate in ticks per second.
func queryFrequency() int64 {
	var freq int64
	r1, _, err := procQPF.Call(uintptr(unsafe.Pointer(&freq)))
	if r1 == 0 {
		panic(fmt.Sprintf("QueryPerformanceFrequency failed: %v", err))
	}
	return freq
}

// ReadCPUClock samples the performance counter.
func ReadCPUClock() CPUStamp {
	var qpc int64
	procQPC.Call(uintptr(unsafe.Pointer(&qpc)))
	return qpc
}

// CPUElapsedNanos returns later-earlier in nanoseconds. Negative when the
// arguments are swapped. Constant runtime, but contains an integer division.
func CPUElapsedNanos(earlier, later CPUStamp) int64 {
	result := later - earlier
	result *= int64(1_000_000_000)
	result /= qpcFrequency
	return result
}

package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/frameperf/vblanklat"
)

// screenProducer implements the frame producer over an ebiten screen. Ebiten
// owns the device and swapchain and exposes no hardware present statistics,
// so this backend approximates them: each vsync-paced Draw counts as one
// present, stamped with the CPU clock at Present time. The hardware and CPU
// time bases therefore share a domain on this backend and the recorded skew
// measures poll latency alone. Refresh counts are derived from the
// inter-present interval against a smoothed period estimate, so dropped
// refreshes still show up as counter jumps.
type screenProducer struct {
	epoch  vblanklat.CPUStamp
	screen *ebiten.Image

	presents    uint64
	refreshes   uint64
	lastSync    int64
	periodTicks float64
}

func newScreenProducer() *screenProducer {
	return &screenProducer{epoch: vblanklat.ReadCPUClock()}
}

func (p *screenProducer) now() int64 {
	return vblanklat.CPUElapsedTicks(p.epoch)
}

func (p *screenProducer) AcquireFrame() (vblanklat.Frame, error) {
	if p.screen == nil {
		return nil, vblanklat.ErrSurfaceUnavailable
	}
	return p.screen, nil
}

func (p *screenProducer) Submit(frame vblanklat.Frame, draw bool) error {
	img := frame.(*ebiten.Image)
	if draw {
		img.Fill(color.White)
	} else {
		img.Fill(color.Black)
	}
	return nil
}

func (p *screenProducer) Present(vblanklat.Frame) error {
	now := p.now()
	p.presents++
	if p.lastSync == 0 {
		p.refreshes++
	} else {
		delta := float64(now - p.lastSync)
		if p.periodTicks == 0 {
			p.periodTicks = delta
		} else {
			p.periodTicks = 0.9*p.periodTicks + 0.1*delta
		}
		steps := math.Round(delta / p.periodTicks)
		if steps < 1 {
			steps = 1
		}
		p.refreshes += uint64(steps)
	}
	p.lastSync = now
	return nil
}

func (p *screenProducer) Reconfigure(width, height int) {
	// Ebiten reconfigures its own swapchain on resize.
}

func (p *screenProducer) HardwareNow() int64 {
	return p.now()
}

func (p *screenProducer) FrameStatistics() (vblanklat.FrameCounterSample, error) {
	return vblanklat.FrameCounterSample{
		PresentCount: p.presents,
		SyncTime:     p.lastSync,
		RefreshCount: p.refreshes,
	}, nil
}

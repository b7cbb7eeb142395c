package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/frameperf/vblanklat"
)

// captureGame adapts the ebiten event loop to the capture's windowing
// collaborator. Ebiten renders continuously with vsync on, which is the
// FIFO-style pacing the capture requires; RequestRedraw is therefore a
// no-op and one capture iteration runs per Draw.
type captureGame struct {
	capture  *vblanklat.Capture
	producer *screenProducer

	width  int
	height int
	exit   bool
	err    error
}

func newCaptureGame(cfg *vblanklat.Config, channel vblanklat.Flusher, logger *zap.Logger) *captureGame {
	g := &captureGame{producer: newScreenProducer()}
	g.capture = vblanklat.NewCapture(cfg, g.producer, g, channel, logger)
	return g
}

func (g *captureGame) captureErr() error {
	return g.err
}

func (g *captureGame) Update() error {
	if g.err != nil {
		return g.err
	}
	if ebiten.IsWindowBeingClosed() {
		g.capture.CloseRequested()
	}
	if g.exit {
		return ebiten.Termination
	}
	return nil
}

func (g *captureGame) Draw(screen *ebiten.Image) {
	if g.exit || g.err != nil || g.capture.Done() {
		return
	}
	g.producer.screen = screen
	if err := g.capture.RedrawRequested(); err != nil {
		g.err = err
	}
}

func (g *captureGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.capture.Resize(w, h)
	}
	return w, h
}

// WindowTarget.

func (g *captureGame) RequestRedraw() {
	// Continuous redraw loop: ebiten renders every vsync regardless.
}

func (g *captureGame) Exit() {
	g.exit = true
}

// vblanklat-capture runs one display-presentation latency capture: it opens
// a fullscreen vsync-locked window, drives the duty-cycle test pattern for
// the configured frame budget, and writes the timing record table on
// completion. Parameters come from an optional capture.yaml in the working
// directory; there are no flags.
package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/frameperf/vblanklat"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := vblanklat.LoadConfig("capture.yaml")
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("cpu clock calibrated",
		zap.Int64("precision_ns", vblanklat.CPUClockPrecision()))

	var channel vblanklat.Flusher
	if cfg.SignalDevice != "" {
		serial, err := vblanklat.OpenSerialChannel(cfg.SignalDevice, cfg.SignalBaud)
		if err != nil {
			logger.Fatal("open signal channel", zap.Error(err))
		}
		defer serial.Close()
		channel = serial
		logger.Info("external signal channel open",
			zap.String("device", cfg.SignalDevice),
			zap.Int("baud", cfg.SignalBaud),
			zap.Int64("signal_frames", cfg.SignalFrames))
	}

	game := newCaptureGame(cfg, channel, logger)

	ebiten.SetWindowTitle("vblanklat")
	ebiten.SetFullscreen(true)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		if game.captureErr() != nil {
			logger.Fatal("capture aborted", zap.Error(err))
		}
		// The loop never started: the graphics stack itself failed.
		logger.Fatal("capture aborted",
			zap.Error(fmt.Errorf("%w: %v", vblanklat.ErrAdapterUnavailable, err)))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

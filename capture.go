package vblanklat

import (
	"errors"

	"go.uber.org/zap"
)

// Frame is one presentable frame acquired from the producer. Its concrete
// type belongs to the FrameProducer; the capture only passes it back.
type Frame any

// FrameProducer is the graphics collaborator: it owns the device, surface
// and pipeline, and yields presentable frames on demand. The surface must be
// configured for FIFO (vsync-locked) presentation with minimal queued-frame
// latency, or the statistics stop meaning what the capture records.
type FrameProducer interface {
	// AcquireFrame returns the next presentable frame. It fails with
	// ErrSurfaceUnavailable on transient surface loss (e.g. mid-resize);
	// the caller reconfigures and retries on the next redraw.
	AcquireFrame() (Frame, error)
	// Submit encodes the trivial workload: the test pattern when draw is
	// true, an empty pass otherwise.
	Submit(frame Frame, draw bool) error
	// Present queues the frame for display.
	Present(frame Frame) error
	// Reconfigure resizes the presentation surface.
	Reconfigure(width, height int)
	// HardwareNow returns a current reading of the clock that stamps
	// FrameCounterSample.SyncTime, for anchoring the time base.
	HardwareNow() int64

	StatsSource
}

// WindowTarget is what the capture needs from the windowing collaborator.
type WindowTarget interface {
	// RequestRedraw schedules the next capture iteration (continuous
	// redraw loop).
	RequestRedraw()
	// Exit ends the event loop.
	Exit()
}

// Capture drives one capture run. A single thread owns it: the windowing
// callbacks, GPU submission, statistics polling and external signalling all
// run sequentially, which is what makes each polled present attributable to
// the frame just submitted. Run state (frame index, last observed counter,
// anchors) lives here and nowhere else.
type Capture struct {
	producer FrameProducer
	window   WindowTarget
	cfg      *Config
	logger   *zap.Logger

	poller     Poller
	correlator *Correlator
	signaler   *FrameSignaler
	dutyCycle  DutyCycle
	log        *RecordLog

	runningFrame int64
	lastPresent  uint64
	width        int
	height       int
	done         bool
}

// NewCapture wires a run. signalChannel may be nil to disable external
// signalling; logger may be nil for silence.
func NewCapture(cfg *Config, producer FrameProducer, window WindowTarget, signalChannel Flusher, logger *zap.Logger) *Capture {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Capture{
		producer:  producer,
		window:    window,
		cfg:       cfg,
		logger:    logger,
		poller:    Poller{Source: producer, Interval: cfg.PollInterval()},
		dutyCycle: cfg.Policy(),
		log:       NewRecordLog(cfg.FrameBudget),
	}
	if signalChannel != nil {
		c.signaler = &FrameSignaler{Channel: signalChannel, Timeout: cfg.SignalTimeout()}
	}
	return c
}

// Log exposes the accumulated records.
func (c *Capture) Log() *RecordLog {
	return c.log
}

// Frames returns how many frames have been captured so far.
func (c *Capture) Frames() int64 {
	return c.runningFrame
}

// Done reports whether the run has terminated (budget reached or close
// requested).
func (c *Capture) Done() bool {
	return c.done
}

// Resize reconfigures the presentation surface and schedules a redraw.
// Dimensions are clamped to at least 1; some platforms deliver zero sizes
// while minimized.
func (c *Capture) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
	c.producer.Reconfigure(c.width, c.height)
	c.window.RequestRedraw()
}

// CloseRequested terminates the run immediately, without export. A capture
// is either completed via the frame budget or discarded.
func (c *Capture) CloseRequested() {
	if c.done {
		return
	}
	c.done = true
	c.logger.Info("capture discarded on close request",
		zap.Int64("frames_collected", c.runningFrame))
	c.window.Exit()
}

// RedrawRequested runs one capture iteration: acquire, draw or skip per the
// duty cycle, present, busy-wait for the display-side present, correlate the
// two time bases, record, optionally signal, and check the budget. A
// returned error is fatal to the run.
func (c *Capture) RedrawRequested() error {
	if c.done {
		return nil
	}
	if c.correlator == nil {
		// Anchor both time bases at loop start.
		c.correlator = NewCorrelator(c.producer.HardwareNow())
	}

	frame, err := c.producer.AcquireFrame()
	if errors.Is(err, ErrSurfaceUnavailable) {
		// Transient, expected during resize. Reconfigure and let the
		// next redraw retry; no record is lost because none was made.
		c.producer.Reconfigure(c.width, c.height)
		c.window.RequestRedraw()
		c.logger.Warn("surface unavailable, reconfigured",
			zap.Int64("frame", c.runningFrame))
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.producer.Submit(frame, c.dutyCycle(c.runningFrame)); err != nil {
		return err
	}
	if err := c.producer.Present(frame); err != nil {
		return err
	}
	c.window.RequestRedraw()

	sample, err := c.poller.WaitForPresent(c.lastPresent)
	if err != nil {
		return err
	}
	times := c.correlator.Correlate(sample)

	if c.lastPresent != 0 {
		if missed := MissedPresents(c.lastPresent, sample.PresentCount); missed > 0 {
			c.logger.Warn("presents missed",
				zap.Uint64("missed", missed),
				zap.Int64("frame", c.runningFrame))
		}
	}
	c.lastPresent = sample.PresentCount

	c.log.AppendPair(times, int64(sample.RefreshCount))

	if c.signaler != nil && c.runningFrame < c.cfg.SignalFrames {
		if err := c.signaler.Signal(c.runningFrame); err != nil {
			return err
		}
	}

	c.runningFrame++
	c.logger.Info("collected frame",
		zap.Int64("frame", c.runningFrame),
		zap.Int64("budget", c.cfg.FrameBudget))

	if c.runningFrame >= c.cfg.FrameBudget {
		return c.finish()
	}
	return nil
}

// finish exports the log and ends the event loop. Export failure is fatal:
// the run produced no other durable artifact.
func (c *Capture) finish() error {
	c.done = true
	if err := ExportCSV(c.cfg.OutputPath, c.log); err != nil {
		return err
	}
	rep := Analyze(c.log)
	c.logger.Info("capture complete",
		zap.Int64("frames", c.runningFrame),
		zap.String("output", c.cfg.OutputPath),
		zap.Int("distinct_counts", rep.DistinctCounts),
		zap.Int64("missed_frames", rep.MissedFrames),
		zap.Int("order_violations", rep.OrderViolations),
		zap.Float64("skew_median_ticks", rep.SkewMedian),
		zap.Float64("skew_stddev_ticks", rep.SkewStddev))
	c.window.Exit()
	return nil
}

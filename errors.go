package vblanklat

import "errors"

// Capture error taxonomy. Only ErrSurfaceUnavailable is recoverable (the
// driver reconfigures the surface and retries on the next redraw); everything
// else aborts the run, since a capture with a partial external trace or a
// lost export has no value.
var (
	ErrAdapterUnavailable = errors.New("no compatible graphics adapter")
	ErrSurfaceUnavailable = errors.New("presentation surface unavailable")
	ErrExternalChannel    = errors.New("external signal channel failed")
	ErrExport             = errors.New("record export failed")
)

package vblanklat

// DutyCycle decides whether a given frame index draws the test pattern or
// submits an empty pass. The alternation exists only to give the backend's
// refresh counters a predictable signature; content is irrelevant.
type DutyCycle func(frame int64) bool

// DrawEvenFrames draws on even frame indices and skips odd ones.
func DrawEvenFrames(frame int64) bool {
	return frame%2 == 0
}

// DrawEvenUntil alternates like DrawEvenFrames up to cutoff, then stops
// drawing entirely. Used with an external signal channel so the drawn phase
// coincides with the signalled frames.
func DrawEvenUntil(cutoff int64) DutyCycle {
	return func(frame int64) bool {
		return frame < cutoff && frame%2 == 0
	}
}

// DrawEvenModulo alternates on the frame index wrapped at period.
func DrawEvenModulo(period int64) DutyCycle {
	return func(frame int64) bool {
		return (frame%period)%2 == 0
	}
}

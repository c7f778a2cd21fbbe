package blobpack

// Limits bounds the work Decode will do on untrusted input.
// Zero fields take the defaults.
type Limits struct {
	MaxBlobLen uint64 // input length cap, at most MaxBlobLen
	MaxFrames  int    // frame count cap; zero means unlimited
}

// DefaultLimits returns the limits Decode uses when none are given.
func DefaultLimits() Limits {
	return Limits{
		MaxBlobLen: MaxBlobLen,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxBlobLen == 0 || l.MaxBlobLen > d.MaxBlobLen {
		l.MaxBlobLen = d.MaxBlobLen
	}
	if l.MaxFrames < 0 {
		l.MaxFrames = d.MaxFrames
	}
	return l
}

package etterna

// Hit is the outcome of one note: either a signed timing deviation in
// seconds (negative = early) or a miss.
type Hit struct {
	deviation float64
	miss      bool
}

// HitAt returns a hit outcome at the given signed deviation.
func HitAt(deviation float64) Hit {
	return Hit{deviation: deviation}
}

// Missed returns the miss outcome.
func Missed() Hit {
	return Hit{miss: true}
}

// Deviation returns the signed deviation and whether the note was hit at all.
func (h Hit) Deviation() (float64, bool) {
	if h.miss {
		return 0, false
	}
	return h.deviation, true
}

// IsMiss reports whether no input registered for the note.
func (h Hit) IsMiss() bool {
	return h.miss
}

// IsWithinWindow reports whether the note was hit within the given window
// width. Misses are never within any window.
func (h Hit) IsWithinWindow(window float64) bool {
	if h.miss {
		return false
	}
	abs := h.deviation
	if abs < 0 {
		abs = -abs
	}
	return abs <= window
}

// IsConsideredMiss reports whether the judge would score this outcome as a
// miss: no input, or a hit past the judge's miss window.
func (h Hit) IsConsideredMiss(judge *Judge) bool {
	return !h.IsWithinWindow(judge.MissWindow)
}

// Shifted returns the hit with its deviation moved by offset. Misses are
// unchanged.
func (h Hit) Shifted(offset float64) Hit {
	if h.miss {
		return h
	}
	return Hit{deviation: h.deviation + offset}
}

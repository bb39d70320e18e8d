package replay

// Subset describes the fastest run of consecutive notes found by
// FastestNoteSubset.
type Subset struct {
	// Speed is the note rate in notes per second. Zero when no window of
	// the requested size exists or the window span is degenerate.
	Speed      float64
	StartIndex int
	EndIndex   int
}

// Windows used by the tap-speed metrics: a 20 note window per lane for jack
// speed, a 100 note window across all lanes for overall NPS.
const (
	jackSpeedWindow  = 20
	overallNPSWindow = 100
)

// FastestNoteSubset slides a window of exactly windowSize over the sorted
// timestamps and returns the window with the highest note rate, computed as
// (windowSize-1) / (last-first). Fewer than minNotes (or windowSize)
// timestamps, or a zero-span window, yield a zero speed.
func FastestNoteSubset(sortedSeconds []float64, windowSize, minNotes int) Subset {
	best := Subset{}
	if windowSize < 2 || len(sortedSeconds) < windowSize || len(sortedSeconds) < minNotes {
		return best
	}
	for end := windowSize - 1; end < len(sortedSeconds); end++ {
		start := end - windowSize + 1
		span := sortedSeconds[end] - sortedSeconds[start]
		if span <= 0 {
			continue
		}
		speed := float64(windowSize-1) / span
		if speed > best.Speed {
			best = Subset{Speed: speed, StartIndex: start, EndIndex: end}
		}
	}
	return best
}

// FastestNPS returns the highest overall note rate sustained over a 100 note
// window. Reports false when the replay has no hits at all.
func (r *Replay) FastestNPS() (float64, bool) {
	seconds := r.HitSeconds()
	if len(seconds) == 0 {
		return 0, false
	}
	return FastestNoteSubset(seconds, overallNPSWindow, overallNPSWindow).Speed, true
}

// FastestJackSpeed returns the highest single-lane note rate sustained over a
// 20 note window, maximized over all lanes. Reports false when the replay has
// no hits at all.
func (r *Replay) FastestJackSpeed() (float64, bool) {
	lanes := r.LaneHitSeconds()
	if lanes == nil {
		return 0, false
	}
	var fastest float64
	for _, lane := range lanes {
		if speed := FastestNoteSubset(lane, jackSpeedWindow, jackSpeedWindow).Speed; speed > fastest {
			fastest = speed
		}
	}
	return fastest, true
}

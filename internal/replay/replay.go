package replay

import (
	"sort"

	"etternabot/internal/etterna"
)

// NoteKind distinguishes the chart object a replay row belongs to. Replays
// from the score API frequently omit the kind; unknown rows are treated as
// plain taps.
type NoteKind int

const (
	KindUnknown NoteKind = iota
	KindTap
	KindHoldHead
	KindHoldTail
	KindLift
	KindMine
	KindKeysound
	KindFake
)

// Note is one row of a replay: the lane it was placed in, the chart time it
// was due, what kind of object it was, and how the player hit it.
type Note struct {
	Lane    int
	Seconds float64
	Kind    NoteKind
	Hit     etterna.Hit
}

func (n Note) kind() NoteKind {
	if n.Kind == KindUnknown {
		return KindTap
	}
	return n.Kind
}

// Replay is the ordered note-by-note record of one play. The analyzer never
// mutates it; derived replays are copies.
type Replay struct {
	Notes []Note
}

// Keymode returns the number of lanes implied by the replay (highest lane
// index plus one) and whether any notes exist at all.
func (r *Replay) Keymode() (int, bool) {
	if r == nil || len(r.Notes) == 0 {
		return 0, false
	}
	highest := 0
	for _, note := range r.Notes {
		if note.Lane > highest {
			highest = note.Lane
		}
	}
	return highest + 1, true
}

// HitSeconds returns the wall-clock second of every non-miss note (chart time
// plus deviation), sorted ascending. Replay row order is not trusted.
func (r *Replay) HitSeconds() []float64 {
	if r == nil {
		return nil
	}
	seconds := make([]float64, 0, len(r.Notes))
	for _, note := range r.Notes {
		deviation, ok := note.Hit.Deviation()
		if !ok {
			continue
		}
		seconds = append(seconds, note.Seconds+deviation)
	}
	sort.Float64s(seconds)
	return seconds
}

// LaneHitSeconds splits the hit seconds by lane, each lane sorted ascending.
func (r *Replay) LaneHitSeconds() [][]float64 {
	keymode, ok := r.Keymode()
	if !ok {
		return nil
	}
	lanes := make([][]float64, keymode)
	for _, note := range r.Notes {
		deviation, hitOK := note.Hit.Deviation()
		if !hitOK || note.Lane < 0 || note.Lane >= keymode {
			continue
		}
		lanes[note.Lane] = append(lanes[note.Lane], note.Seconds+deviation)
	}
	for _, lane := range lanes {
		sort.Float64s(lane)
	}
	return lanes
}

// MeanOffset returns the arithmetic mean of the signed deviations of all hit
// notes. A positive mean means the player tends to hit late. Reports false
// when the replay contains no hits.
func (r *Replay) MeanOffset() (float64, bool) {
	if r == nil {
		return 0, false
	}
	var sum float64
	var hits int
	for _, note := range r.Notes {
		deviation, ok := note.Hit.Deviation()
		if !ok {
			continue
		}
		sum += deviation
		hits++
	}
	if hits == 0 {
		return 0, false
	}
	return sum / float64(hits), true
}

// ShiftDeviations returns a derived replay with every hit deviation moved by
// offset. Shifting by the negated mean offset produces the zero-mean replay
// used for bias-corrected rescoring.
func (r *Replay) ShiftDeviations(offset float64) *Replay {
	if r == nil {
		return nil
	}
	notes := make([]Note, len(r.Notes))
	for i, note := range r.Notes {
		note.Hit = note.Hit.Shifted(offset)
		notes[i] = note
	}
	return &Replay{Notes: notes}
}

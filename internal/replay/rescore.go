package replay

import "etternabot/internal/etterna"

// ScoringVariant selects how hits are consumed during a rescore.
type ScoringVariant int

const (
	// ScorerNaive scores every note independently from its recorded hit.
	// This is the reference behavior.
	ScorerNaive ScoringVariant = iota
	// ScorerMatching additionally accounts for row-level consumption of
	// simultaneous notes: within one chart row a lane's hit can only be
	// spent once, and duplicate rows on an already-consumed lane score as
	// misses.
	ScorerMatching
)

// Penalties carries mine-hit and dropped-hold counts taken from a score's
// judgement tally, for replays that record taps only.
type Penalties struct {
	MineHits     int
	DroppedHolds int
}

// Rescore recomputes the wifescore of a replay under the given formula and
// judge, using only the information in the note rows. Reports false when the
// replay holds no countable notes.
func Rescore(r *Replay, variant ScoringVariant, formula *etterna.WifeFormula, judge *etterna.Judge) (etterna.Wifescore, bool) {
	return RescoreWithPenalties(r, Penalties{}, variant, formula, judge)
}

// RescoreWithPenalties is Rescore plus explicit mine-hit and dropped-hold
// penalties. The extra penalties lower the score without adding to the note
// count, mirroring how the game treats them.
func RescoreWithPenalties(r *Replay, penalties Penalties, variant ScoringVariant, formula *etterna.WifeFormula, judge *etterna.Judge) (etterna.Wifescore, bool) {
	if r == nil || len(r.Notes) == 0 {
		return 0, false
	}

	var consumed map[rowLane]bool
	if variant == ScorerMatching {
		consumed = make(map[rowLane]bool, len(r.Notes))
	}

	var points float64
	var count int
	for _, note := range r.Notes {
		hit := note.Hit
		if variant == ScorerMatching && note.kind().countsAsNote() {
			key := rowLane{seconds: note.Seconds, lane: note.Lane}
			if consumed[key] {
				hit = etterna.Missed()
			} else {
				consumed[key] = true
			}
		}
		notePoints, noteCount := wifePoints(note.kind(), hit, formula, judge)
		points += notePoints
		count += noteCount
	}

	points += float64(penalties.MineHits) * formula.MineHitWeight
	points += float64(penalties.DroppedHolds) * formula.HoldDropWeight

	if count == 0 {
		return 0, false
	}
	return etterna.WifescoreFromProportion(points / float64(count)), true
}

type rowLane struct {
	seconds float64
	lane    int
}

func (k NoteKind) countsAsNote() bool {
	switch k {
	case KindTap, KindHoldHead, KindLift:
		return true
	default:
		return false
	}
}

// wifePoints returns the wife points a note contributes and how many notes it
// should be counted as (0 or 1). Tap-family notes score their hit; a dropped
// hold tail or a struck mine contributes only its penalty; keysounds and
// fakes are excluded entirely.
func wifePoints(kind NoteKind, hit etterna.Hit, formula *etterna.WifeFormula, judge *etterna.Judge) (float64, int) {
	switch kind {
	case KindTap, KindHoldHead, KindLift:
		return formula.Points(hit, judge), 1
	case KindHoldTail:
		if hit.IsConsideredMiss(judge) {
			return formula.HoldDropWeight, 0
		}
		return 0, 0
	case KindMine:
		if !hit.IsMiss() {
			return formula.MineHitWeight, 0
		}
		return 0, 0
	default: // keysound, fake
		return 0, 0
	}
}

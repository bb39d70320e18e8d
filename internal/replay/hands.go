package replay

import (
	"fmt"

	"etternabot/internal/etterna"
)

// fourKeyKeymode is the only lane layout with a well-defined left/right
// split: lanes 0 and 1 against lanes 2 and 3. Hand balance fails closed for
// anything else rather than silently mis-partitioning.
const fourKeyKeymode = 4

// HandBalance is the average per-note wife score of each hand.
type HandBalance struct {
	Left  etterna.Wifescore
	Right etterna.Wifescore
}

// HandBalanceFor partitions a 4-key replay into hands and averages each
// hand's wife points under the given judge. Reports false for other keymodes
// or when either hand holds no countable notes.
func (r *Replay) HandBalanceFor(keymode int, formula *etterna.WifeFormula, judge *etterna.Judge) (HandBalance, bool) {
	if keymode != fourKeyKeymode || r == nil {
		return HandBalance{}, false
	}
	var leftPoints, rightPoints float64
	var leftNotes, rightNotes int
	for _, note := range r.Notes {
		points, count := wifePoints(note.kind(), note.Hit, formula, judge)
		switch note.Lane {
		case 0, 1:
			leftPoints += points
			leftNotes += count
		case 2, 3:
			rightPoints += points
			rightNotes += count
		}
	}
	if leftNotes == 0 || rightNotes == 0 {
		return HandBalance{}, false
	}
	return HandBalance{
		Left:  etterna.WifescoreFromProportion(leftPoints / float64(leftNotes)),
		Right: etterna.WifescoreFromProportion(rightPoints / float64(rightNotes)),
	}, true
}

// FunFact renders the qualitative imbalance note when one hand's miss
// proportion (1 - wife) is at least twice the other's. Reports false for
// balanced hands.
func (b HandBalance) FunFact() (string, bool) {
	better, betterName := b.Left, "left"
	lower, lowerName := b.Right, "right"
	if b.Right > b.Left {
		better, betterName = b.Right, "right"
		lower, lowerName = b.Left, "left"
	}
	if (1.0-float64(lower))/(1.0-float64(better)) < 2.0 {
		return "", false
	}
	return fmt.Sprintf(
		"Your %s hand played %.2f%% better than your %s hand (%.2f%% vs %.2f%%). Are you %s-handed? ;)",
		betterName,
		better.Percent()-lower.Percent(),
		lowerName,
		better.Percent(),
		lower.Percent(),
		betterName,
	), true
}

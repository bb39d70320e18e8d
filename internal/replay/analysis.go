package replay

import "etternabot/internal/etterna"

// ScoringComparison recomputes one score under both Wife formulas plus the
// bias-corrected Wife3 variant.
type ScoringComparison struct {
	Wife2         etterna.Wifescore
	Wife3         etterna.Wifescore
	Wife3ZeroMean etterna.Wifescore
}

// Analysis is the full replay analytics bundle consumed by the card
// renderer.
type Analysis struct {
	ComparisonJ4        ScoringComparison
	ComparisonAlternate *ScoringComparison
	AlternateJudge      *etterna.Judge

	FastestJackSpeed float64 // NPS, single lane over 20 notes
	FastestNPS       float64 // NPS over 100 notes
	Combos           ComboStats
	MeanOffset       float64
	FunFacts         []string
}

// Analyze builds the analytics bundle for a replay. Penalties are the
// mine-hit and dropped-hold counts reported by the score itself; they are
// ignored for the kinds the replay records explicitly, so nothing is counted
// twice. Reports false when the replay is absent, empty, or yields no
// countable notes.
func Analyze(r *Replay, penalties Penalties, altJudge *etterna.Judge) (*Analysis, bool) {
	if r == nil || len(r.Notes) == 0 {
		return nil, false
	}
	penalties = trimRecordedPenalties(r, penalties)

	meanOffset, _ := r.MeanOffset()
	zeroMean := r.ShiftDeviations(-meanOffset)

	comparisonJ4, ok := compareScoringSystems(r, zeroMean, penalties, etterna.J4)
	if !ok {
		return nil, false
	}

	analysis := &Analysis{
		ComparisonJ4:   comparisonJ4,
		AlternateJudge: altJudge,
		Combos:         r.Combos(etterna.J4),
		MeanOffset:     meanOffset,
	}

	if altJudge != nil {
		if alt, altOK := compareScoringSystems(r, zeroMean, penalties, altJudge); altOK {
			analysis.ComparisonAlternate = &alt
		}
	}

	if speed, speedOK := r.FastestJackSpeed(); speedOK {
		analysis.FastestJackSpeed = speed
	}
	if nps, npsOK := r.FastestNPS(); npsOK {
		analysis.FastestNPS = nps
	}

	if keymode, keymodeOK := r.Keymode(); keymodeOK {
		if balance, balanceOK := r.HandBalanceFor(keymode, etterna.Wife3, etterna.J4); balanceOK {
			if fact, factOK := balance.FunFact(); factOK {
				analysis.FunFacts = append(analysis.FunFacts, fact)
			}
		}
	}

	return analysis, true
}

func compareScoringSystems(r, zeroMean *Replay, penalties Penalties, judge *etterna.Judge) (ScoringComparison, bool) {
	wife2, ok2 := RescoreWithPenalties(r, penalties, ScorerNaive, etterna.Wife2, judge)
	wife3, ok3 := RescoreWithPenalties(r, penalties, ScorerNaive, etterna.Wife3, judge)
	shifted, okShifted := RescoreWithPenalties(zeroMean, penalties, ScorerNaive, etterna.Wife3, judge)
	if !ok2 || !ok3 || !okShifted {
		return ScoringComparison{}, false
	}
	return ScoringComparison{Wife2: wife2, Wife3: wife3, Wife3ZeroMean: shifted}, true
}

// trimRecordedPenalties drops score-level penalty counts for note kinds the
// replay already records, so Rescore does not charge them twice.
func trimRecordedPenalties(r *Replay, penalties Penalties) Penalties {
	for _, note := range r.Notes {
		switch note.kind() {
		case KindMine:
			penalties.MineHits = 0
		case KindHoldTail:
			penalties.DroppedHolds = 0
		}
	}
	return penalties
}

package replay

import (
	"math"
	"testing"

	"etternabot/internal/etterna"
)

func tapsAt(deviations ...float64) *Replay {
	rep := &Replay{}
	for i, d := range deviations {
		rep.Notes = append(rep.Notes, Note{Lane: i % 4, Seconds: float64(i) * 0.25, Hit: etterna.HitAt(d)})
	}
	return rep
}

func TestRescorePerfectPlay(t *testing.T) {
	rep := tapsAt(0, 0, 0, 0)
	for _, judge := range etterna.Judges() {
		score, ok := Rescore(rep, ScorerNaive, etterna.Wife3, judge)
		if !ok {
			t.Fatalf("%s: rescore unavailable", judge.Name)
		}
		if math.Abs(score.Percent()-100.0) > 1e-9 {
			t.Fatalf("%s: perfect play scored %v%%", judge.Name, score.Percent())
		}
	}
}

func TestRescoreEmptyReplayUnavailable(t *testing.T) {
	if _, ok := Rescore(&Replay{}, ScorerNaive, etterna.Wife3, etterna.J4); ok {
		t.Fatal("empty replay should be unavailable")
	}
	if _, ok := Rescore(nil, ScorerNaive, etterna.Wife3, etterna.J4); ok {
		t.Fatal("nil replay should be unavailable")
	}
}

func TestRescoreNoCountableNotesUnavailable(t *testing.T) {
	rep := &Replay{Notes: []Note{
		{Lane: 0, Kind: KindMine, Hit: etterna.Missed()},
		{Lane: 1, Kind: KindFake, Hit: etterna.HitAt(0)},
	}}
	if _, ok := Rescore(rep, ScorerNaive, etterna.Wife3, etterna.J4); ok {
		t.Fatal("replay without countable notes should be unavailable")
	}
}

func TestRescoreMixedKinds(t *testing.T) {
	rep := &Replay{Notes: []Note{
		{Lane: 0, Kind: KindTap, Hit: etterna.HitAt(0)},
		{Lane: 1, Kind: KindHoldHead, Hit: etterna.HitAt(0)},
		{Lane: 2, Kind: KindHoldTail, Hit: etterna.Missed()},  // dropped: penalty only
		{Lane: 3, Kind: KindMine, Hit: etterna.HitAt(0.001)},  // struck: penalty only
		{Lane: 0, Kind: KindKeysound, Hit: etterna.HitAt(0)},  // excluded
		{Lane: 1, Kind: KindFake, Hit: etterna.Missed()},      // excluded
	}}
	score, ok := Rescore(rep, ScorerNaive, etterna.Wife3, etterna.J4)
	if !ok {
		t.Fatal("rescore unavailable")
	}
	want := (1.0 + 1.0 + etterna.Wife3.HoldDropWeight + etterna.Wife3.MineHitWeight) / 2.0
	if math.Abs(float64(score)-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", float64(score), want)
	}
}

func TestRescoreWithPenalties(t *testing.T) {
	rep := tapsAt(0, 0)
	plain, _ := Rescore(rep, ScorerNaive, etterna.Wife3, etterna.J4)
	penalized, ok := RescoreWithPenalties(rep, Penalties{MineHits: 1, DroppedHolds: 1}, ScorerNaive, etterna.Wife3, etterna.J4)
	if !ok {
		t.Fatal("rescore unavailable")
	}
	wantDrop := (etterna.Wife3.MineHitWeight + etterna.Wife3.HoldDropWeight) / 2.0
	if math.Abs(float64(penalized-plain)-wantDrop) > 1e-9 {
		t.Fatalf("penalty delta = %v, want %v", float64(penalized-plain), wantDrop)
	}
}

func TestRescoreMatchingConsumesRowLane(t *testing.T) {
	// Two taps in the same row and lane: the matching scorer spends the
	// lane's hit once and scores the duplicate as a miss.
	rep := &Replay{Notes: []Note{
		{Lane: 0, Seconds: 1.0, Hit: etterna.HitAt(0)},
		{Lane: 0, Seconds: 1.0, Hit: etterna.HitAt(0)},
	}}
	naive, _ := Rescore(rep, ScorerNaive, etterna.Wife3, etterna.J4)
	matching, ok := Rescore(rep, ScorerMatching, etterna.Wife3, etterna.J4)
	if !ok {
		t.Fatal("rescore unavailable")
	}
	if naive.Percent() != 100.0 {
		t.Fatalf("naive = %v%%, want 100", naive.Percent())
	}
	want := (1.0 + etterna.Wife3.MissWeight) / 2.0
	if math.Abs(float64(matching)-want) > 1e-9 {
		t.Fatalf("matching = %v, want %v", float64(matching), want)
	}
}

func TestMeanOffsetBalancedDeviations(t *testing.T) {
	rep := tapsAt(-0.02, 0.02, -0.01, 0.01)
	offset, ok := rep.MeanOffset()
	if !ok {
		t.Fatal("mean offset unavailable")
	}
	if math.Abs(offset) > 1e-12 {
		t.Fatalf("mean offset = %v, want 0", offset)
	}
}

func TestZeroMeanRescoreRemovesBias(t *testing.T) {
	// Every hit 30ms late: shifting by the negated mean offset lands every
	// deviation on zero, the maximum wife score under any judge.
	rep := tapsAt(0.03, 0.03, 0.03, 0.03)
	offset, _ := rep.MeanOffset()
	shifted := rep.ShiftDeviations(-offset)
	for _, judge := range etterna.Judges() {
		score, ok := Rescore(shifted, ScorerNaive, etterna.Wife3, judge)
		if !ok {
			t.Fatalf("%s: rescore unavailable", judge.Name)
		}
		if math.Abs(score.Percent()-100.0) > 1e-9 {
			t.Fatalf("%s: zero-mean rescore = %v%%, want 100", judge.Name, score.Percent())
		}
	}
}

func TestShiftDeviationsDoesNotMutate(t *testing.T) {
	rep := tapsAt(0.02)
	_ = rep.ShiftDeviations(-0.02)
	deviation, _ := rep.Notes[0].Hit.Deviation()
	if deviation != 0.02 {
		t.Fatalf("original replay mutated: deviation = %v", deviation)
	}
}

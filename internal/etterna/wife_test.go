package etterna

import (
	"math"
	"testing"
)

func TestWifePointsDeadOnHit(t *testing.T) {
	for _, formula := range []*WifeFormula{Wife2, Wife3} {
		for _, judge := range Judges() {
			if got := formula.Points(HitAt(0), judge); math.Abs(got-1.0) > 1e-9 {
				t.Fatalf("%s on %s: dead-on hit worth %v, want 1.0", formula.Name, judge.Name, got)
			}
		}
	}
}

func TestWifePointsMiss(t *testing.T) {
	if got := Wife3.Points(Missed(), J4); got != Wife3.MissWeight {
		t.Fatalf("Wife3 miss = %v, want %v", got, Wife3.MissWeight)
	}
	if got := Wife2.Points(Missed(), J4); got != Wife2.MissWeight {
		t.Fatalf("Wife2 miss = %v, want %v", got, Wife2.MissWeight)
	}
}

func TestWifePointsSymmetric(t *testing.T) {
	for _, dev := range []float64{0.010, 0.050, 0.120} {
		early := Wife3.Points(HitAt(-dev), J4)
		late := Wife3.Points(HitAt(dev), J4)
		if math.Abs(early-late) > 1e-9 {
			t.Fatalf("asymmetric points at ±%v: %v vs %v", dev, early, late)
		}
	}
}

func TestWifePointsMonotoneInDeviation(t *testing.T) {
	prev := math.Inf(1)
	for _, dev := range []float64{0.0, 0.010, 0.030, 0.060, 0.100, 0.150, 0.200} {
		got := Wife3.Points(HitAt(dev), J4)
		if got > prev+1e-9 {
			t.Fatalf("points increased with deviation at %v: %v > %v", dev, got, prev)
		}
		prev = got
	}
}

func TestStricterJudgeScoresLower(t *testing.T) {
	const dev = 0.040
	loose := Wife3.Points(HitAt(dev), J1)
	strict := Wife3.Points(HitAt(dev), J7)
	if strict >= loose {
		t.Fatalf("J7 should score a %vs deviation lower than J1: %v vs %v", dev, strict, loose)
	}
}

func TestWifePointsFarOffHitEqualsMissWeight(t *testing.T) {
	if got := Wife3.Points(HitAt(0.5), J4); got != Wife3.MissWeight {
		t.Fatalf("far-off hit = %v, want miss weight %v", got, Wife3.MissWeight)
	}
}

func TestWifescoreConversions(t *testing.T) {
	w := WifescoreFromPercent(96.5)
	if math.Abs(w.Percent()-96.5) > 1e-9 {
		t.Fatalf("round trip percent = %v", w.Percent())
	}
	if WifescoreFromProportion(1.0).Percent() != 100.0 {
		t.Fatal("proportion 1.0 should be 100%")
	}
}

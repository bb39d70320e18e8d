package etterna

import "math"

// Wifescore is an accuracy value stored as a proportion: 1.0 is a flawless
// 100%. Rescored values can go negative because misses and mine hits carry
// negative point weights.
type Wifescore float64

// WifescoreFromProportion builds a Wifescore from a 0..1 proportion.
func WifescoreFromProportion(p float64) Wifescore {
	return Wifescore(p)
}

// WifescoreFromPercent builds a Wifescore from a 0..100 percentage.
func WifescoreFromPercent(p float64) Wifescore {
	return Wifescore(p / 100.0)
}

// Percent returns the score as a 0..100 percentage.
func (w Wifescore) Percent() float64 {
	return float64(w) * 100.0
}

// WifeFormula is one of Etterna's per-note scoring curves. Points returns a
// value normalized so a dead-on hit is worth 1.0; the weight fields are the
// penalties for misses, hit mines, and dropped holds on the same scale.
type WifeFormula struct {
	Name           string
	MissWeight     float64
	MineHitWeight  float64
	HoldDropWeight float64

	points func(absDeviation, timingScale float64) float64
}

// Points maps a hit outcome to per-note wife points under the given judge.
func (w *WifeFormula) Points(hit Hit, judge *Judge) float64 {
	deviation, ok := hit.Deviation()
	if !ok {
		return w.MissWeight
	}
	return w.points(math.Abs(deviation), judge.TimingScale)
}

// Wife2 is the legacy scoring curve, kept for comparison output.
var Wife2 = &WifeFormula{
	Name:           "Wife2",
	MissWeight:     -4.0,
	MineHitWeight:  -4.0,
	HoldDropWeight: -3.0,
	points:         wife2Points,
}

// Wife3 is the current scoring curve.
var Wife3 = &WifeFormula{
	Name:           "Wife3",
	MissWeight:     -2.75,
	MineHitWeight:  -3.5,
	HoldDropWeight: -2.25,
	points:         wife3Points,
}

// wife2Points reproduces the Wife2 curve, halved so the maximum per-note
// value is 1.0 instead of the game's internal 2.0.
func wife2Points(absDeviation, timingScale float64) float64 {
	ms := absDeviation * 1000.0
	avgDeviation := 95.0 * timingScale
	y := 1.0 - math.Pow(2.0, -ms*ms/(avgDeviation*avgDeviation))
	y = y * y
	return ((2.0-(-8.0))*(1.0-y) + (-8.0)) / 2.0
}

// wife3Points reproduces the Wife3 erf curve, halved so the maximum per-note
// value is 1.0 instead of the game's internal 2.0.
func wife3Points(absDeviation, timingScale float64) float64 {
	const (
		jPow       = 0.75
		maxPoints  = 2.0
		missWeight = -5.5
	)
	ridiculous := 5.0 * timingScale
	maxBoo := 180.0 * timingScale

	ms := absDeviation * 1000.0
	if ms <= ridiculous {
		return maxPoints / 2.0
	}

	zero := 65.0 * math.Pow(timingScale, jPow)
	dev := 22.7 * math.Pow(timingScale, jPow)

	if ms <= zero {
		return maxPoints * math.Erf((zero-ms)/dev) / 2.0
	}
	if ms <= maxBoo {
		return (ms - zero) * missWeight / (maxBoo - zero) / 2.0
	}
	return missWeight / 2.0
}

package etterna

import "fmt"

// Judgement is one of the six tap judgement categories.
type Judgement int

const (
	Marvelous Judgement = iota
	Perfect
	Great
	Good
	Bad
	Miss
)

func (j Judgement) String() string {
	switch j {
	case Marvelous:
		return "Marvelous"
	case Perfect:
		return "Perfect"
	case Great:
		return "Great"
	case Good:
		return "Good"
	case Bad:
		return "Bad"
	case Miss:
		return "Miss"
	default:
		return fmt.Sprintf("Judgement(%d)", int(j))
	}
}

// Judge bundles the timing windows of one judge difficulty. Window widths are
// in seconds; a deviation is classified by the smallest window whose bound it
// does not exceed, and anything past the miss window is a miss.
type Judge struct {
	Name        string
	Number      int
	TimingScale float64

	MarvelousWindow float64
	PerfectWindow   float64
	GreatWindow     float64
	GoodWindow      float64
	BadWindow       float64
	// MissWindow equals the bad bound: a tap landing past it is judged a
	// miss even though an input was registered.
	MissWindow float64
}

// Base window widths at timing scale 1.0 (J4), in seconds.
const (
	baseMarvelousWindow = 0.0225
	basePerfectWindow   = 0.045
	baseGreatWindow     = 0.090
	baseGoodWindow      = 0.135
	baseBadWindow       = 0.180
)

func newJudge(number int, scale float64) *Judge {
	return &Judge{
		Name:            fmt.Sprintf("J%d", number),
		Number:          number,
		TimingScale:     scale,
		MarvelousWindow: baseMarvelousWindow * scale,
		PerfectWindow:   basePerfectWindow * scale,
		GreatWindow:     baseGreatWindow * scale,
		GoodWindow:      baseGoodWindow * scale,
		BadWindow:       baseBadWindow * scale,
		MissWindow:      baseBadWindow * scale,
	}
}

// The nine built-in judges, loosest (J1) to strictest (J9).
var (
	J1 = newJudge(1, 1.50)
	J2 = newJudge(2, 1.33)
	J3 = newJudge(3, 1.16)
	J4 = newJudge(4, 1.00)
	J5 = newJudge(5, 0.84)
	J6 = newJudge(6, 0.66)
	J7 = newJudge(7, 0.50)
	J8 = newJudge(8, 0.33)
	J9 = newJudge(9, 0.20)
)

var judges = [...]*Judge{J1, J2, J3, J4, J5, J6, J7, J8, J9}

// JudgeByNumber returns the built-in judge for numbers 1 through 9.
func JudgeByNumber(number int) (*Judge, bool) {
	if number < 1 || number > len(judges) {
		return nil, false
	}
	return judges[number-1], true
}

// Judges returns the built-in judge table in ascending strictness order.
func Judges() []*Judge {
	out := make([]*Judge, len(judges))
	copy(out, judges[:])
	return out
}

// Classify maps a signed hit deviation in seconds onto a judgement.
func (j *Judge) Classify(deviation float64) Judgement {
	abs := deviation
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= j.MarvelousWindow:
		return Marvelous
	case abs <= j.PerfectWindow:
		return Perfect
	case abs <= j.GreatWindow:
		return Great
	case abs <= j.GoodWindow:
		return Good
	case abs <= j.BadWindow:
		return Bad
	default:
		return Miss
	}
}

// Window returns the width of the named judgement window.
func (j *Judge) Window(judgement Judgement) float64 {
	switch judgement {
	case Marvelous:
		return j.MarvelousWindow
	case Perfect:
		return j.PerfectWindow
	case Great:
		return j.GreatWindow
	case Good:
		return j.GoodWindow
	case Bad:
		return j.BadWindow
	default:
		return j.MissWindow
	}
}

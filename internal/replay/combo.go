package replay

import "etternabot/internal/etterna"

// exactWindow is the ±5ms bound for the "100% combo" statistic.
const exactWindow = 0.005

// ComboStats are the longest streaks of consecutive notes hit within
// successively tighter windows of the reference judge.
type ComboStats struct {
	Longest          int // great window
	LongestPerfect   int
	LongestMarvelous int
	Longest100       int // within ±5ms
}

// LongestCombo returns the longest run of consecutive notes, in replay
// order, whose hits satisfy the predicate. A miss or a failing hit resets the
// streak to zero.
func (r *Replay) LongestCombo(within func(etterna.Hit) bool) int {
	if r == nil {
		return 0
	}
	longest, current := 0, 0
	for _, note := range r.Notes {
		if within(note.Hit) {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}

// Combos computes the combo statistics against the reference judge's
// windows.
func (r *Replay) Combos(judge *etterna.Judge) ComboStats {
	return ComboStats{
		Longest: r.LongestCombo(func(h etterna.Hit) bool {
			return h.IsWithinWindow(judge.GreatWindow)
		}),
		LongestPerfect: r.LongestCombo(func(h etterna.Hit) bool {
			return h.IsWithinWindow(judge.PerfectWindow)
		}),
		LongestMarvelous: r.LongestCombo(func(h etterna.Hit) bool {
			return h.IsWithinWindow(judge.MarvelousWindow)
		}),
		Longest100: r.LongestCombo(func(h etterna.Hit) bool {
			return h.IsWithinWindow(exactWindow)
		}),
	}
}

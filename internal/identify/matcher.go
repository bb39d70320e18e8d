package identify

import (
	"math"

	"etternabot/internal/textutil"
)

// DefaultThreshold is the evidence score a candidate must strictly exceed to
// be considered identified.
const DefaultThreshold = 8

// floatTolerance is the absolute tolerance for the floating fields; OCR and
// the score API round percentages differently. The epsilon keeps pairs that
// are nominally exactly 0.01 apart (96.50 vs 96.49) inside the tolerance
// despite binary rounding of the difference.
const (
	floatTolerance = 0.01
	floatEpsilon   = 1e-9
)

// Field weights. Song titles and the difficulty ratings are the strongest
// evidence; the rate and the difficulty slot are nearly always shared between
// unrelated scores and count for little.
const (
	weightRate           = 2
	weightPack           = 3
	weightUsername       = 5
	weightSong           = 6
	weightArtist         = 3
	weightWifescore      = 5
	weightMSD            = 6
	weightSSR            = 6
	weightDifficulty     = 2
	weightJudgementField = 2
)

// MatchScore scores how well two readings agree: each field present on both
// sides adds its weight when the values match, and absent fields add nothing.
// The comparison is symmetric, so MatchScore(a, b) == MatchScore(b, a).
func MatchScore(a, b Reading) int {
	score := 0
	score += discrete(a.Rate, b.Rate, weightRate)
	score += discrete(a.Pack, b.Pack, weightPack)
	score += folded(a.Username, b.Username, weightUsername)
	score += discrete(a.Song, b.Song, weightSong)
	score += discrete(a.Artist, b.Artist, weightArtist)
	score += approximate(a.Wifescore, b.Wifescore, weightWifescore)
	score += approximate(a.MSD, b.MSD, weightMSD)
	score += approximate(a.SSR, b.SSR, weightSSR)
	score += discrete(a.Difficulty, b.Difficulty, weightDifficulty)

	if a.Judgements != nil && b.Judgements != nil {
		aj, bj := *a.Judgements, *b.Judgements
		score += discrete(&aj.Marvelouses, &bj.Marvelouses, weightJudgementField)
		score += discrete(&aj.Perfects, &bj.Perfects, weightJudgementField)
		score += discrete(&aj.Greats, &bj.Greats, weightJudgementField)
		score += discrete(&aj.Goods, &bj.Goods, weightJudgementField)
		score += discrete(&aj.Bads, &bj.Bads, weightJudgementField)
		score += discrete(&aj.Misses, &bj.Misses, weightJudgementField)
	}
	return score
}

// BestMatch returns the candidate whose best MatchScore over all readings is
// the highest while strictly exceeding the threshold. Ties keep the earliest
// candidate in list order, so callers passing most-recent-first score lists
// prefer the newer score. Reports false when nothing clears the threshold.
func BestMatch(readings []Reading, candidates []Candidate, threshold int) (Candidate, bool) {
	best := Candidate{}
	bestScore := threshold
	found := false
	for _, candidate := range candidates {
		score := bestReadingScore(readings, candidate.Reading)
		if score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}
	return best, found
}

// bestReadingScore takes the maximum over the theme readings: different
// themes read different field subsets correctly, so the best agreement is the
// one that counts.
func bestReadingScore(readings []Reading, candidate Reading) int {
	best := 0
	for _, reading := range readings {
		if score := MatchScore(reading, candidate); score > best {
			best = score
		}
	}
	return best
}

func discrete[T comparable](a, b *T, weight int) int {
	if a == nil || b == nil || *a != *b {
		return 0
	}
	return weight
}

func approximate(a, b *float64, weight int) int {
	if a == nil || b == nil || math.Abs(*a-*b) > floatTolerance+floatEpsilon {
		return 0
	}
	return weight
}

// folded compares player names under case folding; players routinely type
// their own name in a different case than the score service stores it.
func folded(a, b *string, weight int) int {
	if a == nil || b == nil || !textutil.EqualFold(*a, *b) {
		return 0
	}
	return weight
}

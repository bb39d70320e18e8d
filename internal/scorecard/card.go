package scorecard

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"etternabot/internal/eo"
	"etternabot/internal/etterna"
	"etternabot/internal/replay"
	"etternabot/internal/textutil"
)

// Input carries everything a card can show. Score is required; the analysis
// and alternate judge sections are optional.
type Input struct {
	Score          *eo.Score
	Analysis       *replay.Analysis
	AlternateJudge *etterna.Judge

	// ExpectedUsername triggers a mismatch warning when the score was
	// recorded under a different player, which happens when two scores
	// collide on one scorekey.
	ExpectedUsername string
}

// Card is a rendered score presentation.
type Card struct {
	Title       string
	URL         string
	Warning     string
	Body        string
	Comparisons string
	TapSpeeds   string
	Combos      string
	FunFacts    string
}

// Build renders a card from the input.
func Build(in Input) (*Card, error) {
	if in.Score == nil {
		return nil, errors.New("score required")
	}
	score := in.Score

	card := &Card{
		Title: score.Song,
		URL:   fmt.Sprintf("https://etternaonline.com/score/view/%s%d", score.Scorekey, score.UserID),
		Body:  renderBody(score, alternateWifescore(in), in.AlternateJudge),
	}
	if in.ExpectedUsername != "" && !textutil.EqualFold(in.ExpectedUsername, score.Username) {
		card.Warning = "Multiple scores were assigned the same unique identifier (scorekey), so you are seeing the wrong score here. Sorry!"
	}

	if analysis := in.Analysis; analysis != nil {
		card.Comparisons = renderComparisons(score, analysis)
		card.TapSpeeds = fmt.Sprintf(
			"Fastest jack over a course of 20 notes: %.2f NPS\nFastest total NPS over a course of 100 notes: %.2f NPS",
			analysis.FastestJackSpeed, analysis.FastestNPS,
		)
		card.Combos = fmt.Sprintf(
			"Longest combo: %d\nLongest perfect combo: %d\nLongest marvelous combo: %d\nLongest 100%% combo: %d",
			analysis.Combos.Longest,
			analysis.Combos.LongestPerfect,
			analysis.Combos.LongestMarvelous,
			analysis.Combos.Longest100,
		)
		card.FunFacts = strings.Join(analysis.FunFacts, "\n")
	}
	return card, nil
}

// Render writes the card as plain text.
func (c *Card) Render() string {
	var b strings.Builder
	b.WriteString(c.Title)
	b.WriteByte('\n')
	b.WriteString(c.URL)
	b.WriteByte('\n')
	if c.Warning != "" {
		b.WriteString(c.Warning)
		b.WriteByte('\n')
	}
	b.WriteString(c.Body)
	for _, section := range []struct{ name, text string }{
		{"Score comparisons", c.Comparisons},
		{"Tap speeds", c.TapSpeeds},
		{"Combos", c.Combos},
		{"Fun facts", c.FunFacts},
	} {
		if section.text == "" {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(section.name)
		b.WriteByte('\n')
		b.WriteString(section.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// alternateWifescore recomputes the score under the alternate judge using
// the replay, charging the judgement tally's mine and hold penalties.
func alternateWifescore(in Input) *etterna.Wifescore {
	if in.AlternateJudge == nil || in.Score.Replay == nil {
		return nil
	}
	rescored, ok := replay.RescoreWithPenalties(
		in.Score.Replay,
		in.Score.Penalties,
		replay.ScorerNaive,
		etterna.Wife3,
		in.AlternateJudge,
	)
	if !ok {
		return nil
	}
	return &rescored
}

func renderBody(score *eo.Score, altWife *etterna.Wifescore, altJudge *etterna.Judge) string {
	left := []string{
		fmt.Sprintf("        Wife: %-6.2f%%", score.Wifescore),
	}
	if altWife != nil && altJudge != nil {
		left = append(left, fmt.Sprintf("     Wife %s: %-6.2f%%", altJudge.Name, altWife.Percent()))
	}
	left = append(left,
		fmt.Sprintf("     Overall: %-7.2f", score.SSR),
		fmt.Sprintf("         MSD: %-7.2f", score.MSD),
		fmt.Sprintf("        Rate: %-7s", score.Rate.String()),
	)
	if score.Difficulty != nil {
		left = append(left, fmt.Sprintf("  Difficulty: %-7s", score.Difficulty.String()))
	}

	right := []string{
		fmt.Sprintf("Marvelous: %d", score.Judgements.Marvelouses),
		fmt.Sprintf("  Perfect: %d", score.Judgements.Perfects),
		fmt.Sprintf("    Great: %d", score.Judgements.Greats),
		fmt.Sprintf("     Good: %d", score.Judgements.Goods),
		fmt.Sprintf("      Bad: %d", score.Judgements.Bads),
		fmt.Sprintf("     Miss: %d", score.Judgements.Misses),
	}

	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	var b strings.Builder
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		} else {
			l = strings.Repeat(" ", 21)
		}
		if i < len(right) {
			r = right[i]
		}
		b.WriteString(fmt.Sprintf("%s  ⏐  %s\n", l, r))
	}
	return b.String()
}

func renderComparisons(score *eo.Score, analysis *replay.Analysis) string {
	digits := 2
	if analysis.ComparisonJ4.Wife3.Percent() > 99.7 {
		digits = 4
	}

	altOn := func(pick func(replay.ScoringComparison) etterna.Wifescore) string {
		if analysis.ComparisonAlternate == nil || analysis.AlternateJudge == nil {
			return ""
		}
		return fmt.Sprintf(", %.*f on %s", digits, pick(*analysis.ComparisonAlternate).Percent(), analysis.AlternateJudge.Name)
	}

	var b strings.Builder
	if math.Abs(analysis.ComparisonJ4.Wife3.Percent()-score.Wifescore) > 0.01 {
		b.WriteString("Note: these calculated scores are slightly inaccurate\n")
	}
	fmt.Fprintf(&b, "Wife2: %.*f%%%s\n",
		digits, analysis.ComparisonJ4.Wife2.Percent(),
		altOn(func(c replay.ScoringComparison) etterna.Wifescore { return c.Wife2 }))
	fmt.Fprintf(&b, "Wife3: %.*f%%%s\n",
		digits, analysis.ComparisonJ4.Wife3.Percent(),
		altOn(func(c replay.ScoringComparison) etterna.Wifescore { return c.Wife3 }))
	fmt.Fprintf(&b, "Wife3: %.*f%%%s (mean of %.1fms corrected)",
		digits, analysis.ComparisonJ4.Wife3ZeroMean.Percent(),
		altOn(func(c replay.ScoringComparison) etterna.Wifescore { return c.Wife3ZeroMean }),
		analysis.MeanOffset*1000.0)
	return b.String()
}

package ocr

import (
	"regexp"
	"strconv"
	"strings"

	"etternabot/internal/etterna"
)

// Field parsers. Each takes raw recognized text and returns the parsed value
// plus whether the text was readable at all; garbage reads report false and
// leave the field absent.

var usernamePattern = regexp.MustCompile(`Logged in as (.+) \((.+): #(.+)\)`)

func parseRate(s string) (etterna.Rate, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "x")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return etterna.Rate{}, false
	}
	return etterna.RateFromFloat(value)
}

func parseText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// parseUsername extracts the player name from the session footer line, which
// reads "Logged in as NAME (RATING: #RANK)".
func parseUsername(s string) (string, bool) {
	match := usernamePattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func parseWifescore(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || value > 100 {
		return 0, false
	}
	return value, true
}

func parseFloat(s string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseJudgements reads the slash-separated judgement tally. All six counts
// must parse; a partial tally is no tally.
func parseJudgements(s string) (etterna.JudgementCounts, bool) {
	parts := strings.Split(s, "/")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		counts = append(counts, value)
	}
	if len(counts) != 6 {
		return etterna.JudgementCounts{}, false
	}
	return etterna.JudgementCounts{
		Marvelouses: counts[0],
		Perfects:    counts[1],
		Greats:      counts[2],
		Goods:       counts[3],
		Bads:        counts[4],
		Misses:      counts[5],
	}, true
}

func parseDifficulty(s string) (etterna.Difficulty, bool) {
	return etterna.DifficultyFromShortString(s)
}

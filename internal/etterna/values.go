package etterna

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Scorekey is the opaque unique identifier of one recorded score.
type Scorekey string

var scorekeyPattern = regexp.MustCompile(`^S[0-9a-f]{40}$`)

// Valid reports whether the scorekey has the expected shape: an "S" followed
// by a 40 character hex digest.
func (s Scorekey) Valid() bool {
	return scorekeyPattern.MatchString(string(s))
}

func (s Scorekey) String() string {
	return string(s)
}

// Rate is a music rate stored in twentieths of 1.0x, the finest step the game
// allows; 1.15x is stored as 23.
type Rate struct {
	twentieths int
}

// RateFromFloat rounds to the nearest valid rate. Negative values have no
// rate representation.
func RateFromFloat(r float64) (Rate, bool) {
	if r < 0 {
		return Rate{}, false
	}
	return Rate{twentieths: int(math.Round(r * 20.0))}, true
}

// Float returns the rate as a multiplier, e.g. 1.15.
func (r Rate) Float() float64 {
	return float64(r.twentieths) / 20.0
}

func (r Rate) String() string {
	return fmt.Sprintf("%.2fx", r.Float())
}

// Difficulty is a chart's difficulty slot.
type Difficulty int

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
	Challenge
	Edit
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Challenge:
		return "Challenge"
	case Edit:
		return "Edit"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// DifficultyFromString parses full difficulty names as the score API
// reports them.
func DifficultyFromString(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, true
	case "easy":
		return Easy, true
	case "medium", "normal":
		return Medium, true
	case "hard":
		return Hard, true
	case "challenge", "insane", "expert":
		return Challenge, true
	case "edit":
		return Edit, true
	default:
		return 0, false
	}
}

// DifficultyFromShortString parses the short labels shown on evaluation
// screens.
func DifficultyFromShortString(s string) (Difficulty, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BG":
		return Beginner, true
	case "EZ":
		return Easy, true
	case "NM":
		return Medium, true
	case "HD":
		return Hard, true
	case "IN":
		return Challenge, true
	case "EX":
		return Edit, true
	default:
		return 0, false
	}
}

package identify

import (
	"fmt"
	"testing"

	"etternabot/internal/etterna"
)

func ptr[T any](v T) *T { return &v }

func fullReading() Reading {
	rate, _ := etterna.RateFromFloat(1.1)
	difficulty := etterna.Hard
	return Reading{
		Rate:      &rate,
		Pack:      ptr("Vertex Beta"),
		Username:  ptr("snover"),
		Song:      ptr("Game Time"),
		Artist:    ptr("Camellia"),
		Wifescore: ptr(96.50),
		MSD:       ptr(24.31),
		SSR:       ptr(25.02),
		Judgements: &etterna.JudgementCounts{
			Marvelouses: 900, Perfects: 200, Greats: 40, Goods: 8, Bads: 2, Misses: 5,
		},
		Difficulty: &difficulty,
	}
}

func TestMatchScoreCommutative(t *testing.T) {
	full := fullReading()
	partial := Reading{
		Song:      ptr("Game Time"),
		Wifescore: ptr(96.49),
		Username:  ptr("Snover"),
	}
	empty := Reading{}
	pairs := [][2]Reading{
		{full, full},
		{full, partial},
		{full, empty},
		{partial, empty},
	}
	for i, pair := range pairs {
		if ab, ba := MatchScore(pair[0], pair[1]), MatchScore(pair[1], pair[0]); ab != ba {
			t.Fatalf("pair %d: MatchScore not commutative: %d vs %d", i, ab, ba)
		}
	}
}

func TestMatchScoreAbsentFieldsScoreZero(t *testing.T) {
	if got := MatchScore(Reading{}, fullReading()); got != 0 {
		t.Fatalf("empty reading scored %d, want 0", got)
	}
	if got := MatchScore(Reading{}, Reading{}); got != 0 {
		t.Fatalf("two empty readings scored %d, want 0", got)
	}
}

func TestMatchScoreDisagreementAddsNothing(t *testing.T) {
	a := Reading{Song: ptr("Game Time"), Artist: ptr("Camellia")}
	b := Reading{Song: ptr("Game Time"), Artist: ptr("someone else")}
	if got := MatchScore(a, b); got != 6 {
		t.Fatalf("score = %d, want 6 (song only)", got)
	}
}

func TestMatchScoreMonotoneInAgreeingFields(t *testing.T) {
	candidate := fullReading()
	reading := Reading{}
	previous := MatchScore(reading, candidate)

	additions := []func(*Reading){
		func(r *Reading) { r.Song = ptr("Game Time") },
		func(r *Reading) { r.Wifescore = ptr(96.50) },
		func(r *Reading) { r.Username = ptr("SNOVER") },
		func(r *Reading) { r.Pack = ptr("Vertex Beta") },
		func(r *Reading) { r.Judgements = candidate.Judgements },
	}
	for i, add := range additions {
		add(&reading)
		score := MatchScore(reading, candidate)
		if score < previous {
			t.Fatalf("after addition %d score dropped from %d to %d", i, previous, score)
		}
		previous = score
	}
}

func TestMatchScoreFloatTolerance(t *testing.T) {
	a := Reading{Wifescore: ptr(96.50)}
	within := Reading{Wifescore: ptr(96.49)}
	outside := Reading{Wifescore: ptr(96.30)}
	if got := MatchScore(a, within); got != 5 {
		t.Fatalf("within tolerance scored %d, want 5", got)
	}
	if got := MatchScore(a, outside); got != 0 {
		t.Fatalf("outside tolerance scored %d, want 0", got)
	}
}

func TestBestMatchThreshold(t *testing.T) {
	readings := []Reading{{Song: ptr("Game Time")}}
	candidates := []Candidate{{
		Scorekey: "Saaa",
		Reading:  Reading{Song: ptr("Game Time")},
	}}
	// Song alone is worth 6, which does not strictly exceed 8.
	if _, ok := BestMatch(readings, candidates, DefaultThreshold); ok {
		t.Fatal("match at or below the threshold must not be returned")
	}
	if _, ok := BestMatch(readings, candidates, 5); !ok {
		t.Fatal("score 6 strictly exceeds threshold 5")
	}
	if _, ok := BestMatch(readings, candidates, 6); ok {
		t.Fatal("score equal to the threshold must not be returned")
	}
}

func TestBestMatchPicksHighestAcrossThemes(t *testing.T) {
	// Theme one read the song, theme two read the numbers: the candidate
	// matching the numbers wins because msd+ssr outweighs song.
	themes := []Reading{
		{Song: ptr("Game Time")},
		{MSD: ptr(24.31), SSR: ptr(25.02)},
	}
	candidates := []Candidate{
		{Scorekey: "Ssong", Reading: Reading{Song: ptr("Game Time")}},
		{Scorekey: "Snums", Reading: Reading{MSD: ptr(24.31), SSR: ptr(25.02)}},
	}
	got, ok := BestMatch(themes, candidates, 8)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Scorekey != "Snums" {
		t.Fatalf("got %s, want Snums", got.Scorekey)
	}
}

func TestBestMatchTieKeepsEarliest(t *testing.T) {
	readings := []Reading{{Song: ptr("Game Time"), Wifescore: ptr(96.50)}}
	same := Reading{Song: ptr("Game Time"), Wifescore: ptr(96.50)}
	candidates := []Candidate{
		{Scorekey: "Sfirst", Reading: same},
		{Scorekey: "Ssecond", Reading: same},
	}
	got, ok := BestMatch(readings, candidates, 8)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Scorekey != "Sfirst" {
		t.Fatalf("tie should keep the earliest candidate, got %s", got.Scorekey)
	}
}

func TestBestMatchEndToEndGameTime(t *testing.T) {
	readings := []Reading{{Song: ptr("Game Time"), Wifescore: ptr(96.50)}}

	candidates := []Candidate{{
		Scorekey: "Sgametime",
		UserID:   613,
		Reading:  Reading{Song: ptr("Game Time"), Wifescore: ptr(96.49)},
	}}
	for i := 0; i < 9; i++ {
		candidates = append(candidates, Candidate{
			Scorekey: etterna.Scorekey(fmt.Sprintf("Sother%d", i)),
			Reading:  Reading{Song: ptr(fmt.Sprintf("Unrelated %d", i)), Wifescore: ptr(12.0 + float64(i))},
		})
	}

	got, ok := BestMatch(readings, candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected the Game Time record to be identified")
	}
	if got.Scorekey != "Sgametime" || got.UserID != 613 {
		t.Fatalf("got %s (user %d), want Sgametime (613)", got.Scorekey, got.UserID)
	}
}

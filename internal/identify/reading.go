package identify

import "etternabot/internal/etterna"

// Reading is one OCR pass over an evaluation screenshot. Every field is
// independently optional because every region read can independently fail;
// absent fields simply contribute no matching evidence. Several independent
// readings ("themes") may exist for one screenshot.
type Reading struct {
	Rate       *etterna.Rate
	Pack       *string
	Username   *string
	Song       *string
	Artist     *string
	Wifescore  *float64 // 0..100
	MSD        *float64
	SSR        *float64
	Judgements *etterna.JudgementCounts
	Difficulty *etterna.Difficulty
}

// Candidate is a real recorded score reshaped for comparison against screen
// readings.
type Candidate struct {
	Scorekey etterna.Scorekey
	UserID   int
	Reading  Reading
}

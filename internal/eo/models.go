package eo

import (
	"encoding/json"
	"fmt"

	"etternabot/internal/etterna"
	"etternabot/internal/identify"
	"etternabot/internal/replay"
)

// User is an EtternaOnline account.
type User struct {
	ID       int
	Username string
	Rating   float64
	Country  string
}

// Score is one recorded play. Replay is nil unless the score was fetched
// individually; the recent-scores listing omits it.
type Score struct {
	Scorekey   etterna.Scorekey
	UserID     int
	Username   string
	Song       string
	Artist     string
	Pack       string
	Rate       etterna.Rate
	Wifescore  float64 // 0..100
	SSR        float64
	MSD        float64
	Judgements etterna.JudgementCounts
	Difficulty *etterna.Difficulty
	Replay     *replay.Replay

	// Penalties carries the mine-hit and dropped-hold tallies the score
	// itself reports; replays usually record neither.
	Penalties replay.Penalties
}

// Candidate reshapes the score for comparison against screenshot readings.
// The username is deliberately left out of the reading: every candidate comes
// from one player's own history, so a footer read would add a flat bonus to
// all of them and quietly lower the effective identification threshold.
func (s *Score) Candidate() identify.Candidate {
	rate := s.Rate
	pack := s.Pack
	song := s.Song
	artist := s.Artist
	wife := s.Wifescore
	msd := s.MSD
	ssr := s.SSR
	judgements := s.Judgements
	reading := identify.Reading{
		Rate:       &rate,
		Wifescore:  &wife,
		MSD:        &msd,
		SSR:        &ssr,
		Judgements: &judgements,
		Difficulty: s.Difficulty,
	}
	if pack != "" {
		reading.Pack = &pack
	}
	if song != "" {
		reading.Song = &song
	}
	if artist != "" {
		reading.Artist = &artist
	}
	return identify.Candidate{
		Scorekey: s.Scorekey,
		UserID:   s.UserID,
		Reading:  reading,
	}
}

type userEnvelope struct {
	Data userResource `json:"data"`
}

type userResource struct {
	ID         json.Number    `json:"id"`
	Attributes userAttributes `json:"attributes"`
}

type userAttributes struct {
	Username     string  `json:"userName"`
	PlayerRating float64 `json:"playerRating"`
	CountryCode  string  `json:"countryCode"`
}

type scoreListEnvelope struct {
	Data []scoreResource `json:"data"`
}

type scoreEnvelope struct {
	Data scoreResource `json:"data"`
}

type scoreResource struct {
	ID         string          `json:"id"`
	Attributes scoreAttributes `json:"attributes"`
}

type scoreAttributes struct {
	UserID     json.Number     `json:"userId"`
	Username   string          `json:"userName"`
	SongName   string          `json:"songName"`
	Artist     string          `json:"artist"`
	PackName   string          `json:"packName"`
	Rate       float64         `json:"rate"`
	Wife       float64         `json:"wife"`
	SSR        float64         `json:"ssrOverall"`
	MSD        float64         `json:"msd"`
	Difficulty string          `json:"difficulty"`
	Judgements wireJudgements  `json:"judgements"`
	Replay     [][]json.Number `json:"replay"`
}

type wireJudgements struct {
	Marvelous   int `json:"marvelous"`
	Perfect     int `json:"perfect"`
	Great       int `json:"great"`
	Good        int `json:"good"`
	Bad         int `json:"bad"`
	Miss        int `json:"miss"`
	HitMines    int `json:"hitMines"`
	LetGoHolds  int `json:"letGoHolds"`
	MissedHolds int `json:"missedHolds"`
}

func (r userResource) toUser() (*User, error) {
	id, err := r.ID.Int64()
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", r.ID, err)
	}
	return &User{
		ID:       int(id),
		Username: r.Attributes.Username,
		Rating:   r.Attributes.PlayerRating,
		Country:  r.Attributes.CountryCode,
	}, nil
}

func (r scoreResource) toScore() (*Score, error) {
	key := etterna.Scorekey(r.ID)
	if !key.Valid() {
		return nil, fmt.Errorf("malformed scorekey %q", r.ID)
	}
	rate, ok := etterna.RateFromFloat(r.Attributes.Rate)
	if !ok {
		return nil, fmt.Errorf("score %s: malformed rate %v", key, r.Attributes.Rate)
	}
	score := &Score{
		Scorekey:  key,
		Username:  r.Attributes.Username,
		Song:      r.Attributes.SongName,
		Artist:    r.Attributes.Artist,
		Pack:      r.Attributes.PackName,
		Rate:      rate,
		Wifescore: r.Attributes.Wife,
		SSR:       r.Attributes.SSR,
		MSD:       r.Attributes.MSD,
		Judgements: etterna.JudgementCounts{
			Marvelouses: r.Attributes.Judgements.Marvelous,
			Perfects:    r.Attributes.Judgements.Perfect,
			Greats:      r.Attributes.Judgements.Great,
			Goods:       r.Attributes.Judgements.Good,
			Bads:        r.Attributes.Judgements.Bad,
			Misses:      r.Attributes.Judgements.Miss,
		},
		Penalties: replay.Penalties{
			MineHits:     r.Attributes.Judgements.HitMines,
			DroppedHolds: r.Attributes.Judgements.LetGoHolds + r.Attributes.Judgements.MissedHolds,
		},
	}
	if id, err := r.Attributes.UserID.Int64(); err == nil && r.Attributes.UserID != "" {
		score.UserID = int(id)
	}
	if diff, ok := etterna.DifficultyFromString(r.Attributes.Difficulty); ok {
		score.Difficulty = &diff
	}
	if len(r.Attributes.Replay) > 0 {
		decoded, err := decodeReplay(r.Attributes.Replay)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", key, err)
		}
		score.Replay = decoded
	}
	return score, nil
}

// missDeviation is the sentinel deviation the API stores for notes that were
// never hit. Anything at or past it decodes as a miss.
const missDeviation = 0.18

// decodeReplay converts wire replay rows into domain notes. Each row is an
// array of numbers: note seconds, deviation, then optionally lane and note
// kind. Short rows are tolerated because old replays lack the trailing
// columns.
func decodeReplay(rows [][]json.Number) (*replay.Replay, error) {
	notes := make([]replay.Note, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("replay row %d: want at least 2 columns, got %d", i, len(row))
		}
		seconds, err := row[0].Float64()
		if err != nil {
			return nil, fmt.Errorf("replay row %d seconds: %w", i, err)
		}
		deviation, err := row[1].Float64()
		if err != nil {
			return nil, fmt.Errorf("replay row %d deviation: %w", i, err)
		}
		note := replay.Note{Seconds: seconds}
		if deviation >= missDeviation {
			note.Hit = etterna.Missed()
		} else {
			note.Hit = etterna.HitAt(deviation)
		}
		if len(row) >= 3 {
			lane, err := row[2].Int64()
			if err != nil {
				return nil, fmt.Errorf("replay row %d lane: %w", i, err)
			}
			note.Lane = int(lane)
		}
		if len(row) >= 4 {
			kind, err := row[3].Int64()
			if err != nil {
				return nil, fmt.Errorf("replay row %d kind: %w", i, err)
			}
			note.Kind = noteKindFromWire(int(kind))
		}
		notes = append(notes, note)
	}
	return &replay.Replay{Notes: notes}, nil
}

func noteKindFromWire(kind int) replay.NoteKind {
	switch kind {
	case 0:
		return replay.KindTap
	case 1:
		return replay.KindHoldHead
	case 2:
		return replay.KindHoldTail
	case 3:
		return replay.KindMine
	case 4:
		return replay.KindLift
	case 5:
		return replay.KindKeysound
	case 6:
		return replay.KindFake
	default:
		return replay.KindUnknown
	}
}

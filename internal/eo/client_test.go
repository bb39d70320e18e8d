package eo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"etternabot/internal/etterna"
	"etternabot/internal/replay"
)

const testScorekey = "S1234567890abcdef1234567890abcdef12345678"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestUserDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kangalioo" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":"40377","attributes":{"userName":"kangalioo","playerRating":28.53,"countryCode":"DE"}}}`))
	})

	user, err := client.UserDetails(context.Background(), "kangalioo")
	if err != nil {
		t.Fatalf("UserDetails: %v", err)
	}
	if user.ID != 40377 || user.Username != "kangalioo" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Rating != 28.53 || user.Country != "DE" {
		t.Fatalf("unexpected user attributes: %+v", user)
	}
}

func TestUserDetailsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.UserDetails(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentScores(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/kangalioo/scores" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Fatalf("unexpected limit %q", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`{"data":[{"id":"` + testScorekey + `","attributes":{
			"userId":"40377","userName":"kangalioo","songName":"Game Time","artist":"Vospi",
			"packName":"SHARPNELSTREAMZ v2","rate":1.15,"wife":96.52,"ssrOverall":27.12,"msd":29.03,
			"difficulty":"Challenge",
			"judgements":{"marvelous":945,"perfect":466,"great":45,"good":7,"bad":2,"miss":12}
		}}]}`))
	})

	scores, err := client.RecentScores(context.Background(), "kangalioo", 5)
	if err != nil {
		t.Fatalf("RecentScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	score := scores[0]
	if score.Scorekey != etterna.Scorekey(testScorekey) {
		t.Fatalf("unexpected scorekey %q", score.Scorekey)
	}
	if score.UserID != 40377 {
		t.Fatalf("unexpected user id %d", score.UserID)
	}
	if score.Rate.Float() != 1.15 {
		t.Fatalf("unexpected rate %v", score.Rate)
	}
	if score.Difficulty == nil || *score.Difficulty != etterna.Challenge {
		t.Fatalf("unexpected difficulty %v", score.Difficulty)
	}
	if score.Judgements.Total() != 945+466+45+7+2+12 {
		t.Fatalf("unexpected judgement total %d", score.Judgements.Total())
	}
	if score.Replay != nil {
		t.Fatal("expected no replay in listing")
	}
}

func TestScoreDecodesReplay(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score/"+testScorekey {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":"` + testScorekey + `","attributes":{
			"userName":"kangalioo","songName":"Game Time","rate":1.0,"wife":96.52,
			"judgements":{"marvelous":3,"perfect":0,"great":0,"good":0,"bad":0,"miss":1},
			"replay":[[0.5,0.003,0,0],[1.0,-0.012,1,0],[1.5,0.18,2,0],[2.0,0.004,3,1]]
		}}}`))
	})

	score, err := client.Score(context.Background(), etterna.Scorekey(testScorekey))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score.Replay == nil {
		t.Fatal("expected replay")
	}
	notes := score.Replay.Notes
	if len(notes) != 4 {
		t.Fatalf("expected 4 notes, got %d", len(notes))
	}
	if dev, hit := notes[0].Hit.Deviation(); !hit || dev != 0.003 {
		t.Fatalf("unexpected first hit: dev=%v hit=%v", dev, hit)
	}
	if !notes[2].Hit.IsMiss() {
		t.Fatal("expected deviation at sentinel to decode as miss")
	}
	if notes[3].Kind != replay.KindHoldHead {
		t.Fatalf("unexpected note kind %v", notes[3].Kind)
	}
	if notes[1].Lane != 1 {
		t.Fatalf("unexpected lane %d", notes[1].Lane)
	}
}

func TestScoreRejectsMalformedScorekey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})

	_, err := client.Score(context.Background(), "not-a-scorekey")
	if err == nil || !strings.Contains(err.Error(), "malformed scorekey") {
		t.Fatalf("expected malformed scorekey error, got %v", err)
	}
}

func TestScoreCandidateConversion(t *testing.T) {
	diff := etterna.Hard
	rate, _ := etterna.RateFromFloat(1.3)
	score := &Score{
		Scorekey:   etterna.Scorekey(testScorekey),
		UserID:     7,
		Username:   "theropfather",
		Song:       "Perturbator",
		Pack:       "Solo Pack 2",
		Rate:       rate,
		Wifescore:  93.27,
		SSR:        24.1,
		MSD:        26.9,
		Difficulty: &diff,
	}

	candidate := score.Candidate()
	if candidate.Scorekey != score.Scorekey || candidate.UserID != 7 {
		t.Fatalf("unexpected candidate identity: %+v", candidate)
	}
	// Candidates all come from one player's history, so their username
	// must not contribute matching evidence.
	if candidate.Reading.Username != nil {
		t.Fatalf("username should be absent from candidate readings, got %q", *candidate.Reading.Username)
	}
	if candidate.Reading.Artist != nil {
		t.Fatal("expected absent artist to stay absent")
	}
	if candidate.Reading.Rate == nil || candidate.Reading.Rate.Float() != 1.3 {
		t.Fatalf("unexpected rate reading: %v", candidate.Reading.Rate)
	}
}

func TestServerErrorSurfacesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.RecentScores(context.Background(), "kangalioo", 3)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

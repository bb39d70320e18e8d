package users

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"etternabot/internal/etterna"
)

const testScorekey = etterna.Scorekey("S1234567890abcdef1234567890abcdef12345678")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "etternabot.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSetAndGetUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUsername(ctx, 123, "kangalioo"); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	username, err := store.Username(ctx, 123)
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if username != "kangalioo" {
		t.Fatalf("unexpected username %q", username)
	}
}

func TestUsernameNotRegistered(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Username(context.Background(), 999)
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestSetUsernameReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUsername(ctx, 123, "oldname"); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	if err := store.SetUsername(ctx, 123, "newname"); err != nil {
		t.Fatalf("SetUsername replace: %v", err)
	}
	username, err := store.Username(ctx, 123)
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if username != "newname" {
		t.Fatalf("expected replacement, got %q", username)
	}

	registrations, err := store.Registrations(ctx)
	if err != nil {
		t.Fatalf("Registrations: %v", err)
	}
	if len(registrations) != 1 {
		t.Fatalf("expected single registration, got %d", len(registrations))
	}
}

func TestRemoveUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUsername(ctx, 123, "kangalioo"); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	if err := store.RemoveUsername(ctx, 123); err != nil {
		t.Fatalf("RemoveUsername: %v", err)
	}
	if _, err := store.Username(ctx, 123); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered after removal, got %v", err)
	}
}

func TestRevealHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	revealed, err := store.WasRevealed(ctx, testScorekey)
	if err != nil {
		t.Fatalf("WasRevealed: %v", err)
	}
	if revealed {
		t.Fatal("expected no reveal yet")
	}

	if err := store.RecordReveal(ctx, testScorekey, 555, 123); err != nil {
		t.Fatalf("RecordReveal: %v", err)
	}

	revealed, err = store.WasRevealed(ctx, testScorekey)
	if err != nil {
		t.Fatalf("WasRevealed: %v", err)
	}
	if !revealed {
		t.Fatal("expected reveal to be recorded")
	}

	reveals, err := store.Reveals(ctx, 10)
	if err != nil {
		t.Fatalf("Reveals: %v", err)
	}
	if len(reveals) != 1 {
		t.Fatalf("expected 1 reveal, got %d", len(reveals))
	}
	if reveals[0].Scorekey != testScorekey || reveals[0].MessageID != 555 || reveals[0].UserID != 123 {
		t.Fatalf("unexpected reveal %+v", reveals[0])
	}
	if reveals[0].RevealedAt.IsZero() {
		t.Fatal("expected reveal timestamp")
	}
}

func TestRecordRevealRejectsMalformedScorekey(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordReveal(context.Background(), "bogus", 1, 2); err == nil {
		t.Fatal("expected malformed scorekey error")
	}
}

func TestOpenRejectsSecondInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etternabot.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := Open(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etternabot.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SetUsername(context.Background(), 1, "kangalioo"); err != nil {
		t.Fatalf("SetUsername: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	username, err := reopened.Username(context.Background(), 1)
	if err != nil {
		t.Fatalf("Username after reopen: %v", err)
	}
	if username != "kangalioo" {
		t.Fatalf("unexpected username %q", username)
	}
}

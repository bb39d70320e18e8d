package users

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"etternabot/internal/etterna"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases with another version are rejected.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotRegistered indicates the chat user has no stored EtternaOnline
// username.
var ErrNotRegistered = errors.New("user not registered")

// ErrLocked indicates another process holds the store lock.
var ErrLocked = errors.New("user store is locked by another process")

// Registration maps a chat user to their EtternaOnline username.
type Registration struct {
	ChatUserID int64
	EOUsername string
	UpdatedAt  time.Time
}

// Reveal is one recorded score reveal.
type Reveal struct {
	Scorekey   etterna.Scorekey
	MessageID  int64
	UserID     int64
	RevealedAt time.Time
}

// Store manages registrations and reveal history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the user database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path required")
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SetUsername registers or replaces the chat user's EtternaOnline username.
func (s *Store) SetUsername(ctx context.Context, chatUserID int64, eoUsername string) error {
	eoUsername = strings.TrimSpace(eoUsername)
	if eoUsername == "" {
		return errors.New("eo username must not be empty")
	}
	return s.execWithRetry(ctx, `
		INSERT INTO users (chat_user_id, eo_username, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(chat_user_id) DO UPDATE SET
			eo_username = excluded.eo_username,
			updated_at = excluded.updated_at`,
		chatUserID, eoUsername)
}

// Username returns the registered EtternaOnline username for a chat user.
func (s *Store) Username(ctx context.Context, chatUserID int64) (string, error) {
	var username string
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT eo_username FROM users WHERE chat_user_id = ?", chatUserID,
	).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotRegistered
	}
	if err != nil {
		return "", fmt.Errorf("load registration: %w", err)
	}
	return username, nil
}

// RemoveUsername deletes the chat user's registration.
func (s *Store) RemoveUsername(ctx context.Context, chatUserID int64) error {
	return s.execWithRetry(ctx, "DELETE FROM users WHERE chat_user_id = ?", chatUserID)
}

// Registrations lists all stored registrations ordered by chat user ID.
func (s *Store) Registrations(ctx context.Context) ([]Registration, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT chat_user_id, eo_username, updated_at FROM users ORDER BY chat_user_id")
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var registrations []Registration
	for rows.Next() {
		var reg Registration
		var updatedAt string
		if err := rows.Scan(&reg.ChatUserID, &reg.EOUsername, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.UpdatedAt = parseTimestamp(updatedAt)
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

// RecordReveal appends a reveal to the history.
func (s *Store) RecordReveal(ctx context.Context, scorekey etterna.Scorekey, messageID, userID int64) error {
	if !scorekey.Valid() {
		return fmt.Errorf("malformed scorekey %q", scorekey)
	}
	return s.execWithRetry(ctx,
		"INSERT INTO reveals (scorekey, message_id, user_id) VALUES (?, ?, ?)",
		string(scorekey), messageID, userID)
}

// Reveals lists the reveal history, newest first, capped at limit.
func (s *Store) Reveals(ctx context.Context, limit int) ([]Reveal, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), `
		SELECT scorekey, message_id, user_id, revealed_at
		FROM reveals ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reveals: %w", err)
	}
	defer rows.Close()

	var reveals []Reveal
	for rows.Next() {
		var reveal Reveal
		var scorekey, revealedAt string
		if err := rows.Scan(&scorekey, &reveal.MessageID, &reveal.UserID, &revealedAt); err != nil {
			return nil, fmt.Errorf("scan reveal: %w", err)
		}
		reveal.Scorekey = etterna.Scorekey(scorekey)
		reveal.RevealedAt = parseTimestamp(revealedAt)
		reveals = append(reveals, reveal)
	}
	return reveals, rows.Err()
}

// WasRevealed reports whether a score was already revealed once.
func (s *Store) WasRevealed(ctx context.Context, scorekey etterna.Scorekey) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT COUNT(1) FROM reveals WHERE scorekey = ?", string(scorekey),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check reveal: %w", err)
	}
	return count > 0, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z", time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

package confirm

import (
	"sync"
	"time"

	"etternabot/internal/etterna"
)

// Defaults for the tracker bounds. Reveal candidates are driven by
// low-frequency chat events, so a few hundred live entries is already
// generous.
const (
	DefaultCapacity = 256
	DefaultTTL      = 24 * time.Hour
)

// minReactors is the reveal bar: the author plus at least one other person.
const minReactors = 2

// Result identifies the score a reveal unlocks.
type Result struct {
	Scorekey etterna.Scorekey
	UserID   int
}

type candidate struct {
	messageID string
	authorID  string
	scorekey  etterna.Scorekey
	userID    int
	reactors  map[string]struct{}
	revealed  bool
	createdAt time.Time
}

// Tracker holds pending reveal candidates keyed by message ID. All methods
// are safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time
	order    []string // message IDs, oldest first
	byID     map[string]*candidate
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow overrides the tracker's clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a tracker bounded by capacity and ttl. Non-positive values
// fall back to the defaults.
func New(capacity int, ttl time.Duration, opts ...Option) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tracker{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		byID:     make(map[string]*candidate),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds a pending candidate for the message. Registering the same
// message again replaces the previous entry entirely (last write wins),
// clearing any reactors collected so far.
func (t *Tracker) Register(messageID, authorID string, scorekey etterna.Scorekey, userID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[messageID]; exists {
		t.removeLocked(messageID)
	}
	t.byID[messageID] = &candidate{
		messageID: messageID,
		authorID:  authorID,
		scorekey:  scorekey,
		userID:    userID,
		reactors:  make(map[string]struct{}),
		createdAt: t.now(),
	}
	t.order = append(t.order, messageID)
	t.evictLocked()
}

// OnReaction records a reaction on the message. When the reactor set comes to
// contain the author along with at least one other distinct reactor, the
// candidate transitions to revealed exactly once and its score is returned.
// Reactions on unknown messages and reactions after the reveal return false.
func (t *Tracker) OnReaction(messageID, reactorID string) (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.byID[messageID]
	if !exists {
		return Result{}, false
	}
	if entry.revealed {
		return Result{}, false
	}
	if t.ttl > 0 && t.now().Sub(entry.createdAt) > t.ttl {
		t.removeLocked(messageID)
		return Result{}, false
	}

	entry.reactors[reactorID] = struct{}{}

	if _, authorReacted := entry.reactors[entry.authorID]; !authorReacted {
		return Result{}, false
	}
	if len(entry.reactors) < minReactors {
		return Result{}, false
	}

	entry.revealed = true
	return Result{Scorekey: entry.scorekey, UserID: entry.userID}, true
}

// Len returns the number of tracked candidates, revealed ones included.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}

// evictLocked drops expired candidates, then the oldest entries beyond the
// capacity cap.
func (t *Tracker) evictLocked() {
	if t.ttl > 0 {
		cutoff := t.now().Add(-t.ttl)
		for len(t.order) > 0 {
			oldest := t.byID[t.order[0]]
			if oldest == nil || !oldest.createdAt.Before(cutoff) {
				break
			}
			t.removeLocked(t.order[0])
		}
	}
	for len(t.order) > t.capacity {
		t.removeLocked(t.order[0])
	}
}

func (t *Tracker) removeLocked(messageID string) {
	delete(t.byID, messageID)
	for i, id := range t.order {
		if id == messageID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

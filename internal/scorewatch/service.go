package scorewatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"etternabot/internal/confirm"
	"etternabot/internal/eo"
	"etternabot/internal/etterna"
	"etternabot/internal/identify"
	"etternabot/internal/logging"
	"etternabot/internal/replay"
	"etternabot/internal/scorecard"
	"etternabot/internal/users"
)

// Recognizer reads evaluation screenshots into field readings.
type Recognizer interface {
	ReadScreenshot(ctx context.Context, image []byte) ([]identify.Reading, error)
}

// Registry is the registration and reveal persistence the pipeline needs.
type Registry interface {
	Username(ctx context.Context, chatUserID int64) (string, error)
	RecordReveal(ctx context.Context, scorekey etterna.Scorekey, messageID, userID int64) error
}

// Status describes what became of one screenshot.
type Status int

const (
	// StatusNotRegistered means the author has no stored EtternaOnline
	// username, so there is no score list to search.
	StatusNotRegistered Status = iota
	// StatusUnidentified means no recent score agreed with the readings
	// confidently enough.
	StatusUnidentified
	// StatusIdentified means a score matched and now awaits confirmation.
	StatusIdentified
)

// Screenshot is one posted evaluation screenshot.
type Screenshot struct {
	MessageID string
	AuthorID  string
	Image     []byte
}

// Outcome reports the result of processing one screenshot.
type Outcome struct {
	AttemptID string
	Status    Status
	Scorekey  etterna.Scorekey
	UserID    int
}

// Options bounds the pipeline.
type Options struct {
	Threshold   int
	RecentLimit int
}

// Service is the screenshot-to-reveal pipeline.
type Service struct {
	recognizer Recognizer
	scores     eo.Fetcher
	registry   Registry
	tracker    *confirm.Tracker
	opts       Options
	logger     *slog.Logger
}

// New constructs the pipeline service.
func New(recognizer Recognizer, scores eo.Fetcher, registry Registry, tracker *confirm.Tracker, opts Options, logger *slog.Logger) (*Service, error) {
	if recognizer == nil {
		return nil, errors.New("recognizer required")
	}
	if scores == nil {
		return nil, errors.New("score source required")
	}
	if registry == nil {
		return nil, errors.New("registry required")
	}
	if tracker == nil {
		return nil, errors.New("confirmation tracker required")
	}
	if opts.Threshold <= 0 {
		opts.Threshold = identify.DefaultThreshold
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}
	return &Service{
		recognizer: recognizer,
		scores:     scores,
		registry:   registry,
		tracker:    tracker,
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "scorewatch"),
	}, nil
}

// HandleScreenshot runs one screenshot through recognition and
// identification. A confident match is registered as a pending reveal
// candidate; the reveal itself waits for HandleReaction.
func (s *Service) HandleScreenshot(ctx context.Context, shot Screenshot) (*Outcome, error) {
	attemptID := uuid.NewString()
	logger := s.logger.With(
		logging.String(logging.FieldAttemptID, attemptID),
		logging.String(logging.FieldMessageID, shot.MessageID),
	)

	readings, err := s.recognizer.ReadScreenshot(ctx, shot.Image)
	if err != nil {
		return nil, fmt.Errorf("read screenshot: %w", err)
	}

	username, err := s.resolveUsername(ctx, shot.AuthorID, readings)
	if errors.Is(err, users.ErrNotRegistered) {
		logger.DebugContext(ctx, "screenshot author not registered",
			logging.String(logging.FieldUserID, shot.AuthorID))
		return &Outcome{AttemptID: attemptID, Status: StatusNotRegistered}, nil
	}
	if err != nil {
		return nil, err
	}

	scores, err := s.scores.RecentScores(ctx, username, s.opts.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent scores for %s: %w", username, err)
	}
	candidates := make([]identify.Candidate, 0, len(scores))
	for _, score := range scores {
		candidates = append(candidates, score.Candidate())
	}

	best, ok := identify.BestMatch(readings, candidates, s.opts.Threshold)
	if !ok {
		logger.InfoContext(ctx, "screenshot not identified",
			logging.Int("candidates", len(candidates)),
			logging.Int("readings", len(readings)),
		)
		return &Outcome{AttemptID: attemptID, Status: StatusUnidentified}, nil
	}

	s.tracker.Register(shot.MessageID, shot.AuthorID, best.Scorekey, best.UserID)
	logger.InfoContext(ctx, "screenshot identified",
		logging.String(logging.FieldScorekey, best.Scorekey.String()),
		logging.String(logging.FieldEventType, "identified"),
	)
	return &Outcome{
		AttemptID: attemptID,
		Status:    StatusIdentified,
		Scorekey:  best.Scorekey,
		UserID:    best.UserID,
	}, nil
}

// HandleReaction records a reaction on a pending candidate. When the
// reaction completes the reveal bar, the identified score is fetched in
// full, analyzed, and rendered as a card. Caption is the text accompanying
// the original screenshot; a judge mention in it ("J7") adds an alternate
// judge to the analysis.
func (s *Service) HandleReaction(ctx context.Context, messageID, reactorID, caption string) (*scorecard.Card, bool, error) {
	result, revealed := s.tracker.OnReaction(messageID, reactorID)
	if !revealed {
		return nil, false, nil
	}

	logger := s.logger.With(
		logging.String(logging.FieldMessageID, messageID),
		logging.String(logging.FieldScorekey, result.Scorekey.String()),
	)

	score, err := s.scores.Score(ctx, result.Scorekey)
	if err != nil {
		return nil, false, fmt.Errorf("fetch score %s: %w", result.Scorekey, err)
	}

	var altJudge *etterna.Judge
	if judge, ok := etterna.ExtractJudge(caption); ok && judge != etterna.J4 {
		altJudge = judge
	}

	input := scorecard.Input{Score: score, AlternateJudge: altJudge}
	if analysis, ok := replay.Analyze(score.Replay, score.Penalties, altJudge); ok {
		input.Analysis = analysis
	}
	card, err := scorecard.Build(input)
	if err != nil {
		return nil, false, fmt.Errorf("build card: %w", err)
	}

	if err := s.recordReveal(ctx, result.Scorekey, messageID, reactorID); err != nil {
		logger.WarnContext(ctx, "recording reveal failed", logging.Error(err))
	}
	logger.InfoContext(ctx, "score revealed",
		logging.String(logging.FieldEventType, "revealed"))
	return card, true, nil
}

// resolveUsername prefers the username read off the screenshot itself,
// verified against the score service because OCR misreads are routine, and
// falls back to the author's saved registration when no on-screen name
// resolves to a real account.
func (s *Service) resolveUsername(ctx context.Context, authorID string, readings []identify.Reading) (string, error) {
	for _, reading := range readings {
		if reading.Username == nil || *reading.Username == "" {
			continue
		}
		user, err := s.scores.UserDetails(ctx, *reading.Username)
		if err == nil {
			return user.Username, nil
		}
		if !errors.Is(err, eo.ErrNotFound) {
			return "", fmt.Errorf("look up user %s: %w", *reading.Username, err)
		}
	}
	author, err := strconv.ParseInt(authorID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse author id %q: %w", authorID, err)
	}
	username, err := s.registry.Username(ctx, author)
	if errors.Is(err, users.ErrNotRegistered) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("load registration: %w", err)
	}
	return username, nil
}

func (s *Service) recordReveal(ctx context.Context, scorekey etterna.Scorekey, messageID, reactorID string) error {
	message, err := strconv.ParseInt(messageID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse message id %q: %w", messageID, err)
	}
	reactor, err := strconv.ParseInt(reactorID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse reactor id %q: %w", reactorID, err)
	}
	return s.registry.RecordReveal(ctx, scorekey, message, reactor)
}

package revision

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

// BuildOptions tunes a single Build call.
type BuildOptions struct {
	Cap       int            // 0 = Config.SessionCap
	Plan      *vocab.PlanRef // set for plan-backed sessions
	KeepOrder bool           // skip the shuffle
}

// Builder turns word lists into persisted revision sessions.
type Builder struct {
	records *store.Records
	cfg     Config
	logger  *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Rand drives the shuffle. Nil uses the global source.
	Rand *rand.Rand
}

// NewBuilder creates a Builder over records.
func NewBuilder(records *store.Records, cfg Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{records: records, cfg: cfg, logger: logger, Now: time.Now}
}

// Build shuffles words, truncates them to the cap and stores the result as
// a new session. Daily revision sessions are built at most once per
// calendar day; later calls that day return the stored one unchanged.
// An empty word list yields vocab.ErrEmptyPool and stores nothing.
func (b *Builder) Build(ctx context.Context, words []vocab.Word, source vocab.SessionSource, opts BuildOptions) (*vocab.Session, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("unknown session source %q", source)
	}
	now := b.Now()

	if source == vocab.SourceDailyRevision {
		existing, err := b.todaysDaily(ctx, now)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			b.logger.Debug("reusing today's daily session", "session_id", existing.ID)
			return existing, nil
		}
	}

	if len(words) == 0 {
		return nil, vocab.ErrEmptyPool
	}

	limit := opts.Cap
	if limit <= 0 {
		limit = b.cfg.SessionCap
	}

	picked := make([]vocab.Word, len(words))
	copy(picked, words)
	if !opts.KeepOrder {
		b.shuffle(picked)
	}
	if len(picked) > limit {
		picked = picked[:limit]
	}

	s := &vocab.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Words:     picked,
		Source:    source,
		Completed: false,
		Plan:      opts.Plan,
	}
	if err := b.records.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	b.logger.Info("built revision session",
		"session_id", s.ID,
		"source", string(source),
		"words", len(picked))
	return s, nil
}

// shuffle is an in-place Fisher–Yates shuffle.
func (b *Builder) shuffle(words []vocab.Word) {
	for i := len(words) - 1; i > 0; i-- {
		var j int
		if b.Rand != nil {
			j = b.Rand.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		words[i], words[j] = words[j], words[i]
	}
}

func (b *Builder) todaysDaily(ctx context.Context, now time.Time) (*vocab.Session, error) {
	sessions, err := b.records.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	var found *vocab.Session
	for i := range sessions {
		s := &sessions[i]
		if s.Source != vocab.SourceDailyRevision || !sameDay(s.CreatedAt, now) {
			continue
		}
		if found == nil || s.CreatedAt.After(found.CreatedAt) {
			found = s
		}
	}
	return found, nil
}

// sameDay compares calendar dates in now's location.
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Get returns the session with id or vocab.ErrSessionNotFound.
func (b *Builder) Get(ctx context.Context, id string) (*vocab.Session, error) {
	s, err := b.records.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("session %s: %w", id, vocab.ErrSessionNotFound)
	}
	return s, nil
}

// List returns every stored session, oldest first.
func (b *Builder) List(ctx context.Context) ([]vocab.Session, error) {
	return b.records.Sessions(ctx)
}

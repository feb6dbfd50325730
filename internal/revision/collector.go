package revision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

// Collector aggregates weak words from the history logs and plans.
type Collector struct {
	records *store.Records
	cfg     Config
	logger  *slog.Logger
}

// NewCollector creates a Collector over records.
func NewCollector(records *store.Records, cfg Config, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{records: records, cfg: cfg, logger: logger}
}

// pool accumulates candidates, keeping the first record seen per word id.
type pool struct {
	seen  map[string]bool
	words []vocab.Word
}

func (p *pool) add(w vocab.Word) {
	if w.ID == "" || p.seen[w.ID] {
		return
	}
	p.seen[w.ID] = true
	p.words = append(p.words, w)
}

// Collect returns the deduplicated candidate pool in priority order:
// flashcard misses, quiz misses, unresolved plan words, then chapter words
// when the pool is still below MinPoolSize. An empty pool is not an error.
func (c *Collector) Collect(ctx context.Context) ([]vocab.Word, error) {
	p := &pool{seen: make(map[string]bool)}

	flashcards, err := c.records.FlashcardAttempts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load flashcard attempts: %w", err)
	}
	for _, a := range flashcards {
		if a.Word.IsKnown {
			continue
		}
		if a.Result == vocab.ResultIncorrect || a.Result == vocab.ResultSkipped || a.TimeTakenMs >= c.cfg.SlowAttemptMs {
			at := a.AttemptedAt
			w := a.Word
			w.LastAttempt = &vocab.AttemptMeta{Date: &at, Result: a.Result, TimeTakenMs: a.TimeTakenMs}
			p.add(w)
		}
	}

	quizzes, err := c.records.QuizAttempts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quiz attempts: %w", err)
	}
	for _, a := range quizzes {
		if a.Word.IsKnown {
			continue
		}
		if !a.Correct || a.TimeTakenMs >= c.cfg.SlowAttemptMs {
			at := a.AttemptedAt
			result := vocab.ResultCorrect
			if !a.Correct {
				result = vocab.ResultIncorrect
			}
			w := a.Word
			w.LastAttempt = &vocab.AttemptMeta{Date: &at, Result: result, TimeTakenMs: a.TimeTakenMs}
			p.add(w)
		}
	}

	plans, err := c.records.Plans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	for _, plan := range plans {
		for _, set := range plan.Sets {
			byID := vocab.IndexWords(set.Words)
			for _, id := range set.UnknownWordIDs {
				w, ok := byID[id]
				if !ok || w.IsKnown {
					continue
				}
				w.LastAttempt = &vocab.AttemptMeta{Result: vocab.ResultIncorrect}
				p.add(w)
			}
		}
	}

	if len(p.words) < c.cfg.MinPoolSize {
		chapters, err := c.records.Chapters(ctx)
		if err != nil {
			return nil, fmt.Errorf("load chapters: %w", err)
		}
		for _, ch := range chapters {
			for _, w := range ch.Words {
				if w.IsKnown {
					continue
				}
				w.LastAttempt = nil
				p.add(w)
			}
		}
	}

	c.logger.Debug("collected weak words", "count", len(p.words))
	return p.words, nil
}

package revision

import (
	"context"
	"fmt"

	"github.com/abhisek/wordwise/internal/vocab"
)

// Regenerator derives follow-up sessions from a scored session's misses.
type Regenerator struct {
	builder *Builder
}

// NewRegenerator creates a Regenerator that builds through builder.
func NewRegenerator(builder *Builder) *Regenerator {
	return &Regenerator{builder: builder}
}

// Regenerate builds a challenging-words session from the incorrect, skipped
// and bookmarked words of session id, in that order and without repeats.
// It returns vocab.ErrNotScored when the session has no results and
// vocab.ErrNothingToReview when the union is empty.
func (r *Regenerator) Regenerate(ctx context.Context, id string) (*vocab.Session, error) {
	src, err := r.builder.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if src.Results == nil {
		return nil, fmt.Errorf("session %s: %w", id, vocab.ErrNotScored)
	}

	words := ChallengingWords(src)
	if len(words) == 0 {
		return nil, vocab.ErrNothingToReview
	}
	return r.builder.Build(ctx, words, vocab.SourceChallengingWords, BuildOptions{KeepOrder: true})
}

// ChallengingWords resolves the union of a session's incorrect, skipped and
// bookmarked ids back to its words. Ids not present in the session are dropped.
func ChallengingWords(s *vocab.Session) []vocab.Word {
	if s.Results == nil {
		return nil
	}
	byID := vocab.IndexWords(s.Words)
	seen := make(map[string]bool)
	var words []vocab.Word
	for _, group := range [][]string{s.Results.Incorrect, s.Results.Skipped, s.Results.Bookmarked} {
		for _, id := range group {
			if seen[id] {
				continue
			}
			seen[id] = true
			if w, ok := byID[id]; ok {
				words = append(words, w)
			}
		}
	}
	return words
}

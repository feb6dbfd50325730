package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

// RawResult is the presentation layer's record of one presented word.
// A nil Selected means the word was skipped.
type RawResult struct {
	WordID      string  `json:"wordId"`
	Selected    *Option `json:"selected,omitempty"`
	Bookmarked  bool    `json:"bookmarked,omitempty"`
	TimeTakenMs int64   `json:"timeTakenMs,omitempty"`
}

// Outcome is the evaluation of one quiz submission.
type Outcome struct {
	Score   int
	Answers []vocab.QuizAnswer
	Results vocab.SessionResults
}

// CompletionRecorder receives quiz completions for plan-backed sessions.
type CompletionRecorder interface {
	RecordQuizCompletion(ctx context.Context, planID string, idx int, known, unknown []string) (*vocab.Plan, error)
}

// ScorePercent is round(100 * correct / (correct + incorrect)), or 0 when
// nothing was answered. Skipped words never enter the ratio.
func ScorePercent(correct, incorrect int) int {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Evaluate scores raw results against the session's words without side
// effects. Answers follow session order; a word with no raw entry counts as
// skipped and raw entries for words outside the session are ignored.
func Evaluate(s *vocab.Session, raw []RawResult) Outcome {
	byWord := make(map[string]RawResult, len(raw))
	for _, r := range raw {
		byWord[r.WordID] = r
	}

	out := Outcome{
		Answers: make([]vocab.QuizAnswer, 0, len(s.Words)),
		Results: vocab.SessionResults{
			Correct:    []string{},
			Incorrect:  []string{},
			Skipped:    []string{},
			Bookmarked: []string{},
		},
	}

	for _, w := range s.Words {
		r, ok := byWord[w.ID]
		ans := vocab.QuizAnswer{
			WordID:      w.ID,
			Word:        w,
			CorrectText: w.Definition,
		}
		switch {
		case !ok || r.Selected == nil:
			ans.Skipped = true
			out.Results.Skipped = append(out.Results.Skipped, w.ID)
		case r.Selected.ID == w.ID:
			ans.Correct = true
			ans.SelectedOptionID = r.Selected.ID
			ans.SelectedText = r.Selected.Text
			out.Results.Correct = append(out.Results.Correct, w.ID)
		default:
			ans.SelectedOptionID = r.Selected.ID
			ans.SelectedText = r.Selected.Text
			out.Results.Incorrect = append(out.Results.Incorrect, w.ID)
		}
		if w.IsBookmarked || r.Bookmarked {
			ans.Word.IsBookmarked = true
			out.Results.Bookmarked = append(out.Results.Bookmarked, w.ID)
		}
		out.Answers = append(out.Answers, ans)
	}

	out.Score = ScorePercent(len(out.Results.Correct), len(out.Results.Incorrect))
	return out
}

// Scorer evaluates quiz submissions and applies their side effects.
type Scorer struct {
	records  *store.Records
	recorder CompletionRecorder
	logger   *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewScorer creates a Scorer. recorder may be nil when no plans are in use.
func NewScorer(records *store.Records, recorder CompletionRecorder, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{records: records, recorder: recorder, logger: logger, Now: time.Now}
}

// Score evaluates raw against session id and persists the outcome. Every
// write is keyed, so submitting the same session twice leaves one set of
// history rows, one saved result and one completed-set entry.
func (sc *Scorer) Score(ctx context.Context, sessionID string, raw []RawResult) (*Outcome, error) {
	s, err := sc.records.Session(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, vocab.ErrSessionNotFound)
	}

	var plan *vocab.Plan
	if s.Plan != nil {
		plan, err = sc.records.Plan(ctx, s.Plan.PlanID)
		if err != nil {
			return nil, fmt.Errorf("load plan: %w", err)
		}
		if plan == nil {
			return nil, fmt.Errorf("plan %s: %w", s.Plan.PlanID, vocab.ErrPlanNotFound)
		}
		// Refuse before writing anything the plan engine would reject.
		idx := s.Plan.SetIndex
		if idx < 0 || idx >= len(plan.Sets) {
			return nil, fmt.Errorf("plan %s set %d: %w", plan.ID, idx, vocab.ErrSetIndexOutOfRange)
		}
		if !plan.Sets[idx].IsUnlocked {
			return nil, fmt.Errorf("plan %s set %d: %w", plan.ID, idx, vocab.ErrLockedSet)
		}
	}

	out := Evaluate(s, raw)
	now := sc.Now()

	// (i) session record
	bookmarked := make(map[string]bool, len(out.Results.Bookmarked))
	for _, id := range out.Results.Bookmarked {
		bookmarked[id] = true
	}
	for i := range s.Words {
		if bookmarked[s.Words[i].ID] {
			s.Words[i].IsBookmarked = true
		}
	}
	score := out.Score
	results := out.Results
	s.Completed = true
	s.Score = &score
	s.Results = &results
	if err := sc.records.SaveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	// (ii) quiz-attempt log
	timeTaken := make(map[string]int64, len(raw))
	for _, r := range raw {
		timeTaken[r.WordID] = r.TimeTakenMs
	}
	var rows []vocab.QuizAttempt
	for _, a := range out.Answers {
		if a.Skipped {
			continue
		}
		rows = append(rows, vocab.QuizAttempt{
			Word:        a.Word,
			Correct:     a.Correct,
			TimeTakenMs: timeTaken[a.WordID],
			AttemptedAt: now,
			SessionID:   s.ID,
		})
	}
	if err := sc.records.ReplaceQuizAttempts(ctx, s.ID, rows); err != nil {
		return nil, fmt.Errorf("log quiz attempts: %w", err)
	}

	// (iii) bookmarks
	var bms []vocab.Bookmark
	for _, a := range out.Answers {
		if !bookmarked[a.WordID] {
			continue
		}
		bms = append(bms, vocab.Bookmark{
			WordID:      a.WordID,
			Term:        a.Word.Term,
			Translation: a.Word.Definition,
			Phonetic:    a.Word.Phonetic,
			Chapter:     BookmarkLabel(a.Word, s, plan),
		})
	}
	if err := sc.records.UpsertBookmarks(ctx, bms...); err != nil {
		return nil, fmt.Errorf("save bookmarks: %w", err)
	}

	// (iv) plan progress
	if s.Plan != nil && sc.recorder != nil {
		unknown := append(append([]string{}, results.Incorrect...), results.Skipped...)
		if _, err := sc.recorder.RecordQuizCompletion(ctx, s.Plan.PlanID, s.Plan.SetIndex, results.Correct, unknown); err != nil {
			return nil, fmt.Errorf("record quiz completion: %w", err)
		}
	}

	// (v) saved result for "review again"
	ownerID, setIndex := vocab.SavedResultKey(s)
	if err := sc.records.UpsertSavedResult(ctx, &vocab.SavedQuizResult{
		OwnerID:   ownerID,
		SetIndex:  setIndex,
		SessionID: s.ID,
		Score:     out.Score,
		Answers:   out.Answers,
		SavedAt:   now,
	}); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	sc.logger.Info("scored quiz",
		"session_id", s.ID,
		"score", out.Score,
		"correct", len(results.Correct),
		"incorrect", len(results.Incorrect),
		"skipped", len(results.Skipped),
		"bookmarked", len(results.Bookmarked))
	return &out, nil
}

// BookmarkLabel resolves a bookmark's group: the word's own group, then the
// plan title for plan-backed sessions, then a fixed label per source.
func BookmarkLabel(w vocab.Word, s *vocab.Session, plan *vocab.Plan) string {
	if w.Group != "" {
		return w.Group
	}
	if s.Plan != nil && plan != nil && plan.Title != "" {
		return plan.Title
	}
	return s.Source.Label()
}

// LatestResult returns the saved result shown by "review again", or nil.
func (sc *Scorer) LatestResult(ctx context.Context, s *vocab.Session) (*vocab.SavedQuizResult, error) {
	ownerID, setIndex := vocab.SavedResultKey(s)
	return sc.records.SavedResult(ctx, ownerID, setIndex)
}

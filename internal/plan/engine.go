// Package plan drives the learning-plan state machine: chunking a chapter
// into sets, gating each set on its flashcard and quiz phases, and
// unlocking the next set on completion.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/wordwise/internal/revision"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

// Phase is the practice phase a plan set session should run.
type Phase string

const (
	PhaseFlashcard Phase = "flashcard"
	PhaseQuiz      Phase = "quiz"
)

// CreateRequest describes a new plan.
type CreateRequest struct {
	Title         string         `validate:"required,max=200"`
	Description   string         `validate:"max=2000"`
	ChapterID     string         `validate:"required"`
	DailyWordGoal int            `validate:"required,gt=0"`
	QuizMode      vocab.QuizMode `validate:"required,oneof=quiz-with-flashcard only-quiz"`
}

// Engine owns plan records. Every mutation reads the latest plan, applies
// the change in memory and writes the whole record back once.
type Engine struct {
	records  *store.Records
	builder  *revision.Builder
	validate *validator.Validate
	logger   *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates an Engine. builder is used to start set sessions.
func NewEngine(records *store.Records, builder *revision.Builder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		records:  records,
		builder:  builder,
		validate: validator.New(),
		logger:   logger,
		Now:      time.Now,
	}
}

// Create partitions the chapter's not-known words into DailyWordGoal-sized
// sets and stores the plan with only the first set unlocked.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*vocab.Plan, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid plan request: %w", err)
	}

	ch, err := e.records.Chapter(ctx, req.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("load chapter: %w", err)
	}
	if ch == nil {
		return nil, fmt.Errorf("chapter %s: %w", req.ChapterID, vocab.ErrChapterNotFound)
	}

	var eligible []vocab.Word
	for _, w := range ch.Words {
		if !w.IsKnown {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("chapter %s: %w", req.ChapterID, vocab.ErrEmptyChapter)
	}

	now := e.Now()
	chunks := Chunk(eligible, req.DailyWordGoal)
	sets := make([]vocab.PlanSet, len(chunks))
	for i, words := range chunks {
		sets[i] = vocab.PlanSet{
			ID:             uuid.NewString(),
			Words:          words,
			KnownWordIDs:   []string{},
			UnknownWordIDs: []string{},
		}
	}
	sets[0].IsUnlocked = true
	sets[0].UnlockedAt = &now

	p := &vocab.Plan{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		ChapterID:     req.ChapterID,
		DailyWordGoal: req.DailyWordGoal,
		TotalWords:    len(eligible),
		TotalDays:     len(sets),
		CreatedAt:     now,
		StartedAt:     now,
		Active:        true,
		QuizMode:      req.QuizMode,
		Sets:          sets,
		CompletedSets: []string{},
	}
	if err := e.records.SavePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	e.logger.Info("created learning plan",
		"plan_id", p.ID,
		"chapter_id", p.ChapterID,
		"sets", len(sets),
		"words", len(eligible))
	return p, nil
}

// Chunk splits words into contiguous chunks of size n; the last may be shorter.
func Chunk(words []vocab.Word, n int) [][]vocab.Word {
	if n <= 0 {
		return nil
	}
	var chunks [][]vocab.Word
	for start := 0; start < len(words); start += n {
		end := min(start+n, len(words))
		chunk := make([]vocab.Word, end-start)
		copy(chunk, words[start:end])
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Get returns the plan with id or vocab.ErrPlanNotFound.
func (e *Engine) Get(ctx context.Context, id string) (*vocab.Plan, error) {
	p, err := e.records.Plan(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("plan %s: %w", id, vocab.ErrPlanNotFound)
	}
	return p, nil
}

// List returns every stored plan.
func (e *Engine) List(ctx context.Context) ([]vocab.Plan, error) {
	return e.records.Plans(ctx)
}

// Deactivate marks a plan inactive without touching its sets.
func (e *Engine) Deactivate(ctx context.Context, id string) error {
	p, err := e.Get(ctx, id)
	if err != nil {
		return err
	}
	p.Active = false
	return e.records.SavePlan(ctx, p)
}

// StartSet builds a learning-plan session over the words of set idx and
// reports which phase to run first. Locked and empty sets are refused.
func (e *Engine) StartSet(ctx context.Context, planID string, idx int) (*vocab.Session, Phase, error) {
	p, err := e.Get(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	set, err := setAt(p, idx)
	if err != nil {
		return nil, "", err
	}
	if !set.IsUnlocked {
		return nil, "", fmt.Errorf("plan %s set %d: %w", planID, idx, vocab.ErrLockedSet)
	}
	if len(set.Words) == 0 {
		return nil, "", fmt.Errorf("plan %s set %d: %w", planID, idx, vocab.ErrEmptySet)
	}

	phase := EntryPhase(p.QuizMode, set)
	s, err := e.builder.Build(ctx, set.Words, vocab.SourceLearningPlan, revision.BuildOptions{
		Cap:  len(set.Words),
		Plan: &vocab.PlanRef{PlanID: planID, SetIndex: idx},
	})
	if err != nil {
		return nil, "", err
	}
	return s, phase, nil
}

// EntryPhase picks the first phase for a set session. only-quiz plans go
// straight to the quiz; otherwise flashcards run until they are done.
func EntryPhase(mode vocab.QuizMode, set *vocab.PlanSet) Phase {
	if mode == vocab.OnlyQuiz || set.FlashcardCompleted {
		return PhaseQuiz
	}
	return PhaseFlashcard
}

// RecordFlashcardCompletion marks the flashcard phase of set idx done and
// stores the known/unknown partition.
func (e *Engine) RecordFlashcardCompletion(ctx context.Context, planID string, idx int, known, unknown []string) (*vocab.Plan, error) {
	return e.recordPhase(ctx, planID, idx, PhaseFlashcard, known, unknown)
}

// CompleteFlashcards logs the flashcard rows of a set session and records
// the flashcard phase with the known/unknown partition derived from them.
// Rows are keyed by sessionID, so repeating the call replaces them.
func (e *Engine) CompleteFlashcards(ctx context.Context, planID string, idx int, sessionID string, attempts []vocab.FlashcardAttempt) (*vocab.Plan, error) {
	p, err := e.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	set, err := setAt(p, idx)
	if err != nil {
		return nil, err
	}
	if !set.IsUnlocked {
		return nil, fmt.Errorf("plan %s set %d: %w", planID, idx, vocab.ErrLockedSet)
	}

	now := e.Now()
	byID := vocab.IndexWords(set.Words)
	rows := make([]vocab.FlashcardAttempt, 0, len(attempts))
	for _, a := range attempts {
		w, ok := byID[a.Word.ID]
		if !ok {
			return nil, fmt.Errorf("word %q is not in plan %s set %d", a.Word.ID, planID, idx)
		}
		a.Word = w
		if !a.Result.Valid() {
			return nil, fmt.Errorf("word %s: invalid flashcard result %q", a.Word.ID, a.Result)
		}
		if a.AttemptedAt.IsZero() {
			a.AttemptedAt = now
		}
		a.SessionID = sessionID
		rows = append(rows, a)
	}
	if err := e.records.ReplaceFlashcardAttempts(ctx, sessionID, rows); err != nil {
		return nil, fmt.Errorf("log flashcard attempts: %w", err)
	}

	known, unknown := PartitionFlashcards(set.Words, rows)
	return e.RecordFlashcardCompletion(ctx, planID, idx, known, unknown)
}

// RecordQuizCompletion marks the quiz phase of set idx done and stores the
// known/unknown partition.
func (e *Engine) RecordQuizCompletion(ctx context.Context, planID string, idx int, known, unknown []string) (*vocab.Plan, error) {
	return e.recordPhase(ctx, planID, idx, PhaseQuiz, known, unknown)
}

func (e *Engine) recordPhase(ctx context.Context, planID string, idx int, phase Phase, known, unknown []string) (*vocab.Plan, error) {
	p, err := e.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	set, err := setAt(p, idx)
	if err != nil {
		return nil, err
	}
	if !set.IsUnlocked {
		return nil, fmt.Errorf("plan %s set %d: %w", planID, idx, vocab.ErrLockedSet)
	}

	switch phase {
	case PhaseFlashcard:
		set.FlashcardCompleted = true
	case PhaseQuiz:
		set.QuizCompleted = true
	}
	set.KnownWordIDs, set.UnknownWordIDs = restrictPartition(set.Words, known, unknown)

	completedNow := false
	if !set.IsCompleted && SetComplete(p.QuizMode, set) {
		e.complete(p, idx)
		completedNow = true
	}

	if err := e.records.SavePlan(ctx, p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	e.logger.Info("recorded plan phase",
		"plan_id", planID,
		"set_index", idx,
		"phase", string(phase),
		"set_completed", completedNow)
	return p, nil
}

// SetComplete reports whether a set meets its completion condition.
// With only-quiz either phase suffices; otherwise both are required.
func SetComplete(mode vocab.QuizMode, set *vocab.PlanSet) bool {
	if mode == vocab.OnlyQuiz {
		return set.FlashcardCompleted || set.QuizCompleted
	}
	return set.FlashcardCompleted && set.QuizCompleted
}

// complete applies the completion transition for set idx in memory.
func (e *Engine) complete(p *vocab.Plan, idx int) {
	now := e.Now()
	set := &p.Sets[idx]
	set.IsCompleted = true
	set.CompletedAt = &now

	already := false
	for _, id := range p.CompletedSets {
		if id == set.ID {
			already = true
			break
		}
	}
	if !already {
		p.CompletedSets = append(p.CompletedSets, set.ID)
	}

	last := len(p.Sets) - 1
	if idx < last {
		next := &p.Sets[idx+1]
		if !next.IsUnlocked {
			next.IsUnlocked = true
			next.UnlockedAt = &now
		}
		// Never move the cursor backwards when an earlier set is redone.
		if p.CurrentSetIndex < idx+1 {
			p.CurrentSetIndex = idx + 1
		}
	}
	if p.CurrentSetIndex > last {
		p.CurrentSetIndex = last
	}
	if len(p.CompletedSets) == len(p.Sets) {
		p.Active = false
	}
}

func setAt(p *vocab.Plan, idx int) (*vocab.PlanSet, error) {
	if idx < 0 || idx >= len(p.Sets) {
		return nil, fmt.Errorf("plan %s set %d: %w", p.ID, idx, vocab.ErrSetIndexOutOfRange)
	}
	return &p.Sets[idx], nil
}

// restrictPartition keeps only ids that belong to words, deduplicated.
// An id listed as both known and unknown counts as unknown.
func restrictPartition(words []vocab.Word, known, unknown []string) ([]string, []string) {
	valid := vocab.IndexWords(words)
	unk := make([]string, 0, len(unknown))
	inUnknown := make(map[string]bool)
	for _, id := range unknown {
		if _, ok := valid[id]; ok && !inUnknown[id] {
			inUnknown[id] = true
			unk = append(unk, id)
		}
	}
	kn := make([]string, 0, len(known))
	inKnown := make(map[string]bool)
	for _, id := range known {
		if _, ok := valid[id]; ok && !inKnown[id] && !inUnknown[id] {
			inKnown[id] = true
			kn = append(kn, id)
		}
	}
	return kn, unk
}

package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordwise/internal/plan"
	"github.com/abhisek/wordwise/internal/revision"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

var testNow = time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)

func pick(w vocab.Word) *Option { return &Option{ID: w.ID, Text: w.Definition} }

func wrong(w vocab.Word) *Option { return &Option{ID: "other", Text: "not " + w.Definition} }

func TestScorePercent(t *testing.T) {
	tests := []struct {
		correct, incorrect, want int
	}{
		{6, 2, 75},
		{0, 0, 0},
		{0, 5, 0},
		{5, 0, 100},
		{1, 2, 33},
		{2, 1, 67},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScorePercent(tt.correct, tt.incorrect), "%d/%d", tt.correct, tt.incorrect)
	}
}

func TestEvaluateScenario(t *testing.T) {
	ws := words(10)
	s := &vocab.Session{ID: "s", Words: ws}

	var raw []RawResult
	for i, w := range ws {
		switch {
		case i < 6:
			raw = append(raw, RawResult{WordID: w.ID, Selected: pick(w)})
		case i < 8:
			raw = append(raw, RawResult{WordID: w.ID, Selected: wrong(w)})
		case i == 8:
			raw = append(raw, RawResult{WordID: w.ID}) // explicit skip
		}
		// ws[9] has no entry and counts as skipped
	}
	raw = append(raw, RawResult{WordID: "foreign", Selected: &Option{ID: "foreign"}})

	out := Evaluate(s, raw)
	assert.Equal(t, 75, out.Score)
	assert.Len(t, out.Results.Correct, 6)
	assert.Equal(t, []string{"w6", "w7"}, out.Results.Incorrect)
	assert.Equal(t, []string{"w8", "w9"}, out.Results.Skipped)
	require.Len(t, out.Answers, 10)
	assert.Equal(t, "not definition 6", out.Answers[6].SelectedText)
	assert.Equal(t, "definition 6", out.Answers[6].CorrectText)
	assert.True(t, out.Answers[9].Skipped)
}

func TestEvaluateSkipsDoNotAffectScore(t *testing.T) {
	ws := words(4)
	s := &vocab.Session{Words: ws}
	base := []RawResult{
		{WordID: "w0", Selected: pick(ws[0])},
		{WordID: "w1", Selected: wrong(ws[1])},
	}
	withSkips := append(append([]RawResult{}, base...), RawResult{WordID: "w2"}, RawResult{WordID: "w3"})

	assert.Equal(t, Evaluate(s, base).Score, Evaluate(s, withSkips).Score)
	assert.Equal(t, 50, Evaluate(s, withSkips).Score)
}

func TestEvaluateBookmarks(t *testing.T) {
	ws := words(3)
	ws[2].IsBookmarked = true
	s := &vocab.Session{Words: ws}

	out := Evaluate(s, []RawResult{
		{WordID: "w0", Selected: pick(ws[0]), Bookmarked: true},
		{WordID: "w1", Selected: pick(ws[1])},
	})
	assert.Equal(t, []string{"w0", "w2"}, out.Results.Bookmarked)
	assert.True(t, out.Answers[0].Word.IsBookmarked)
	assert.Equal(t, 100, out.Score)
}

func TestBookmarkLabel(t *testing.T) {
	p := &vocab.Plan{Title: "Week one"}
	planSession := &vocab.Session{Source: vocab.SourceLearningPlan, Plan: &vocab.PlanRef{PlanID: "p"}}

	assert.Equal(t, "Animals", BookmarkLabel(vocab.Word{Group: "Animals"}, planSession, p))
	assert.Equal(t, "Week one", BookmarkLabel(vocab.Word{}, planSession, p))
	assert.Equal(t, "Learning Plan", BookmarkLabel(vocab.Word{}, planSession, nil))
	assert.Equal(t, "Daily Revision", BookmarkLabel(vocab.Word{}, &vocab.Session{Source: vocab.SourceDailyRevision}, nil))
	assert.Equal(t, "Challenging Words", BookmarkLabel(vocab.Word{}, &vocab.Session{Source: vocab.SourceChallengingWords}, p))
}

type scoreFixture struct {
	records *store.Records
	builder *revision.Builder
	engine  *plan.Engine
	scorer  *Scorer
}

func newScoreFixture(t *testing.T) *scoreFixture {
	t.Helper()
	records := store.NewRecords(store.NewMemory(), nil)
	builder := revision.NewBuilder(records, revision.DefaultConfig(), nil)
	builder.Now = func() time.Time { return testNow }
	engine := plan.NewEngine(records, builder, nil)
	engine.Now = func() time.Time { return testNow }
	scorer := NewScorer(records, engine, nil)
	scorer.Now = func() time.Time { return testNow }
	return &scoreFixture{records: records, builder: builder, engine: engine, scorer: scorer}
}

func TestScoreSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newScoreFixture(t)

	ws := words(4)
	ws[0].Group = "Animals"
	s, err := f.builder.Build(ctx, ws, vocab.SourceDailyRevision, revision.BuildOptions{KeepOrder: true})
	require.NoError(t, err)

	raw := []RawResult{
		{WordID: "w0", Selected: pick(ws[0]), Bookmarked: true, TimeTakenMs: 800},
		{WordID: "w1", Selected: wrong(ws[1]), Bookmarked: true, TimeTakenMs: 1600},
		{WordID: "w2", Selected: pick(ws[2])},
	}

	out, err := f.scorer.Score(ctx, s.ID, raw)
	require.NoError(t, err)
	assert.Equal(t, 67, out.Score)

	// (i) session record
	stored, err := f.builder.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 67, *stored.Score)
	require.NotNil(t, stored.Results)
	assert.Equal(t, []string{"w3"}, stored.Results.Skipped)
	assert.True(t, stored.Words[0].IsBookmarked)
	assert.True(t, stored.Words[1].IsBookmarked)
	assert.False(t, stored.Words[2].IsBookmarked)

	// (ii) quiz log has answered words only
	log, err := f.records.QuizAttempts(ctx)
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, "w1", log[1].Word.ID)
	assert.False(t, log[1].Correct)
	assert.Equal(t, int64(1600), log[1].TimeTakenMs)
	assert.Equal(t, s.ID, log[1].SessionID)

	// (iii) bookmarks with group labels
	bms, err := f.records.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, bms, 2)
	assert.Equal(t, "Animals", bms[0].Chapter)
	assert.Equal(t, "Daily Revision", bms[1].Chapter)
	assert.Equal(t, "definition 1", bms[1].Translation)

	// (v) saved result keyed by session
	res, err := f.scorer.LatestResult(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, s.ID, res.OwnerID)
	assert.Equal(t, -1, res.SetIndex)
	assert.Equal(t, 67, res.Score)

	// Resubmission replaces rather than duplicates.
	out, err = f.scorer.Score(ctx, s.ID, raw[:1])
	require.NoError(t, err)
	assert.Equal(t, 100, out.Score)

	log, err = f.records.QuizAttempts(ctx)
	require.NoError(t, err)
	assert.Len(t, log, 1)
	results, err := f.records.SavedResults(ctx)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	bms, err = f.records.Bookmarks(ctx)
	require.NoError(t, err)
	assert.Len(t, bms, 2)
}

func createPlan(t *testing.T, f *scoreFixture, n, goal int, mode vocab.QuizMode) *vocab.Plan {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.records.SaveChapter(ctx, &vocab.Chapter{ID: "c1", Words: words(n)}))
	p, err := f.engine.Create(ctx, plan.CreateRequest{
		Title: "Week one", ChapterID: "c1", DailyWordGoal: goal, QuizMode: mode,
	})
	require.NoError(t, err)
	return p
}

func TestScorePlanSessionCompletesSet(t *testing.T) {
	ctx := context.Background()
	f := newScoreFixture(t)
	p := createPlan(t, f, 4, 2, vocab.OnlyQuiz)

	s, phase, err := f.engine.StartSet(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, plan.PhaseQuiz, phase)

	byID := vocab.IndexWords(s.Words)
	raw := []RawResult{
		{WordID: "w0", Selected: pick(byID["w0"]), Bookmarked: true},
		{WordID: "w1", Selected: wrong(byID["w1"])},
	}
	_, err = f.scorer.Score(ctx, s.ID, raw)
	require.NoError(t, err)

	p, err = f.engine.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.Sets[0].IsCompleted)
	assert.True(t, p.Sets[1].IsUnlocked)
	assert.Equal(t, 1, p.CurrentSetIndex)
	assert.Equal(t, []string{"w0"}, p.Sets[0].KnownWordIDs)
	assert.Equal(t, []string{"w1"}, p.Sets[0].UnknownWordIDs)
	require.NoError(t, p.CheckInvariants())

	bms, err := f.records.Bookmarks(ctx)
	require.NoError(t, err)
	require.Len(t, bms, 1)
	assert.Equal(t, "Week one", bms[0].Chapter)

	res, err := f.records.SavedResult(ctx, p.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, s.ID, res.SessionID)

	// Scoring again keeps one completed-set entry.
	_, err = f.scorer.Score(ctx, s.ID, raw)
	require.NoError(t, err)
	p, err = f.engine.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, p.CompletedSets, 1)
}

func TestScoreRefusesLockedPlanSetWithoutWrites(t *testing.T) {
	ctx := context.Background()
	f := newScoreFixture(t)
	p := createPlan(t, f, 4, 2, vocab.OnlyQuiz)

	// A session pointing at a set that is still locked.
	s := &vocab.Session{
		ID: "locked", CreatedAt: testNow, Source: vocab.SourceLearningPlan,
		Words: p.Sets[1].Words, Plan: &vocab.PlanRef{PlanID: p.ID, SetIndex: 1},
	}
	require.NoError(t, f.records.SaveSession(ctx, s))

	_, err := f.scorer.Score(ctx, s.ID, []RawResult{{WordID: s.Words[0].ID, Selected: pick(s.Words[0]), Bookmarked: true}})
	assert.ErrorIs(t, err, vocab.ErrLockedSet)

	stored, err := f.builder.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	log, err := f.records.QuizAttempts(ctx)
	require.NoError(t, err)
	assert.Empty(t, log)
	bms, err := f.records.Bookmarks(ctx)
	require.NoError(t, err)
	assert.Empty(t, bms)
}

func TestScoreMissingSession(t *testing.T) {
	f := newScoreFixture(t)
	_, err := f.scorer.Score(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, vocab.ErrSessionNotFound)
}

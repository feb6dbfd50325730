package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordwise/internal/config"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/revision"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

func TestDailySessionFromChapterFallback(t *testing.T) {
	ctx := context.Background()
	a := New(store.NewMemory(), revision.DefaultConfig(), nil)
	defer a.Close()

	_, err := a.DailySession(ctx)
	assert.ErrorIs(t, err, vocab.ErrEmptyPool)

	require.NoError(t, a.Records.SaveChapter(ctx, &vocab.Chapter{ID: "c1", Words: []vocab.Word{
		{ID: "a", Term: "a", Definition: "first"},
		{ID: "b", Term: "b", Definition: "second"},
	}}))

	s, err := a.DailySession(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, vocab.WordIDs(s.Words))

	again, err := a.DailySession(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestOpenSQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "data", "wordwise.db")

	a, err := Open(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Records.SaveChapter(ctx, &vocab.Chapter{ID: "c1", Name: "Basics", Words: []vocab.Word{
		{ID: "a", Term: "a", Definition: "first"},
		{ID: "b", Term: "b", Definition: "second"},
		{ID: "c", Term: "c", Definition: "third"},
	}}))

	s, err := a.DailySession(ctx)
	require.NoError(t, err)

	var raw []quiz.RawResult
	for _, w := range s.Words {
		if w.ID == "b" {
			raw = append(raw, quiz.RawResult{WordID: w.ID, Selected: &quiz.Option{ID: "x", Text: "wrong"}})
			continue
		}
		raw = append(raw, quiz.RawResult{WordID: w.ID, Selected: &quiz.Option{ID: w.ID, Text: w.Definition}})
	}
	out, err := a.Scorer.Score(ctx, s.ID, raw)
	require.NoError(t, err)
	assert.Equal(t, 67, out.Score)

	follow, err := a.Regenerator.Regenerate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, vocab.WordIDs(follow.Words))

	weak, err := a.Collector.Collect(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, weak)
	assert.Equal(t, "b", weak[0].ID)
}

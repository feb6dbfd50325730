// Package app wires the store and engines together from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/wordwise/internal/config"
	"github.com/abhisek/wordwise/internal/plan"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/revision"
	"github.com/abhisek/wordwise/internal/store"
	"github.com/abhisek/wordwise/internal/vocab"
)

// App holds every engine over one shared store.
type App struct {
	Logger      *slog.Logger
	Records     *store.Records
	Collector   *revision.Collector
	Builder     *revision.Builder
	Regenerator *revision.Regenerator
	Plans       *plan.Engine
	Scorer      *quiz.Scorer

	closer io.Closer
}

// Open opens the SQLite store named by cfg and builds the engines on it.
func Open(cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create DB dir: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := New(st, cfg.Revision(), logger)
	a.closer = st
	return a, nil
}

// New builds the engines over any KV.
func New(kv store.KV, rc revision.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	records := store.NewRecords(kv, logger)
	builder := revision.NewBuilder(records, rc, logger)
	engine := plan.NewEngine(records, builder, logger)
	return &App{
		Logger:      logger,
		Records:     records,
		Collector:   revision.NewCollector(records, rc, logger),
		Builder:     builder,
		Regenerator: revision.NewRegenerator(builder),
		Plans:       engine,
		Scorer:      quiz.NewScorer(records, engine, logger),
	}
}

// Close releases the store, if the App owns one.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// DailySession returns today's daily revision session, building it from the
// weak-word pool on the first call of the day.
func (a *App) DailySession(ctx context.Context) (*vocab.Session, error) {
	words, err := a.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect weak words: %w", err)
	}
	return a.Builder.Build(ctx, words, vocab.SourceDailyRevision, revision.BuildOptions{})
}

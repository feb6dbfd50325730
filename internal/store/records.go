package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/wordwise/internal/vocab"
)

// Record keys. Every value is JSON.
const (
	KeySessions          = "revision_sessions"
	KeyPlans             = "learning_plans"
	KeyBookmarks         = "bookmarks"
	KeyQuizAttempts      = "quiz_attempts"
	KeyFlashcardAttempts = "flashcard_attempts"
	KeySavedQuizResults  = "saved_quiz_results"
	ChapterKeyPrefix     = "chapter_words_"
)

// CorruptRecordError describes a stored entry that failed structural
// validation. Index is -1 when the whole value is unusable.
type CorruptRecordError struct {
	Key   string
	Index int
	Err   error
}

func (e *CorruptRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("corrupt record %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("corrupt record %q[%d]: %v", e.Key, e.Index, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

// Records is the typed history store on top of a KV. Corrupted entries are
// logged and dropped on read; they are never returned as errors.
type Records struct {
	kv     KV
	logger *slog.Logger
}

// NewRecords wraps kv. A nil logger falls back to slog.Default().
func NewRecords(kv KV, logger *slog.Logger) *Records {
	if logger == nil {
		logger = slog.Default()
	}
	return &Records{kv: kv, logger: logger}
}

func (r *Records) discard(err *CorruptRecordError) {
	r.logger.Warn("discarding corrupt store entry",
		"key", err.Key,
		"index", err.Index,
		"error", err.Err)
}

// loadList reads a JSON array under key, keeping only entries that pass schema.
func loadList[T any](ctx context.Context, r *Records, key string, schema recordSchema) ([]T, error) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		r.discard(&CorruptRecordError{Key: key, Index: -1, Err: err})
		return nil, nil
	}

	items := make([]T, 0, len(entries))
	for i, entry := range entries {
		if err := validateEntry(schema, entry); err != nil {
			r.discard(&CorruptRecordError{Key: key, Index: i, Err: err})
			continue
		}
		var item T
		if err := json.Unmarshal(entry, &item); err != nil {
			r.discard(&CorruptRecordError{Key: key, Index: i, Err: err})
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func saveList[T any](ctx context.Context, r *Records, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// upsert replaces the first item matching match, or appends item.
func upsert[T any](items []T, item T, match func(T) bool) []T {
	for i := range items {
		if match(items[i]) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

// Sessions returns every stored revision session in insertion order.
func (r *Records) Sessions(ctx context.Context) ([]vocab.Session, error) {
	return loadList[vocab.Session](ctx, r, KeySessions, sessionSchema)
}

// Session returns the session with id, or nil if none exists.
func (r *Records) Session(ctx context.Context, id string) (*vocab.Session, error) {
	sessions, err := r.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// SaveSession upserts s by id.
func (r *Records) SaveSession(ctx context.Context, s *vocab.Session) error {
	sessions, err := r.Sessions(ctx)
	if err != nil {
		return err
	}
	sessions = upsert(sessions, *s, func(x vocab.Session) bool { return x.ID == s.ID })
	return saveList(ctx, r, KeySessions, sessions)
}

// Plans returns every stored learning plan.
func (r *Records) Plans(ctx context.Context) ([]vocab.Plan, error) {
	return loadList[vocab.Plan](ctx, r, KeyPlans, planSchema)
}

// Plan returns the plan with id, or nil if none exists.
func (r *Records) Plan(ctx context.Context, id string) (*vocab.Plan, error) {
	plans, err := r.Plans(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i], nil
		}
	}
	return nil, nil
}

// SavePlan writes the whole plan record, replacing any prior version.
func (r *Records) SavePlan(ctx context.Context, p *vocab.Plan) error {
	plans, err := r.Plans(ctx)
	if err != nil {
		return err
	}
	plans = upsert(plans, *p, func(x vocab.Plan) bool { return x.ID == p.ID })
	return saveList(ctx, r, KeyPlans, plans)
}

// Bookmarks returns the bookmark list.
func (r *Records) Bookmarks(ctx context.Context) ([]vocab.Bookmark, error) {
	return loadList[vocab.Bookmark](ctx, r, KeyBookmarks, bookmarkSchema)
}

// UpsertBookmarks inserts or replaces bookmarks by word id in one write.
func (r *Records) UpsertBookmarks(ctx context.Context, bms ...vocab.Bookmark) error {
	if len(bms) == 0 {
		return nil
	}
	list, err := r.Bookmarks(ctx)
	if err != nil {
		return err
	}
	for _, b := range bms {
		list = upsert(list, b, func(x vocab.Bookmark) bool { return x.WordID == b.WordID })
	}
	return saveList(ctx, r, KeyBookmarks, list)
}

// RemoveBookmark deletes the bookmark for wordID. It reports whether one existed.
func (r *Records) RemoveBookmark(ctx context.Context, wordID string) (bool, error) {
	list, err := r.Bookmarks(ctx)
	if err != nil {
		return false, err
	}
	kept := list[:0]
	for _, b := range list {
		if b.WordID != wordID {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, saveList(ctx, r, KeyBookmarks, kept)
}

// QuizAttempts returns the quiz-attempt log, oldest first.
func (r *Records) QuizAttempts(ctx context.Context) ([]vocab.QuizAttempt, error) {
	return loadList[vocab.QuizAttempt](ctx, r, KeyQuizAttempts, quizAttemptSchema)
}

// ReplaceQuizAttempts drops any rows previously logged for sessionID and
// appends rows, so resubmitting a session never duplicates its history.
func (r *Records) ReplaceQuizAttempts(ctx context.Context, sessionID string, rows []vocab.QuizAttempt) error {
	log, err := r.QuizAttempts(ctx)
	if err != nil {
		return err
	}
	if sessionID != "" {
		kept := log[:0]
		for _, a := range log {
			if a.SessionID != sessionID {
				kept = append(kept, a)
			}
		}
		log = kept
	}
	return saveList(ctx, r, KeyQuizAttempts, append(log, rows...))
}

// FlashcardAttempts returns the flashcard-attempt log, oldest first.
func (r *Records) FlashcardAttempts(ctx context.Context) ([]vocab.FlashcardAttempt, error) {
	return loadList[vocab.FlashcardAttempt](ctx, r, KeyFlashcardAttempts, flashcardAttemptSchema)
}

// ReplaceFlashcardAttempts drops rows previously logged for sessionID and appends rows.
func (r *Records) ReplaceFlashcardAttempts(ctx context.Context, sessionID string, rows []vocab.FlashcardAttempt) error {
	log, err := r.FlashcardAttempts(ctx)
	if err != nil {
		return err
	}
	if sessionID != "" {
		kept := log[:0]
		for _, a := range log {
			if a.SessionID != sessionID {
				kept = append(kept, a)
			}
		}
		log = kept
	}
	return saveList(ctx, r, KeyFlashcardAttempts, append(log, rows...))
}

// SavedResults returns every saved quiz result.
func (r *Records) SavedResults(ctx context.Context) ([]vocab.SavedQuizResult, error) {
	return loadList[vocab.SavedQuizResult](ctx, r, KeySavedQuizResults, savedResultSchema)
}

// SavedResult returns the saved result for (ownerID, setIndex), or nil.
func (r *Records) SavedResult(ctx context.Context, ownerID string, setIndex int) (*vocab.SavedQuizResult, error) {
	results, err := r.SavedResults(ctx)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].OwnerID == ownerID && results[i].SetIndex == setIndex {
			return &results[i], nil
		}
	}
	return nil, nil
}

// UpsertSavedResult replaces any prior result for the same (owner, set) key.
func (r *Records) UpsertSavedResult(ctx context.Context, res *vocab.SavedQuizResult) error {
	results, err := r.SavedResults(ctx)
	if err != nil {
		return err
	}
	results = upsert(results, *res, func(x vocab.SavedQuizResult) bool {
		return x.OwnerID == res.OwnerID && x.SetIndex == res.SetIndex
	})
	return saveList(ctx, r, KeySavedQuizResults, results)
}

// Chapter returns the chapter word pool for id, or nil if absent or corrupt.
// Individual corrupt words are dropped.
func (r *Records) Chapter(ctx context.Context, id string) (*vocab.Chapter, error) {
	key := ChapterKeyPrefix + id
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}
	if err := validateEntry(chapterSchema, raw); err != nil {
		r.discard(&CorruptRecordError{Key: key, Index: -1, Err: err})
		return nil, nil
	}

	var shell struct {
		ID    string            `json:"id"`
		Name  string            `json:"name"`
		Words []json.RawMessage `json:"words"`
	}
	if err := json.Unmarshal(raw, &shell); err != nil {
		r.discard(&CorruptRecordError{Key: key, Index: -1, Err: err})
		return nil, nil
	}

	ch := &vocab.Chapter{ID: shell.ID, Name: shell.Name}
	for i, entry := range shell.Words {
		if err := validateEntry(wordSchema, entry); err != nil {
			r.discard(&CorruptRecordError{Key: key, Index: i, Err: err})
			continue
		}
		var w vocab.Word
		if err := json.Unmarshal(entry, &w); err != nil {
			r.discard(&CorruptRecordError{Key: key, Index: i, Err: err})
			continue
		}
		ch.Words = append(ch.Words, w)
	}
	return ch, nil
}

// Chapters sweeps every chapter pool in key order.
func (r *Records) Chapters(ctx context.Context) ([]vocab.Chapter, error) {
	keys, err := r.kv.Keys(ctx, ChapterKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	var chapters []vocab.Chapter
	for _, k := range keys {
		ch, err := r.Chapter(ctx, strings.TrimPrefix(k, ChapterKeyPrefix))
		if err != nil {
			return nil, err
		}
		if ch != nil {
			chapters = append(chapters, *ch)
		}
	}
	return chapters, nil
}

// SaveChapter writes a chapter word pool, replacing any prior version.
func (r *Records) SaveChapter(ctx context.Context, ch *vocab.Chapter) error {
	c := *ch
	if c.Words == nil {
		c.Words = []vocab.Word{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal chapter %s: %w", ch.ID, err)
	}
	if err := r.kv.Set(ctx, ChapterKeyPrefix+ch.ID, b); err != nil {
		return fmt.Errorf("write chapter %s: %w", ch.ID, err)
	}
	return nil
}

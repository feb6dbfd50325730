// Package vocab defines the records shared by the revision, plan and quiz
// engines. Types here carry no behavior beyond validation helpers; the
// engines own all mutation.
package vocab

import "time"

// AttemptResult is the outcome of a single flashcard or quiz attempt.
type AttemptResult string

const (
	ResultCorrect   AttemptResult = "correct"
	ResultIncorrect AttemptResult = "incorrect"
	ResultSkipped   AttemptResult = "skipped"
)

// Valid reports whether r is one of the known results.
func (r AttemptResult) Valid() bool {
	switch r {
	case ResultCorrect, ResultIncorrect, ResultSkipped:
		return true
	}
	return false
}

// AttemptMeta is the transient review metadata attached to a word when it
// is pulled into a revision pool.
type AttemptMeta struct {
	Date        *time.Time    `json:"date,omitempty"`
	Result      AttemptResult `json:"result,omitempty"`
	TimeTakenMs int64         `json:"timeTakenMs,omitempty"`
}

// Word is a single vocabulary item. Its ID is stable within the collection
// that introduced it (chapter, plan set or ad-hoc list).
type Word struct {
	ID           string       `json:"id"`
	Term         string       `json:"term"`
	Definition   string       `json:"definition"`
	Phonetic     string       `json:"phonetic,omitempty"`
	Example      string       `json:"example,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Group        string       `json:"group,omitempty"` // pre-existing attribution, usually the chapter name
	IsBookmarked bool         `json:"isBookmarked"`
	IsKnown      bool         `json:"isKnown"`
	LastAttempt  *AttemptMeta `json:"lastAttempt,omitempty"`
}

// FlashcardAttempt is one row of the flashcard-attempt log.
type FlashcardAttempt struct {
	Word        Word          `json:"word"`
	Result      AttemptResult `json:"result"`
	TimeTakenMs int64         `json:"timeTakenMs"`
	AttemptedAt time.Time     `json:"attemptedAt"`
	SessionID   string        `json:"sessionId,omitempty"`
}

// QuizAttempt is one row of the quiz-attempt log.
type QuizAttempt struct {
	Word        Word      `json:"word"`
	Correct     bool      `json:"correct"`
	TimeTakenMs int64     `json:"timeTakenMs"`
	AttemptedAt time.Time `json:"attemptedAt"`
	SessionID   string    `json:"sessionId,omitempty"`
}

// Chapter is a named word pool. Plans are created from chapters.
type Chapter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Words []Word `json:"words"`
}

// Bookmark is a saved word, keyed by word id.
type Bookmark struct {
	WordID      string `json:"wordId"`
	Term        string `json:"term"`
	Translation string `json:"translation"`
	Phonetic    string `json:"phonetic,omitempty"`
	Chapter     string `json:"chapter"` // attributed group label
}

// WordIDs returns the ids of words in order.
func WordIDs(words []Word) []string {
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

// IndexWords maps word id to word. Later duplicates do not replace earlier ones.
func IndexWords(words []Word) map[string]Word {
	m := make(map[string]Word, len(words))
	for _, w := range words {
		if _, ok := m[w.ID]; !ok {
			m[w.ID] = w
		}
	}
	return m
}

package vocab

import (
	"fmt"
	"time"
)

// QuizMode selects which phases gate a plan set's completion.
type QuizMode string

const (
	QuizWithFlashcard QuizMode = "quiz-with-flashcard"
	OnlyQuiz          QuizMode = "only-quiz"
)

// Valid reports whether m is one of the known quiz modes.
func (m QuizMode) Valid() bool {
	return m == QuizWithFlashcard || m == OnlyQuiz
}

// PlanSet is one day's chunk of a learning plan.
type PlanSet struct {
	ID                 string     `json:"id"`
	Words              []Word     `json:"words"`
	IsCompleted        bool       `json:"isCompleted"`
	IsUnlocked         bool       `json:"isUnlocked"`
	FlashcardCompleted bool       `json:"flashcardCompleted"`
	QuizCompleted      bool       `json:"quizCompleted"`
	UnlockedAt         *time.Time `json:"unlockedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	KnownWordIDs       []string   `json:"knownWordIds"`
	UnknownWordIDs     []string   `json:"unknownWordIds"`
}

// Plan is a multi-day curriculum over one chapter's words.
type Plan struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ChapterID       string    `json:"chapterId"`
	DailyWordGoal   int       `json:"dailyWordGoal"`
	TotalWords      int       `json:"totalWords"`
	TotalDays       int       `json:"totalDays"`
	CreatedAt       time.Time `json:"createdAt"`
	StartedAt       time.Time `json:"startedAt"`
	CurrentSetIndex int       `json:"currentSetIndex"`
	Active          bool      `json:"active"`
	QuizMode        QuizMode  `json:"quizMode"`
	Sets            []PlanSet `json:"sets"`
	CompletedSets   []string  `json:"completedSets"`
}

// CheckInvariants verifies the unlock and completion bookkeeping:
// a non-empty prefix of sets is unlocked, and CompletedSets holds exactly
// the ids of completed sets without duplicates.
func (p *Plan) CheckInvariants() error {
	if len(p.Sets) == 0 {
		return fmt.Errorf("plan %s has no sets", p.ID)
	}
	if !p.Sets[0].IsUnlocked {
		return fmt.Errorf("plan %s: first set is locked", p.ID)
	}
	lockedSeen := false
	for i, s := range p.Sets {
		if !s.IsUnlocked {
			lockedSeen = true
			if s.IsCompleted {
				return fmt.Errorf("plan %s: set %d completed while locked", p.ID, i)
			}
			continue
		}
		if lockedSeen {
			return fmt.Errorf("plan %s: set %d unlocked after a locked set", p.ID, i)
		}
	}

	seen := make(map[string]bool, len(p.CompletedSets))
	for _, id := range p.CompletedSets {
		if seen[id] {
			return fmt.Errorf("plan %s: duplicate completed set %s", p.ID, id)
		}
		seen[id] = true
	}
	for i, s := range p.Sets {
		if s.IsCompleted != seen[s.ID] {
			return fmt.Errorf("plan %s: set %d completion flag disagrees with completed list", p.ID, i)
		}
		delete(seen, s.ID)
	}
	if len(seen) > 0 {
		return fmt.Errorf("plan %s: completed list names unknown sets", p.ID)
	}
	return nil
}

package vocab

import "time"

// SessionSource tags where a revision session came from.
type SessionSource string

const (
	SourceDailyRevision    SessionSource = "daily-revision"
	SourceChallengingWords SessionSource = "challenging-words"
	SourceLearningPlan     SessionSource = "learning-plan"
	SourceSmartRevision    SessionSource = "smart-revision"
)

// Valid reports whether s is one of the known sources.
func (s SessionSource) Valid() bool {
	switch s {
	case SourceDailyRevision, SourceChallengingWords, SourceLearningPlan, SourceSmartRevision:
		return true
	}
	return false
}

// Label is the bookmark group label used when nothing more specific is known.
func (s SessionSource) Label() string {
	switch s {
	case SourceSmartRevision:
		return "Smart Revision"
	case SourceDailyRevision:
		return "Daily Revision"
	case SourceChallengingWords:
		return "Challenging Words"
	case SourceLearningPlan:
		return "Learning Plan"
	}
	return "Revision"
}

// PlanRef links a session back to the plan set it practices.
type PlanRef struct {
	PlanID   string `json:"planId"`
	SetIndex int    `json:"setIndex"`
}

// SessionResults partitions a scored session's word ids.
type SessionResults struct {
	Correct    []string `json:"correct"`
	Incorrect  []string `json:"incorrect"`
	Skipped    []string `json:"skipped"`
	Bookmarked []string `json:"bookmarked"`
}

// Session is a bounded, ordered practice set. Words are fixed at build
// time; only bookmark flags change afterwards.
type Session struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Words     []Word          `json:"words"`
	Source    SessionSource   `json:"source"`
	Completed bool            `json:"completed"`
	Score     *int            `json:"score,omitempty"`
	Results   *SessionResults `json:"results,omitempty"`
	Plan      *PlanRef        `json:"plan,omitempty"`
}

// QuizAnswer records one word's outcome in one quiz submission.
type QuizAnswer struct {
	WordID           string `json:"wordId"`
	Word             Word   `json:"word"`
	SelectedOptionID string `json:"selectedOptionId,omitempty"`
	SelectedText     string `json:"selectedText"`
	CorrectText      string `json:"correctText"`
	Correct          bool   `json:"correct"`
	Skipped          bool   `json:"skipped"`
}

// SavedQuizResult is the latest quiz attempt for an owner/set key, kept for
// "review again". OwnerID is the plan id for plan-backed sessions and the
// session id otherwise, in which case SetIndex is -1.
type SavedQuizResult struct {
	OwnerID   string       `json:"ownerId"`
	SetIndex  int          `json:"setIndex"`
	SessionID string       `json:"sessionId"`
	Score     int          `json:"score"`
	Answers   []QuizAnswer `json:"answers"`
	SavedAt   time.Time    `json:"savedAt"`
}

// SavedResultKey returns the upsert key for a session's saved result.
func SavedResultKey(s *Session) (ownerID string, setIndex int) {
	if s.Plan != nil {
		return s.Plan.PlanID, s.Plan.SetIndex
	}
	return s.ID, -1
}

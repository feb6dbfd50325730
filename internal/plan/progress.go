package plan

import (
	"math"

	"github.com/abhisek/wordwise/internal/vocab"
)

// Progress summarizes how far through a plan the learner is.
type Progress struct {
	CompletedSets int
	TotalDays     int
	Percent       int // 0-100, rounded
	DaysLeft      int
}

// ProgressOf computes plan-level progress from the completed-set list.
func ProgressOf(p *vocab.Plan) Progress {
	done := len(p.CompletedSets)
	pr := Progress{
		CompletedSets: done,
		TotalDays:     p.TotalDays,
		DaysLeft:      max(p.TotalDays-done, 0),
	}
	if p.TotalDays > 0 {
		pr.Percent = int(math.Round(float64(done) / float64(p.TotalDays) * 100))
	}
	return pr
}

// PartitionFlashcards splits a set's words into known and unknown ids from
// flashcard log rows. The latest row per word wins; words without a row
// count as unknown.
func PartitionFlashcards(words []vocab.Word, attempts []vocab.FlashcardAttempt) (known, unknown []string) {
	latest := make(map[string]vocab.AttemptResult)
	for _, a := range attempts {
		latest[a.Word.ID] = a.Result
	}
	known = []string{}
	unknown = []string{}
	for _, w := range words {
		if latest[w.ID] == vocab.ResultCorrect {
			known = append(known, w.ID)
		} else {
			unknown = append(unknown, w.ID)
		}
	}
	return known, unknown
}

// Package quiz generates multiple-choice questions for a session and
// scores submitted attempts, applying their side effects to history,
// bookmarks, saved results and plan progress.
package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/wordwise/internal/vocab"
)

// OptionsPerQuestion is the number of choices offered for each word.
const OptionsPerQuestion = 4

// fillerTexts pad a question when the session has too few other words.
var fillerTexts = []string{
	"None of the above",
	"Not sure",
	"Something else entirely",
}

// Option is one selectable answer. The correct option's ID is the target word's ID.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question asks for the definition of Word.
type Question struct {
	Word    vocab.Word `json:"word"`
	Options []Option   `json:"options"`
}

// BuildQuestions creates one question per word with the word's own
// definition, up to three distractors drawn from the other words, and
// synthesized fillers when fewer than three distractors exist.
// A nil r uses the global source.
func BuildQuestions(words []vocab.Word, r *rand.Rand) []Question {
	questions := make([]Question, 0, len(words))
	for i, w := range words {
		opts := []Option{{ID: w.ID, Text: w.Definition}}
		used := map[string]bool{w.Definition: true}

		for _, j := range perm(r, len(words)) {
			if len(opts) == OptionsPerQuestion {
				break
			}
			other := words[j]
			if j == i || other.ID == w.ID || used[other.Definition] {
				continue
			}
			used[other.Definition] = true
			opts = append(opts, Option{ID: other.ID, Text: other.Definition})
		}

		for n := 0; len(opts) < OptionsPerQuestion && n < len(fillerTexts); n++ {
			if used[fillerTexts[n]] {
				continue
			}
			opts = append(opts, Option{ID: fmt.Sprintf("filler-%s-%d", w.ID, n+1), Text: fillerTexts[n]})
		}

		shuffled := make([]Option, len(opts))
		for k, j := range perm(r, len(opts)) {
			shuffled[k] = opts[j]
		}
		questions = append(questions, Question{Word: w, Options: shuffled})
	}
	return questions
}

func perm(r *rand.Rand, n int) []int {
	if r != nil {
		return r.Perm(n)
	}
	return rand.Perm(n)
}

// SelectRange returns words[from-1:to] for a 1-based inclusive range.
func SelectRange(words []vocab.Word, from, to int) ([]vocab.Word, error) {
	if from < 1 || to > len(words) || from > to {
		return nil, fmt.Errorf("range %d-%d of %d words: %w", from, to, len(words), vocab.ErrInvalidRange)
	}
	out := make([]vocab.Word, to-from+1)
	copy(out, words[from-1:to])
	return out, nil
}

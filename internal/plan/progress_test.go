package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wordwise/internal/vocab"
)

func TestProgressOf(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      Progress
	}{
		{"fresh", 0, 3, Progress{CompletedSets: 0, TotalDays: 3, Percent: 0, DaysLeft: 3}},
		{"one of three", 1, 3, Progress{CompletedSets: 1, TotalDays: 3, Percent: 33, DaysLeft: 2}},
		{"two of three", 2, 3, Progress{CompletedSets: 2, TotalDays: 3, Percent: 67, DaysLeft: 1}},
		{"done", 4, 4, Progress{CompletedSets: 4, TotalDays: 4, Percent: 100, DaysLeft: 0}},
		{"no days", 0, 0, Progress{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &vocab.Plan{TotalDays: tt.total, CompletedSets: make([]string, tt.completed)}
			assert.Equal(t, tt.want, ProgressOf(p))
		})
	}
}

func TestPartitionFlashcards(t *testing.T) {
	words := []vocab.Word{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	attempts := []vocab.FlashcardAttempt{
		{Word: vocab.Word{ID: "a"}, Result: vocab.ResultCorrect},
		{Word: vocab.Word{ID: "b"}, Result: vocab.ResultCorrect},
		{Word: vocab.Word{ID: "b"}, Result: vocab.ResultIncorrect}, // latest wins
		{Word: vocab.Word{ID: "c"}, Result: vocab.ResultSkipped},
		{Word: vocab.Word{ID: "x"}, Result: vocab.ResultCorrect},
	}

	known, unknown := PartitionFlashcards(words, attempts)
	assert.Equal(t, []string{"a"}, known)
	assert.Equal(t, []string{"b", "c", "d"}, unknown)

	known, unknown = PartitionFlashcards(nil, nil)
	assert.Empty(t, known)
	assert.Empty(t, unknown)
}

package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordwise/internal/vocab"
)

func words(n int) []vocab.Word {
	ws := make([]vocab.Word, n)
	for i := range ws {
		ws[i] = vocab.Word{ID: fmt.Sprintf("w%d", i), Term: fmt.Sprintf("term%d", i), Definition: fmt.Sprintf("definition %d", i)}
	}
	return ws
}

func TestBuildQuestions(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	ws := words(6)

	qs := BuildQuestions(ws, r)
	require.Len(t, qs, len(ws))
	for i, q := range qs {
		assert.Equal(t, ws[i].ID, q.Word.ID)
		require.Len(t, q.Options, OptionsPerQuestion)

		correct := 0
		texts := map[string]bool{}
		for _, o := range q.Options {
			if o.ID == q.Word.ID {
				correct++
				assert.Equal(t, q.Word.Definition, o.Text)
			}
			assert.False(t, texts[o.Text], "duplicate option text %q", o.Text)
			texts[o.Text] = true
			assert.False(t, strings.HasPrefix(o.ID, "filler-"), "no fillers needed with six words")
		}
		assert.Equal(t, 1, correct)
	}
}

func TestBuildQuestionsFillers(t *testing.T) {
	tests := []struct {
		name        string
		words       []vocab.Word
		wantFillers int
	}{
		{"single word", words(1), 3},
		{"two words", words(2), 2},
		{"duplicate definitions", []vocab.Word{
			{ID: "a", Term: "a", Definition: "same"},
			{ID: "b", Term: "b", Definition: "same"},
			{ID: "c", Term: "c", Definition: "other"},
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := BuildQuestions(tt.words, nil)
			q := qs[0]
			require.Len(t, q.Options, OptionsPerQuestion)
			fillers := 0
			for _, o := range q.Options {
				if strings.HasPrefix(o.ID, "filler-"+q.Word.ID+"-") {
					fillers++
				}
			}
			assert.Equal(t, tt.wantFillers, fillers)
		})
	}
}

func TestBuildQuestionsEmpty(t *testing.T) {
	assert.Empty(t, BuildQuestions(nil, nil))
}

func TestSelectRange(t *testing.T) {
	ws := words(10)

	tests := []struct {
		name    string
		from    int
		to      int
		want    []string
		wantErr bool
	}{
		{"first three", 1, 3, []string{"w0", "w1", "w2"}, false},
		{"single", 10, 10, []string{"w9"}, false},
		{"whole", 1, 10, vocab.WordIDs(ws), false},
		{"zero start", 0, 3, nil, true},
		{"past end", 5, 11, nil, true},
		{"inverted", 4, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectRange(ws, tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, vocab.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, vocab.WordIDs(got))
		})
	}
}

package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/ui/theme"
	"github.com/abhisek/wordwise/internal/vocab"
)

const timeLayout = "2006-01-02 15:04:05"

func printWords(words []vocab.Word) {
	lipgloss.Printf("%-4s  %-36s  %-24s  %-10s  %s\n", "#", "ID", "Term", "Last", "Definition")
	lipgloss.Println(strings.Repeat("─", 100))
	for i, w := range words {
		last := "-"
		if w.LastAttempt != nil {
			last = string(w.LastAttempt.Result)
		}
		lipgloss.Printf("%-4d  %-36s  %-24s  %-10s  %s\n", i+1, w.ID, truncate(w.Term, 24), last, truncate(w.Definition, 40))
	}
}

func printSession(s *vocab.Session) {
	lipgloss.Println(theme.Title.Render(s.Source.Label()))
	lipgloss.Printf("ID:        %s\n", s.ID)
	lipgloss.Printf("Created:   %s\n", s.CreatedAt.Local().Format(timeLayout))
	lipgloss.Printf("Words:     %d\n", len(s.Words))
	if s.Plan != nil {
		lipgloss.Printf("Plan:      %s (day %d)\n", s.Plan.PlanID, s.Plan.SetIndex+1)
	}
	if s.Completed && s.Score != nil {
		lipgloss.Printf("Score:     %d%%\n", *s.Score)
	}
	if r := s.Results; r != nil {
		lipgloss.Printf("Results:   %s / %s / %d skipped / %d bookmarked\n",
			theme.Done.Render(fmt.Sprintf("%d correct", len(r.Correct))),
			theme.Wrong.Render(fmt.Sprintf("%d incorrect", len(r.Incorrect))),
			len(r.Skipped), len(r.Bookmarked))
	}
	lipgloss.Println()
	printWords(s.Words)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

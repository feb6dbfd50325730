package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/plan"
	"github.com/abhisek/wordwise/internal/ui/theme"
	"github.com/abhisek/wordwise/internal/vocab"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     int // 0-100
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(barWidth*p.Percent/100, 0), barWidth)
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += theme.Hint.Render(fmt.Sprintf("  %d%%", p.Percent))
	}

	return result
}

// PlanCard renders a plan's header, progress bar and per-set states.
func PlanCard(p *vocab.Plan, width int) string {
	pr := plan.ProgressOf(p)

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Title))
	if !p.Active {
		b.WriteString(" " + theme.Hint.Render("(inactive)"))
	}
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(theme.Hint.Render(p.Description) + "\n")
	}
	b.WriteString(NewProgressBar("Progress", pr.Percent, true, width).View() + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d/%d sets done, %d days left, mode %s",
		pr.CompletedSets, pr.TotalDays, pr.DaysLeft, p.QuizMode)) + "\n\n")

	for i := range p.Sets {
		b.WriteString(SetLine(p, i) + "\n")
	}
	return b.String()
}

// SetLine renders one set's state, marking the current set.
func SetLine(p *vocab.Plan, i int) string {
	s := &p.Sets[i]
	marker := "  "
	if i == p.CurrentSetIndex {
		marker = "> "
	}

	var state string
	switch {
	case s.IsCompleted:
		state = theme.Done.Render("done")
	case s.IsUnlocked:
		phases := []string{}
		if s.FlashcardCompleted {
			phases = append(phases, "flashcards")
		}
		if s.QuizCompleted {
			phases = append(phases, "quiz")
		}
		state = theme.Open.Render("open")
		if len(phases) > 0 {
			state += theme.Hint.Render(" (" + strings.Join(phases, ", ") + " done)")
		}
	default:
		state = theme.Locked.Render("locked")
	}

	line := fmt.Sprintf("%sDay %d  %2d words  ", marker, i+1, len(s.Words))
	if n := len(s.UnknownWordIDs); n > 0 {
		line += theme.Wrong.Render(fmt.Sprintf("%d to focus on  ", n))
	}
	return line + state
}

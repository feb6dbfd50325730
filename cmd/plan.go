package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/plan"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/theme"
	"github.com/abhisek/wordwise/internal/vocab"
	"github.com/spf13/cobra"
)

const progressWidth = 48

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and work through learning plans",
}

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a learning plan from a chapter",
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, _ := cmd.Flags().GetString("chapter")
		title, _ := cmd.Flags().GetString("title")
		desc, _ := cmd.Flags().GetString("description")
		goal, _ := cmd.Flags().GetInt("goal")
		mode, _ := cmd.Flags().GetString("mode")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Plans.Create(cmd.Context(), plan.CreateRequest{
			Title:         title,
			Description:   desc,
			ChapterID:     chapter,
			DailyWordGoal: goal,
			QuizMode:      vocab.QuizMode(mode),
		})
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(p)
		}
		lipgloss.Printf("Created plan %s: %d words over %d days.\n\n", p.ID, p.TotalWords, p.TotalDays)
		lipgloss.Print(components.PlanCard(p, progressWidth))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plans, err := a.Plans.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list plans: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(plans)
		}
		if len(plans) == 0 {
			lipgloss.Println("No learning plans yet. Create one with `wordwise plan create`.")
			return nil
		}

		for i := range plans {
			p := &plans[i]
			title := theme.Title.Render(p.Title)
			if !p.Active {
				title += " " + theme.Hint.Render("(inactive)")
			}
			lipgloss.Printf("%s  %s\n", p.ID, title)
			pr := plan.ProgressOf(p)
			lipgloss.Println("  " + components.NewProgressBar(fmt.Sprintf("Day %d/%d", min(p.CurrentSetIndex+1, p.TotalDays), p.TotalDays),
				pr.Percent, true, progressWidth).View())
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show a plan's progress and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Plans.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(p)
		}
		lipgloss.Print(components.PlanCard(p, progressWidth))
		return nil
	},
}

var planStartCmd = &cobra.Command{
	Use:   "start <plan-id> <day>",
	Short: "Start the session for one day (set) of a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseDay(args[1])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, phase, err := a.Plans.StartSet(cmd.Context(), args[0], idx)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(map[string]any{"phase": phase, "session": s})
		}
		printSession(s)
		lipgloss.Println()
		switch phase {
		case plan.PhaseFlashcard:
			lipgloss.Println(theme.Hint.Render(fmt.Sprintf("Next: review the flashcards, then `wordwise plan flashcards %s %d --session %s --results <file>`.",
				args[0], idx+1, s.ID)))
		case plan.PhaseQuiz:
			lipgloss.Println(theme.Hint.Render(fmt.Sprintf("Next: `wordwise quiz questions %s`, then `wordwise quiz score %s --answers <file>`.",
				s.ID, s.ID)))
		}
		return nil
	},
}

// flashcardResult is one row of the --results file.
type flashcardResult struct {
	WordID      string              `json:"wordId"`
	Result      vocab.AttemptResult `json:"result"`
	TimeTakenMs int64               `json:"timeTakenMs"`
}

var planFlashcardsCmd = &cobra.Command{
	Use:   "flashcards <plan-id> <day>",
	Short: "Record the flashcard phase of a plan day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		resultsPath, _ := cmd.Flags().GetString("results")

		idx, err := parseDay(args[1])
		if err != nil {
			return err
		}
		var results []flashcardResult
		if err := readJSONFile(resultsPath, &results); err != nil {
			return err
		}
		attempts := make([]vocab.FlashcardAttempt, len(results))
		for i, r := range results {
			attempts[i] = vocab.FlashcardAttempt{
				Word:        vocab.Word{ID: r.WordID},
				Result:      r.Result,
				TimeTakenMs: r.TimeTakenMs,
			}
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Plans.CompleteFlashcards(cmd.Context(), args[0], idx, sessionID, attempts)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(p)
		}
		set := p.Sets[idx]
		lipgloss.Printf("Flashcards recorded: %d known, %d to focus on.\n\n", len(set.KnownWordIDs), len(set.UnknownWordIDs))
		lipgloss.Print(components.PlanCard(p, progressWidth))
		return nil
	},
}

var planDeactivateCmd = &cobra.Command{
	Use:   "deactivate <plan-id>",
	Short: "Mark a plan inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Plans.Deactivate(cmd.Context(), args[0]); err != nil {
			return err
		}
		lipgloss.Printf("Plan %s deactivated.\n", args[0])
		return nil
	},
}

// parseDay converts a 1-based day argument to a set index.
func parseDay(arg string) (int, error) {
	day, err := strconv.Atoi(arg)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("invalid day %q: must be a positive number", arg)
	}
	return day - 1, nil
}

func init() {
	planCreateCmd.Flags().String("chapter", "", "Chapter ID to build the plan from")
	planCreateCmd.Flags().String("title", "", "Plan title")
	planCreateCmd.Flags().String("description", "", "Plan description")
	planCreateCmd.Flags().Int("goal", 10, "Words per day")
	planCreateCmd.Flags().String("mode", string(vocab.QuizWithFlashcard),
		"Quiz mode: "+strings.Join([]string{string(vocab.QuizWithFlashcard), string(vocab.OnlyQuiz)}, " or "))
	_ = planCreateCmd.MarkFlagRequired("chapter")
	_ = planCreateCmd.MarkFlagRequired("title")

	planFlashcardsCmd.Flags().String("session", "", "Session ID returned by `plan start`")
	planFlashcardsCmd.Flags().String("results", "-", "JSON file of flashcard results, or - for stdin")
	_ = planFlashcardsCmd.MarkFlagRequired("session")

	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planStartCmd)
	planCmd.AddCommand(planFlashcardsCmd)
	planCmd.AddCommand(planDeactivateCmd)
}

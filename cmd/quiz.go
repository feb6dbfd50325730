package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/revision"
	"github.com/abhisek/wordwise/internal/ui/theme"
	"github.com/abhisek/wordwise/internal/vocab"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and score multiple-choice quizzes",
}

var quizQuestionsCmd = &cobra.Command{
	Use:   "questions <session-id>",
	Short: "Print multiple-choice questions for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Builder.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		questions := quiz.BuildQuestions(s.Words, nil)
		if wantJSON(cmd) {
			return printJSON(questions)
		}
		printQuestions(questions)
		return nil
	},
}

var quizRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Start an ad-hoc quiz over a range of chapter words",
	RunE: func(cmd *cobra.Command, args []string) error {
		chapterID, _ := cmd.Flags().GetString("chapter")
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		ch, err := a.Records.Chapter(ctx, chapterID)
		if err != nil {
			return fmt.Errorf("load chapter: %w", err)
		}
		if ch == nil {
			return fmt.Errorf("chapter %s: %w", chapterID, vocab.ErrChapterNotFound)
		}
		words, err := quiz.SelectRange(ch.Words, from, to)
		if err != nil {
			return err
		}
		s, err := a.Builder.Build(ctx, words, vocab.SourceSmartRevision, revision.BuildOptions{
			Cap:       len(words),
			KeepOrder: true,
		})
		if err != nil {
			return err
		}

		questions := quiz.BuildQuestions(s.Words, nil)
		if wantJSON(cmd) {
			return printJSON(map[string]any{"sessionId": s.ID, "questions": questions})
		}
		lipgloss.Printf("Session %s\n\n", s.ID)
		printQuestions(questions)
		return nil
	},
}

var quizScoreCmd = &cobra.Command{
	Use:   "score <session-id>",
	Short: "Score a quiz submission",
	Long: `Score a quiz submission. The answers file is a JSON array of
{"wordId": "...", "selected": {"id": "...", "text": "..."}, "bookmarked": false, "timeTakenMs": 0}.
Omit "selected" for skipped words.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersPath, _ := cmd.Flags().GetString("answers")

		var raw []quiz.RawResult
		if err := readJSONFile(answersPath, &raw); err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Scorer.Score(cmd.Context(), args[0], raw)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(out)
		}

		lipgloss.Println(theme.Title.Render(fmt.Sprintf("Score: %d%%", out.Score)))
		lipgloss.Println()
		for _, ans := range out.Answers {
			var mark string
			switch {
			case ans.Skipped:
				mark = theme.Hint.Render("skipped")
			case ans.Correct:
				mark = theme.Done.Render("correct")
			default:
				mark = theme.Wrong.Render("wrong") + theme.Hint.Render(" ("+truncate(ans.SelectedText, 30)+")")
			}
			lipgloss.Printf("  %-24s  %-40s  %s\n", truncate(ans.Word.Term, 24), truncate(ans.CorrectText, 40), mark)
		}
		if n := len(out.Results.Incorrect) + len(out.Results.Skipped) + len(out.Results.Bookmarked); n > 0 {
			lipgloss.Println()
			lipgloss.Println(theme.Hint.Render(fmt.Sprintf("Review them again with `wordwise challenging %s`.", args[0])))
		}
		return nil
	},
}

var quizResultCmd = &cobra.Command{
	Use:   "result <session-id>",
	Short: "Show the last saved result for a session or plan day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		s, err := a.Builder.Get(ctx, args[0])
		if err != nil {
			return err
		}
		res, err := a.Scorer.LatestResult(ctx, s)
		if err != nil {
			return fmt.Errorf("load saved result: %w", err)
		}
		if res == nil {
			lipgloss.Println("No saved result yet.")
			return nil
		}
		if wantJSON(cmd) {
			return printJSON(res)
		}
		lipgloss.Printf("Score %d%% saved %s from session %s\n",
			res.Score, res.SavedAt.Local().Format(timeLayout), res.SessionID)
		return nil
	},
}

func printQuestions(questions []quiz.Question) {
	for i, q := range questions {
		lipgloss.Printf("%d. %s  %s\n", i+1, theme.Title.Render(q.Word.Term), theme.Hint.Render(q.Word.ID))
		for j, opt := range q.Options {
			lipgloss.Printf("   %c) %s  %s\n", 'a'+j, opt.Text, theme.Hint.Render(opt.ID))
		}
		lipgloss.Println(strings.Repeat("─", 60))
	}
}

func init() {
	quizRangeCmd.Flags().String("chapter", "", "Chapter ID")
	quizRangeCmd.Flags().Int("from", 1, "First word (1-based)")
	quizRangeCmd.Flags().Int("to", 10, "Last word (inclusive)")
	_ = quizRangeCmd.MarkFlagRequired("chapter")

	quizScoreCmd.Flags().String("answers", "-", "JSON file of answers, or - for stdin")

	quizCmd.AddCommand(quizQuestionsCmd)
	quizCmd.AddCommand(quizRangeCmd)
	quizCmd.AddCommand(quizScoreCmd)
	quizCmd.AddCommand(quizResultCmd)
}

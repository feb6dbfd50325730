package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect revision sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sessions, err := a.Builder.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if source != "" {
			kept := sessions[:0]
			for _, s := range sessions {
				if string(s.Source) == source {
					kept = append(kept, s)
				}
			}
			sessions = kept
		}
		// Newest last in storage; show newest first.
		for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
			sessions[i], sessions[j] = sessions[j], sessions[i]
		}
		if limit > 0 && len(sessions) > limit {
			sessions = sessions[:limit]
		}

		if wantJSON(cmd) {
			return printJSON(sessions)
		}
		if len(sessions) == 0 {
			lipgloss.Println("No sessions found.")
			return nil
		}

		lipgloss.Printf("%-36s  %-19s  %-18s  %5s  %s\n", "ID", "Created", "Source", "Words", "Score")
		lipgloss.Println(strings.Repeat("─", 90))
		for _, s := range sessions {
			score := "-"
			if s.Score != nil {
				score = fmt.Sprintf("%d%%", *s.Score)
			}
			lipgloss.Printf("%-36s  %-19s  %-18s  %5d  %s\n",
				s.ID,
				s.CreatedAt.Local().Format(timeLayout),
				s.Source,
				len(s.Words),
				score,
			)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session and its results",
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
		if wantJSON(cmd) {
			return printJSON(s)
		}
		printSession(s)
		return nil
	},
}

func init() {
	sessionListCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
	sessionListCmd.Flags().String("source", "", "Filter by source (daily-revision, challenging-words, learning-plan, smart-revision)")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
}

package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/vocab"
	"github.com/spf13/cobra"
)

var challengingCmd = &cobra.Command{
	Use:   "challenging <session-id>",
	Short: "Build a follow-up session from a scored session's missed and bookmarked words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Regenerator.Regenerate(cmd.Context(), args[0])
		switch {
		case errors.Is(err, vocab.ErrNothingToReview):
			lipgloss.Println("Every word was answered correctly. Nothing to review.")
			return nil
		case errors.Is(err, vocab.ErrNotScored):
			return fmt.Errorf("session %s has not been scored yet", args[0])
		case err != nil:
			return err
		}
		if wantJSON(cmd) {
			return printJSON(s)
		}
		printSession(s)
		return nil
	},
}

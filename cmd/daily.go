package cmd

import (
	"errors"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/vocab"
	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Start (or resume) today's daily revision session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.DailySession(cmd.Context())
		if errors.Is(err, vocab.ErrEmptyPool) {
			lipgloss.Println("Nothing to revise today. Practice some words first.")
			return nil
		}
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

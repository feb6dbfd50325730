package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

var weakCmd = &cobra.Command{
	Use:   "weak",
	Short: "List the words that need revision",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		words, err := a.Collector.Collect(cmd.Context())
		if err != nil {
			return fmt.Errorf("collect weak words: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(words)
		}
		if len(words) == 0 {
			lipgloss.Println("No words need revision yet.")
			return nil
		}
		printWords(words)
		return nil
	},
}

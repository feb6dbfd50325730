package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage bookmarked words",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked words",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		bms, err := a.Records.Bookmarks(cmd.Context())
		if err != nil {
			return fmt.Errorf("list bookmarks: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(bms)
		}
		if len(bms) == 0 {
			lipgloss.Println("No bookmarks yet.")
			return nil
		}

		lipgloss.Printf("%-36s  %-20s  %-20s  %s\n", "Word ID", "Group", "Term", "Translation")
		lipgloss.Println(strings.Repeat("─", 100))
		for _, b := range bms {
			lipgloss.Printf("%-36s  %-20s  %-20s  %s\n", b.WordID, truncate(b.Chapter, 20), truncate(b.Term, 20), truncate(b.Translation, 40))
		}
		return nil
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <word-id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.Records.RemoveBookmark(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("remove bookmark: %w", err)
		}
		if !removed {
			lipgloss.Printf("No bookmark for %s.\n", args[0])
			return nil
		}
		lipgloss.Printf("Removed bookmark %s.\n", args[0])
		return nil
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksListCmd)
	bookmarksCmd.AddCommand(bookmarksRemoveCmd)
}

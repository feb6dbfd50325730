package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/wordwise/internal/importer"
	"github.com/spf13/cobra"
)

var chapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Manage chapter word pools",
}

var chapterImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import words into a chapter from an .xlsx or .csv file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := importer.DefaultConfig()
		cfg.FilePath = args[0]
		cfg.ChapterID, _ = cmd.Flags().GetString("chapter")
		cfg.SheetName, _ = cmd.Flags().GetString("sheet")
		cfg.StartRow, _ = cmd.Flags().GetInt("start-row")
		cfg.TermColumn, _ = cmd.Flags().GetString("term-col")
		cfg.DefinitionColumn, _ = cmd.Flags().GetString("definition-col")
		cfg.PhoneticColumn, _ = cmd.Flags().GetString("phonetic-col")
		cfg.ExampleColumn, _ = cmd.Flags().GetString("example-col")
		name, _ := cmd.Flags().GetString("name")

		res, err := importer.Import(cfg)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		existing, err := a.Records.Chapter(ctx, cfg.ChapterID)
		if err != nil {
			return fmt.Errorf("load chapter: %w", err)
		}
		ch := importer.Merge(existing, cfg.ChapterID, name, res.Words)
		if err := a.Records.SaveChapter(ctx, ch); err != nil {
			return fmt.Errorf("save chapter: %w", err)
		}

		lipgloss.Printf("Imported %d words into chapter %s (%d total, %d skipped).\n",
			len(res.Words), ch.ID, len(ch.Words), res.Skipped)
		for _, e := range res.Errors {
			lipgloss.Println("  " + e)
		}
		return nil
	},
}

var chapterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chapters",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		chapters, err := a.Records.Chapters(cmd.Context())
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}
		if wantJSON(cmd) {
			return printJSON(chapters)
		}
		if len(chapters) == 0 {
			lipgloss.Println("No chapters yet. Import one with `wordwise chapter import`.")
			return nil
		}

		lipgloss.Printf("%-24s  %-32s  %6s  %6s\n", "ID", "Name", "Words", "Known")
		lipgloss.Println(strings.Repeat("─", 74))
		for _, ch := range chapters {
			known := 0
			for _, w := range ch.Words {
				if w.IsKnown {
					known++
				}
			}
			lipgloss.Printf("%-24s  %-32s  %6d  %6d\n", truncate(ch.ID, 24), truncate(ch.Name, 32), len(ch.Words), known)
		}
		return nil
	},
}

func init() {
	def := importer.DefaultConfig()
	chapterImportCmd.Flags().String("chapter", "", "Chapter ID to import into")
	chapterImportCmd.Flags().String("name", "", "Chapter display name")
	chapterImportCmd.Flags().String("sheet", "", "Excel sheet name (default: first sheet)")
	chapterImportCmd.Flags().Int("start-row", def.StartRow, "First data row (1-based)")
	chapterImportCmd.Flags().String("term-col", def.TermColumn, "Column holding the term")
	chapterImportCmd.Flags().String("definition-col", def.DefinitionColumn, "Column holding the definition")
	chapterImportCmd.Flags().String("phonetic-col", def.PhoneticColumn, "Column holding the phonetic spelling (empty to skip)")
	chapterImportCmd.Flags().String("example-col", def.ExampleColumn, "Column holding an example sentence (empty to skip)")
	_ = chapterImportCmd.MarkFlagRequired("chapter")

	chapterCmd.AddCommand(chapterImportCmd)
	chapterCmd.AddCommand(chapterListCmd)
}

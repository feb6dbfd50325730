// Package importer reads chapter word pools from spreadsheets.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/wordwise/internal/vocab"
)

// Config defines the import layout.
type Config struct {
	FilePath         string
	ChapterID        string
	SheetName        string // Excel only; empty = first sheet
	StartRow         int    // 1-based first data row
	TermColumn       string
	DefinitionColumn string
	PhoneticColumn   string // optional
	ExampleColumn    string // optional
}

// DefaultConfig returns the default column layout: term, definition,
// phonetic, example in columns A-D with a header row.
func DefaultConfig() Config {
	return Config{
		StartRow:         2,
		TermColumn:       "A",
		DefinitionColumn: "B",
		PhoneticColumn:   "C",
		ExampleColumn:    "D",
	}
}

// Result summarizes an import.
type Result struct {
	Words   []vocab.Word
	Skipped int
	Errors  []string
}

// Import reads words from an .xlsx or .csv file.
func Import(cfg Config) (*Result, error) {
	if cfg.ChapterID == "" {
		return nil, fmt.Errorf("chapter id is required")
	}
	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(cfg.ChapterID, rows, max(cfg.StartRow, 1), cols), nil
}

type columns struct {
	term, definition, phonetic, example int // 0-based, -1 = absent
}

func resolveColumns(cfg Config) (columns, error) {
	idx := func(name string, required bool) (int, error) {
		if name == "" {
			if required {
				return -1, fmt.Errorf("column is required")
			}
			return -1, nil
		}
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return -1, fmt.Errorf("column %q: %w", name, err)
		}
		return n - 1, nil
	}
	var c columns
	var err error
	if c.term, err = idx(cfg.TermColumn, true); err != nil {
		return c, fmt.Errorf("term %w", err)
	}
	if c.definition, err = idx(cfg.DefinitionColumn, true); err != nil {
		return c, fmt.Errorf("definition %w", err)
	}
	if c.phonetic, err = idx(cfg.PhoneticColumn, false); err != nil {
		return c, err
	}
	if c.example, err = idx(cfg.ExampleColumn, false); err != nil {
		return c, err
	}
	return c, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRows(chapterID string, rows [][]string, startRow int, cols columns) *Result {
	res := &Result{}
	seen := make(map[string]bool)
	for i, row := range rows {
		if i < startRow-1 {
			continue
		}
		term := cell(row, cols.term)
		def := cell(row, cols.definition)
		if term == "" && def == "" {
			continue
		}
		if term == "" || def == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: term and definition are required", i+1))
			continue
		}
		id := WordID(chapterID, term)
		if seen[id] {
			res.Skipped++
			continue
		}
		seen[id] = true
		res.Words = append(res.Words, vocab.Word{
			ID:         id,
			Term:       term,
			Definition: def,
			Phonetic:   cell(row, cols.phonetic),
			Example:    cell(row, cols.example),
		})
	}
	return res
}

// WordID derives a stable id from the chapter and the case-folded term, so
// re-importing a sheet keeps plan and history references intact.
func WordID(chapterID, term string) string {
	name := chapterID + "\x00" + strings.ToLower(strings.TrimSpace(term))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Merge folds imported words into an existing chapter. Known and bookmark
// flags of words already present survive; new words are appended.
func Merge(existing *vocab.Chapter, chapterID, name string, words []vocab.Word) *vocab.Chapter {
	out := &vocab.Chapter{ID: chapterID, Name: name}
	if existing != nil {
		out.Words = append(out.Words, existing.Words...)
		if name == "" {
			out.Name = existing.Name
		}
	}
	pos := make(map[string]int, len(out.Words))
	for i, w := range out.Words {
		pos[w.ID] = i
	}
	for _, w := range words {
		if out.Name != "" && w.Group == "" {
			w.Group = out.Name
		}
		if i, ok := pos[w.ID]; ok {
			prev := out.Words[i]
			w.IsKnown = prev.IsKnown
			w.IsBookmarked = prev.IsBookmarked
			out.Words[i] = w
			continue
		}
		pos[w.ID] = len(out.Words)
		out.Words = append(out.Words, w)
	}
	return out
}

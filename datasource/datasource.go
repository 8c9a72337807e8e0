// Package datasource reads tabular data for table slides from spreadsheet
// and CSV files, and writes tables back out as workbooks. The first
// non-empty row is the header.
package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"slidecomposer/deck"
)

// ErrUnsupportedSource reports a file type that cannot be read as a table.
var ErrUnsupportedSource = errors.New("unsupported data source")

// Table is a header row plus data rows, every row as wide as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options narrow what Load reads.
type Options struct {
	Sheet   string // Worksheet name; the first sheet when empty
	MaxRows int    // Data row limit; 0 means all
}

// Load reads path by extension: .xlsx/.xlsm through excelize, .csv through
// encoding/csv.
func Load(path string, opts Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, opts.Sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
	if err != nil {
		return nil, err
	}
	return newTable(rows, opts.MaxRows)
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %v", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in excel file")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %v", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv %s: %v", path, err)
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// newTable drops blank rows and squares the rest to the header width:
// spreadsheets omit trailing empty cells, so short rows are padded and long
// ones cut.
func newTable(rows [][]string, limit int) (*Table, error) {
	var kept [][]string
	for _, row := range rows {
		if !blank(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no valid data found")
	}
	t := &Table{Header: trimAll(kept[0])}
	for _, row := range kept[1:] {
		if limit > 0 && len(t.Rows) == limit {
			break
		}
		out := make([]string, len(t.Header))
		copy(out, trimAll(row))
		t.Rows = append(t.Rows, out)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// Sheet is one named worksheet of a workbook.
type Sheet struct {
	Name  string
	Table *Table
}

// WriteExcel writes t to an .xlsx file with the header on row 1.
func WriteExcel(path string, t *Table) error {
	return WriteWorkbook(path, []Sheet{{Name: "Sheet1", Table: t}})
}

// WriteWorkbook writes each sheet to its own worksheet, in order. Sheet names
// must be unique and at most 31 characters, as Excel requires.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %v", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %v", s.Name, err)
		}
		if err := writeRows(f, s.Name, s.Table); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save excel file: %v", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, t *Table) error {
	for r, row := range append([][]string{t.Header}, t.Rows...) {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell %s: %v", cell, err)
			}
		}
	}
	return nil
}

// DeckTables collects the tables of a deck as worksheets, the first table
// row as the header. A slide with one table gives "Slide N"; several give
// "Slide N-1", "Slide N-2" and so on.
func DeckTables(d *deck.Deck) []Sheet {
	var sheets []Sheet
	for i, s := range d.Slides {
		tables := s.Tables()
		for k, t := range tables {
			name := fmt.Sprintf("Slide %d", i+1)
			if len(tables) > 1 {
				name = fmt.Sprintf("Slide %d-%d", i+1, k+1)
			}
			sheets = append(sheets, Sheet{Name: name, Table: fromDeck(t)})
		}
	}
	return sheets
}

func fromDeck(t *deck.Table) *Table {
	rows := make([][]string, t.Rows())
	for r := range rows {
		rows[r] = make([]string, t.Cols())
		for c := range rows[r] {
			if c < len(t.Cells[r]) && t.Cells[r][c] != nil {
				rows[r][c] = t.Cells[r][c].Text()
			}
		}
	}
	if len(rows) == 0 {
		return &Table{}
	}
	return &Table{Header: rows[0], Rows: rows[1:]}
}

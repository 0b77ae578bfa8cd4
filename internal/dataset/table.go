package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options controls how a dataset file is read.
type Options struct {
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// MaxRows limits data rows kept; 0 means unlimited.
	MaxRows int
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
	// Aliases adds header spellings on top of DefaultAliases.
	Aliases map[Column][]string
}

// Table is an in-memory flat dataset with canonical column resolution.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index   map[Column]int
	aliases map[string]Column
}

// NewTable builds a table from a header and rows, resolving header cells to canonical columns.
func NewTable(name string, header []string, rows [][]string, aliases map[Column][]string) *Table {
	idx := aliasIndex(aliases)
	t := &Table{Name: name, Header: header, index: make(map[Column]int), aliases: idx}
	for i, h := range header {
		c := resolveHeader(h, idx)
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	ncol := len(header)
	for _, rec := range rows {
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

// Load reads a CSV, TSV or XLSX file based on its extension.
func Load(path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(path, opt)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		return LoadCSV(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// LoadCSV reads a delimited text file into a Table.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	name := filepath.Base(path)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(name, nil, nil, opt.Aliases), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	var rows [][]string
	line := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++
		if len(rows) >= maxRows {
			continue
		}
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return NewTable(name, header, rows, opt.Aliases), nil
}

// LoadXLSX reads the selected sheet of a workbook into a Table.
func LoadXLSX(path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open xlsx: no sheets in %s", filepath.Base(path))
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	name := filepath.Base(path)
	if len(rows) == 0 {
		return NewTable(name, nil, nil, opt.Aliases), nil
	}
	var kept [][]string
	for _, r := range rows[1:] {
		if opt.MaxRows > 0 && len(kept) >= opt.MaxRows {
			break
		}
		if !isBlank(r) {
			kept = append(kept, r)
		}
	}
	return NewTable(name, rows[0], kept, opt.Aliases), nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether the table provides the column.
func (t *Table) Has(c Column) bool {
	_, ok := t.lookup(c)
	return ok
}

// Index returns the position of a column, or a MissingColumnError.
func (t *Table) Index(c Column) (int, error) {
	if i, ok := t.lookup(c); ok {
		return i, nil
	}
	return -1, &MissingColumnError{Column: string(c), File: t.Name, Available: t.Header}
}

// Require checks that every listed column is present.
func (t *Table) Require(cols ...Column) error {
	for _, c := range cols {
		if _, err := t.Index(c); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the trimmed cell of row at column index idx.
func (t *Table) Value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Distinct returns the non-empty values of a column in first-seen order.
func (t *Table) Distinct(c Column) ([]string, error) {
	idx, err := t.Index(c)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, row := range t.Rows {
		v := t.Value(row, idx)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func (t *Table) lookup(c Column) (int, bool) {
	if t.index == nil {
		return -1, false
	}
	if i, ok := t.index[c]; ok {
		return i, true
	}
	key := normKey(string(c))
	if canon, ok := t.aliases[key]; ok {
		if i, ok := t.index[canon]; ok {
			return i, true
		}
	}
	i, ok := t.index[Column(key)]
	return i, ok
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

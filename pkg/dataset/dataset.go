// Package dataset reads delimited review exports, runs one text column
// through a textnorm.Pipeline and writes the table back as UTF-8.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hazyhaar/textnorm/pkg/textnorm"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrColumnNotFound is returned when the requested text column does not exist.
var ErrColumnNotFound = errors.New("column not found")

// Format describes the layout of a delimited file.
type Format struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	HasHeader bool   `yaml:"has_header"`
}

// Table holds the header (nil when the file has none) and the raw rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read parses a delimited stream. Non-UTF-8 encodings are transcoded. A
// leading byte order mark (Excel, "utf-8-sig" exports) wins over the
// declared encoding and is stripped.
func Read(r io.Reader, f Format) (*Table, error) {
	var fallback transform.Transformer = transform.Nop
	if enc := f.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		fallback = e.NewDecoder()
	}
	r = transform.NewReader(r, xunicode.BOMOverride(fallback))

	cr := csv.NewReader(r)
	if f.Delimiter != "" {
		cr.Comma = []rune(f.Delimiter)[0]
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	t := &Table{}
	if f.HasHeader {
		header, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
		t.Header = header
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ColumnIndex resolves a column by header name, or by zero-based position
// when the table has no header.
func (t *Table) ColumnIndex(name string) (int, error) {
	if t.Header == nil {
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 {
			return 0, fmt.Errorf("%w: %q (no header, use a column number)", ErrColumnNotFound, name)
		}
		return idx, nil
	}
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q not in header %v", ErrColumnNotFound, name, t.Header)
}

// Column returns the values of column idx; short rows yield "".
func (t *Table) Column(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values
}

// Normalize runs column through p. The result goes into outColumn, which is
// appended unless it names an existing column (then it is overwritten).
func (t *Table) Normalize(ctx context.Context, p *textnorm.Pipeline, column, outColumn string, workers int) error {
	src, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}
	normalized, err := p.NormalizeAll(ctx, t.Column(src), workers)
	if err != nil {
		return fmt.Errorf("normalize column %q: %w", column, err)
	}

	dst := -1
	if outColumn != "" {
		if i, err := t.ColumnIndex(outColumn); err == nil {
			dst = i
		}
	}
	if dst < 0 {
		dst = t.width()
		if t.Header != nil {
			name := outColumn
			if name == "" {
				name = column + "_normalized"
			}
			t.Header = append(t.Header, name)
		}
	}

	for i, row := range t.Rows {
		for len(row) <= dst {
			row = append(row, "")
		}
		row[dst] = normalized[i]
		t.Rows[i] = row
	}
	return nil
}

// width is the number of columns: the header length, or the widest row.
func (t *Table) width() int {
	if t.Header != nil {
		return len(t.Header)
	}
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Write emits the table as UTF-8 CSV.
func Write(w io.Writer, t *Table, delimiter string) error {
	cw := csv.NewWriter(w)
	if delimiter != "" {
		cw.Comma = []rune(delimiter)[0]
	}
	if t.Header != nil {
		if err := cw.Write(t.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}

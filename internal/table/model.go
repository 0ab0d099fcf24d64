package table

import (
	"fmt"

	"github.com/dshills/marksmith/internal/markdown"
)

// HeaderRow is the row index SetCell uses for the header.
const HeaderRow = -1

// Model is the editable content of one table.
//
// Rows may be ragged; they are padded or truncated to the header width when
// the model is serialized. Structural edits never reduce the table below
// one body row and one column, and indexes out of range are ignored. Each
// edit reports whether it changed the model.
type Model struct {
	Header []string
	Align  []markdown.Align
	Rows   [][]string
}

// NewModel creates a model with the given cells.
func NewModel(header []string, rows [][]string) *Model {
	return &Model{Header: header, Rows: rows}
}

// FromSegment creates a model holding a copy of the cells of seg.
func FromSegment(seg markdown.TableSegment) *Model {
	m := &Model{
		Header: seg.Header,
		Align:  seg.Align,
		Rows:   seg.Rows,
	}
	return m.Clone()
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := &Model{
		Header: append([]string{}, m.Header...),
		Align:  append([]markdown.Align{}, m.Align...),
		Rows:   make([][]string, len(m.Rows)),
	}
	for i, row := range m.Rows {
		c.Rows[i] = append([]string{}, row...)
	}
	return c
}

// Columns returns the number of header columns.
func (m *Model) Columns() int {
	return len(m.Header)
}

// Markdown serializes the model. With preserveAlign the delimiter row
// keeps the column alignments.
func (m *Model) Markdown(preserveAlign bool) string {
	if preserveAlign {
		return SerializeAligned(m.Header, m.Align, m.Rows)
	}
	return Serialize(m.Header, m.Rows)
}

// String returns a short description of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model(%dx%d)", len(m.Header), len(m.Rows))
}

// InsertRowAfter inserts an empty row of header width after body row k.
// k == -1 inserts before the first body row.
func (m *Model) InsertRowAfter(k int) bool {
	if k < -1 || k >= len(m.Rows) {
		return false
	}
	row := make([]string, len(m.Header))
	m.Rows = insertAt(m.Rows, k+1, row)
	return true
}

// InsertColumnAfter inserts an empty column after column k in the header
// and in every row. k == -1 inserts before the first column. Rows shorter
// than k+1 receive the cell at their end.
func (m *Model) InsertColumnAfter(k int) bool {
	if k < -1 || k >= len(m.Header) {
		return false
	}
	m.Header = insertAt(m.Header, k+1, "")
	if len(m.Align) > 0 {
		m.Align = insertAt(m.Align, min(k+1, len(m.Align)), markdown.AlignNone)
	}
	for i, row := range m.Rows {
		m.Rows[i] = insertAt(row, min(k+1, len(row)), "")
	}
	return true
}

// DeleteRow removes body row i unless it is the only one.
func (m *Model) DeleteRow(i int) bool {
	if i < 0 || i >= len(m.Rows) || len(m.Rows) <= 1 {
		return false
	}
	m.Rows = append(m.Rows[:i], m.Rows[i+1:]...)
	return true
}

// DeleteColumn removes column i from the header and every row unless it
// is the only one.
func (m *Model) DeleteColumn(i int) bool {
	if i < 0 || i >= len(m.Header) || len(m.Header) <= 1 {
		return false
	}
	m.Header = removeAt(m.Header, i)
	if i < len(m.Align) {
		m.Align = removeAt(m.Align, i)
	}
	for r, row := range m.Rows {
		if i < len(row) {
			m.Rows[r] = removeAt(row, i)
		}
	}
	return true
}

// SetCell sets the text of a cell. row is a body row index or HeaderRow.
// A short row is padded up to col.
func (m *Model) SetCell(row, col int, value string) bool {
	if col < 0 || col >= len(m.Header) {
		return false
	}
	if row == HeaderRow {
		if m.Header[col] == value {
			return false
		}
		m.Header[col] = value
		return true
	}
	if row < 0 || row >= len(m.Rows) {
		return false
	}
	r := m.Rows[row]
	if col < len(r) && r[col] == value {
		return false
	}
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	m.Rows[row] = r
	return true
}

// Cell returns the text of a cell; missing cells of ragged rows are empty.
func (m *Model) Cell(row, col int) string {
	if row == HeaderRow {
		if col >= 0 && col < len(m.Header) {
			return m.Header[col]
		}
		return ""
	}
	if row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Rows[row]) {
		return ""
	}
	return m.Rows[row][col]
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	return append(s[:i], s[i+1:]...)
}

// InsertRow returns a MutateFunc calling InsertRowAfter(k).
func InsertRow(k int) MutateFunc {
	return func(m *Model) bool { return m.InsertRowAfter(k) }
}

// InsertColumn returns a MutateFunc calling InsertColumnAfter(k).
func InsertColumn(k int) MutateFunc {
	return func(m *Model) bool { return m.InsertColumnAfter(k) }
}

// RemoveRow returns a MutateFunc calling DeleteRow(i).
func RemoveRow(i int) MutateFunc {
	return func(m *Model) bool { return m.DeleteRow(i) }
}

// RemoveColumn returns a MutateFunc calling DeleteColumn(i).
func RemoveColumn(i int) MutateFunc {
	return func(m *Model) bool { return m.DeleteColumn(i) }
}

// Set returns a MutateFunc calling SetCell(row, col, value).
func Set(row, col int, value string) MutateFunc {
	return func(m *Model) bool { return m.SetCell(row, col, value) }
}

package keyboard

import (
	"fmt"
	"unicode"
)

// DefaultRows is the QWERTY letter block.
func DefaultRows() []string {
	return []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}
}

// Layout is an immutable set of key rows. Every rune in a layout is lower
// case and appears exactly once.
type Layout struct {
	rows [][]rune
}

// NewLayout validates and normalizes rows into a Layout.
func NewLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}

	seen := make(map[rune]int)
	out := make([][]rune, 0, len(rows))
	for i, row := range rows {
		runes := []rune(row)
		if len(runes) == 0 {
			return nil, fmt.Errorf("row %d is empty", i)
		}
		norm := make([]rune, 0, len(runes))
		for _, r := range runes {
			if !unicode.IsPrint(r) || unicode.IsSpace(r) {
				return nil, fmt.Errorf("row %d: %q is not a printable key", i, r)
			}
			r = unicode.ToLower(r)
			if prev, ok := seen[r]; ok {
				return nil, fmt.Errorf("row %d: key %q already defined in row %d", i, r, prev)
			}
			seen[r] = i
			norm = append(norm, r)
		}
		out = append(out, norm)
	}
	return &Layout{rows: out}, nil
}

// MustLayout is NewLayout for static rows known to be valid.
func MustLayout(rows []string) *Layout {
	l, err := NewLayout(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Rows returns a copy of the layout rows.
func (l *Layout) Rows() [][]rune {
	out := make([][]rune, len(l.rows))
	for i, row := range l.rows {
		out[i] = append([]rune(nil), row...)
	}
	return out
}

// NumRows returns the number of rows.
func (l *Layout) NumRows() int {
	return len(l.rows)
}

// NumCols returns the length of the longest row.
func (l *Layout) NumCols() int {
	cols := 0
	for _, row := range l.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Len returns the total number of keys.
func (l *Layout) Len() int {
	n := 0
	for _, row := range l.rows {
		n += len(row)
	}
	return n
}

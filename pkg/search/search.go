// Package search implements forward substring search over a built merge
// model's displayed text (spec §4.9). Results are reported in
// post-tab-expansion column coordinates, matching pkg/lineprep's Width
// convention.
package search

import (
	"bytes"

	"github.com/odvcencio/coremerge/pkg/mergemodel"
)

// Result is a forward-search hit: Row is the index into the flattened
// sequence of displayed edit lines (one entry per editable
// MergeEditLine, conflict/removed placeholders excluded), Col is the
// post-tab-expansion column of the match's first byte.
type Result struct {
	Row int
	Col int
}

// row holds the text of one searchable displayed line.
type row struct {
	text []byte
}

// flatten collects one entry per searchable edit line across every
// MergeLine in document order. Conflict and Removed placeholders carry
// no text and are skipped, matching what a presenter would render as a
// blank/marker row rather than searchable content.
func flatten(m *mergemodel.Model) []row {
	var rows []row
	for _, ml := range m.Lines {
		for _, el := range ml.EditLines {
			if el.Kind == mergemodel.EditConflict || el.Kind == mergemodel.EditRemoved {
				continue
			}
			rows = append(rows, row{text: m.LineBytes(el)})
		}
	}
	return rows
}

// Search looks for pattern starting at (fromRow, fromCol) and scanning
// forward, wrapping to the top only if wrap is true. tabSize expands
// tabs for column reporting; caseSensitive false folds both sides to
// lower case before comparing.
func Search(m *mergemodel.Model, pattern string, caseSensitive bool, fromRow, fromCol, tabSize int, wrap bool) (Result, bool) {
	if pattern == "" {
		return Result{}, false
	}
	rows := flatten(m)
	if len(rows) == 0 {
		return Result{}, false
	}

	needle := []byte(pattern)
	if !caseSensitive {
		needle = bytes.ToLower(needle)
	}

	if r, ok := scan(rows, needle, caseSensitive, fromRow, fromCol, len(rows), tabSize); ok {
		return r, true
	}
	if wrap {
		if r, ok := scan(rows, needle, caseSensitive, 0, 0, fromRow+1, tabSize); ok {
			return r, true
		}
	}
	return Result{}, false
}

func scan(rows []row, needle []byte, caseSensitive bool, fromRow, fromCol, limitRow, tabSize int) (Result, bool) {
	for r := fromRow; r < limitRow && r < len(rows); r++ {
		text := rows[r].text
		hay := text
		if !caseSensitive {
			hay = bytes.ToLower(text)
		}
		startByte := 0
		if r == fromRow {
			startByte = byteOffsetForColumn(text, fromCol, tabSize)
		}
		if startByte > len(hay) {
			continue
		}
		idx := bytes.Index(hay[startByte:], needle)
		if idx < 0 {
			continue
		}
		byteIdx := startByte + idx
		return Result{Row: r, Col: columnForByteOffset(text, byteIdx, tabSize)}, true
	}
	return Result{}, false
}

// columnForByteOffset expands tabs up to byteIdx to compute the display
// column, matching lineprep.LineData.Width's convention.
func columnForByteOffset(text []byte, byteIdx, tabSize int) int {
	if tabSize <= 0 {
		tabSize = 1
	}
	col := 0
	for i := 0; i < byteIdx && i < len(text); i++ {
		if text[i] == '\t' {
			col = ((col / tabSize) + 1) * tabSize
		} else {
			col++
		}
	}
	return col
}

// byteOffsetForColumn is columnForByteOffset's inverse: the first byte
// offset whose expanded column is >= col.
func byteOffsetForColumn(text []byte, col, tabSize int) int {
	if tabSize <= 0 {
		tabSize = 1
	}
	cur := 0
	for i, b := range text {
		if cur >= col {
			return i
		}
		if b == '\t' {
			cur = ((cur / tabSize) + 1) * tabSize
		} else {
			cur++
		}
	}
	return len(text)
}

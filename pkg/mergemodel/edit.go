package mergemodel

// Choose toggles selector's membership in ml's active-source set (spec
// §4.6, §8 P9): a second call with the same selector is a true inverse
// of the first, even when the intervening state collapsed to a Removed
// or Conflict placeholder, because activeSources tracks the logical
// selection independently of what ended up visible.
func (m *Model) Choose(ml *MergeLine, selector Src) {
	ml.activeSources ^= bitFor(selector)
	buildEditLines(m, ml)
	ml.Modified = true
}

// ChooseGlobal applies Choose across every MergeLine matching the given
// filters (spec §4.6 chooseGlobal): conflictsOnly restricts to currently
// unresolved ranges, whitespaceOnly further restricts to ranges the
// whitespace-relaxation pass flagged.
func (m *Model) ChooseGlobal(selector Src, conflictsOnly, whitespaceOnly bool) {
	for _, ml := range m.Lines {
		if conflictsOnly && !ml.Conflict {
			continue
		}
		if whitespaceOnly && !ml.WhiteSpaceConflict {
			continue
		}
		m.Choose(ml, selector)
	}
}

// AutoSolve re-runs the merge-model builder with autoSolve forced on,
// resolving every delta to its classify()-determined source (spec
// §4.6). Re-invoking AutoSolve on an already-solved model is a no-op
// (spec §8 P8): rebuild is a pure function of D3L and Opt.
func (m *Model) AutoSolve() {
	m.Opt.AutoSolve = true
	m.rebuild()
}

// Unsolve re-runs the merge-model builder with autoSolve forced off,
// turning every delta back into an unresolved conflict (spec §4.6,
// the --qall CLI behavior).
func (m *Model) Unsolve() {
	m.Opt.AutoSolve = false
	m.rebuild()
}

// UnresolvedConflicts counts MergeLines still carrying an unresolved
// conflict (spec §4.8 Save gate, §8 P10).
func (m *Model) UnresolvedConflicts() int {
	n := 0
	for _, ml := range m.Lines {
		if ml.Conflict {
			n++
		}
	}
	return n
}

// Selection names a span of edit-line text within one MergeLine: byte
// offsets are in the display-line's byte coordinates, not post-tab-
// expansion columns (spec §4.9's column numbers are a presentation
// concern layered on top).
type Selection struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// materialize converts the EditLine at idx into an owned EditUserText
// line, copying its current display bytes, if it is not one already.
// EditableText lines only; callers must have checked EditableText().
func (ml *MergeLine) materialize(m *Model, idx int) {
	el := &ml.EditLines[idx]
	if el.Kind == EditUserText {
		return
	}
	src := m.LineBytes(*el)
	text := append([]byte(nil), src...)
	*el = EditLine{Kind: EditUserText, Text: text}
}

// InsertText inserts text at (lineIdx, col) within ml, overwriting the
// following len(text) bytes instead of shifting them when overwrite is
// true (spec §4.6 character insert/overwrite). lineIdx indexes
// ml.EditLines; the line must be EditableText.
func (m *Model) InsertText(ml *MergeLine, lineIdx, col int, text []byte, overwrite bool) {
	ml.materialize(m, lineIdx)
	el := &ml.EditLines[lineIdx]
	if col > len(el.Text) {
		col = len(el.Text)
	}
	if overwrite {
		end := col + len(text)
		if end > len(el.Text) {
			end = len(el.Text)
		}
		el.Text = append(el.Text[:col:col], append(append([]byte(nil), text...), el.Text[end:]...)...)
	} else {
		rest := append([]byte(nil), el.Text[col:]...)
		el.Text = append(el.Text[:col:col], append(append([]byte(nil), text...), rest...)...)
	}
	ml.Modified = true
}

// Backspace deletes the character before (lineIdx, col). At col==0 it
// joins lineIdx with the preceding edit line (spec §4.6 backspace/delete
// with line-joining); the join is a no-op at the start of ml.
func (m *Model) Backspace(ml *MergeLine, lineIdx, col int) {
	if col > 0 {
		ml.materialize(m, lineIdx)
		el := &ml.EditLines[lineIdx]
		if col > len(el.Text) {
			col = len(el.Text)
		}
		el.Text = append(el.Text[:col-1:col-1], el.Text[col:]...)
		ml.Modified = true
		return
	}
	if lineIdx == 0 {
		return
	}
	m.joinLines(ml, lineIdx-1)
}

// Delete removes the character at (lineIdx, col), or joins lineIdx with
// the following line when col is at end-of-line.
func (m *Model) Delete(ml *MergeLine, lineIdx, col int) {
	ml.materialize(m, lineIdx)
	el := &ml.EditLines[lineIdx]
	if col < len(el.Text) {
		el.Text = append(el.Text[:col:col], el.Text[col+1:]...)
		ml.Modified = true
		return
	}
	if lineIdx+1 >= len(ml.EditLines) {
		return
	}
	m.joinLines(ml, lineIdx)
}

// joinLines merges edit line idx+1 onto the end of idx, removing idx+1.
func (m *Model) joinLines(ml *MergeLine, idx int) {
	ml.materialize(m, idx)
	ml.materialize(m, idx+1)
	ml.EditLines[idx].Text = append(ml.EditLines[idx].Text, ml.EditLines[idx+1].Text...)
	ml.EditLines = append(ml.EditLines[:idx+1], ml.EditLines[idx+2:]...)
	ml.Modified = true
}

// SplitLine splits the edit line at (lineIdx, col) into two lines,
// implementing newline insertion (spec §4.6). When autoIndent is true,
// the new line is seeded with the leading whitespace run copied from the
// original line.
func (m *Model) SplitLine(ml *MergeLine, lineIdx, col int, autoIndent bool) {
	ml.materialize(m, lineIdx)
	el := &ml.EditLines[lineIdx]
	if col > len(el.Text) {
		col = len(el.Text)
	}
	head := el.Text[:col:col]
	tail := append([]byte(nil), el.Text[col:]...)

	var indent []byte
	if autoIndent {
		for _, b := range head {
			if b != ' ' && b != '\t' {
				break
			}
			indent = append(indent, b)
		}
	}

	el.Text = head
	newLine := EditLine{Kind: EditUserText, Text: append(indent, tail...)}
	ml.EditLines = append(ml.EditLines, EditLine{})
	copy(ml.EditLines[lineIdx+2:], ml.EditLines[lineIdx+1:])
	ml.EditLines[lineIdx+1] = newLine
	ml.Modified = true
}

// DeleteSelection removes the text spanned by sel, which may cross
// multiple edit lines within ml, joining the remainder into one line.
func (m *Model) DeleteSelection(ml *MergeLine, sel Selection) {
	if sel.StartLine == sel.EndLine {
		ml.materialize(m, sel.StartLine)
		el := &ml.EditLines[sel.StartLine]
		start, end := sel.StartCol, sel.EndCol
		if end > len(el.Text) {
			end = len(el.Text)
		}
		if start > end {
			start, end = end, start
		}
		el.Text = append(el.Text[:start:start], el.Text[end:]...)
		ml.Modified = true
		return
	}

	ml.materialize(m, sel.StartLine)
	ml.materialize(m, sel.EndLine)
	startEl := &ml.EditLines[sel.StartLine]
	endEl := ml.EditLines[sel.EndLine]

	startCol := sel.StartCol
	if startCol > len(startEl.Text) {
		startCol = len(startEl.Text)
	}
	endCol := sel.EndCol
	if endCol > len(endEl.Text) {
		endCol = len(endEl.Text)
	}

	merged := append(startEl.Text[:startCol:startCol], endEl.Text[endCol:]...)
	out := append(ml.EditLines[:sel.StartLine], EditLine{Kind: EditUserText, Text: merged})
	ml.EditLines = append(out, ml.EditLines[sel.EndLine+1:]...)
	ml.Modified = true
}

// Paste inserts multi-line text at (lineIdx, col): the first pasted line
// is spliced into the existing line's content, interior pasted lines
// become new edit lines, and the final pasted line is joined with the
// original line's tail.
func (m *Model) Paste(ml *MergeLine, lineIdx, col int, linesToPaste [][]byte) {
	if len(linesToPaste) == 0 {
		return
	}
	if len(linesToPaste) == 1 {
		m.InsertText(ml, lineIdx, col, linesToPaste[0], false)
		return
	}

	ml.materialize(m, lineIdx)
	el := &ml.EditLines[lineIdx]
	if col > len(el.Text) {
		col = len(el.Text)
	}
	head := el.Text[:col:col]
	tail := append([]byte(nil), el.Text[col:]...)

	newLines := make([]EditLine, 0, len(linesToPaste)-1)
	newLines = append(newLines, EditLine{Kind: EditUserText, Text: append(append([]byte(nil), head...), linesToPaste[0]...)})
	for i := 1; i < len(linesToPaste)-1; i++ {
		newLines = append(newLines, EditLine{Kind: EditUserText, Text: append([]byte(nil), linesToPaste[i]...)})
	}
	last := linesToPaste[len(linesToPaste)-1]
	newLines = append(newLines, EditLine{Kind: EditUserText, Text: append(append([]byte(nil), last...), tail...)})

	out := append(ml.EditLines[:lineIdx:lineIdx], newLines...)
	ml.EditLines = append(out, ml.EditLines[lineIdx+1:]...)
	ml.Modified = true
}

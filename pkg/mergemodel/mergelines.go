package mergemodel

import (
	"github.com/odvcencio/coremerge/pkg/diff3model"
	"github.com/odvcencio/coremerge/pkg/options"
)

// EditKind tags the variant of a MergeEditLine (spec §3).
type EditKind int

const (
	EditSourced EditKind = iota
	EditUserText
	EditConflict
	EditRemoved
)

// EditLine is one line of the editable merge output.
type EditLine struct {
	Kind EditKind

	// Sourced fields. A Sourced line always has content: rows whose
	// source is absent are never materialized into an EditLine in the
	// first place (see buildEditLines).
	Src    Src
	D3LRef int

	// UserText field; owned, never aliases a source buffer.
	Text []byte
}

// Modified reports whether the edit line carries user-entered content or
// a line that is known removed with no backing source (spec §3).
func (e EditLine) Modified() bool {
	return e.Kind == EditUserText || e.Kind == EditRemoved
}

// EditableText reports whether the line can be edited as text (neither an
// unresolved conflict placeholder nor a known-removed line).
func (e EditLine) EditableText() bool {
	return e.Kind != EditConflict && e.Kind != EditRemoved
}

// MergeLine is a maximal run of consecutive Diff3Lines of the same kind
// (spec §3, §4.5).
type MergeLine struct {
	FirstD3l           int
	RangeLength        int
	Details            Details
	SrcSelect          Src
	Conflict           bool
	Delta              bool
	WhiteSpaceConflict bool
	Modified           bool
	EditLines          []EditLine

	// activeSources is a bitmask of which of {A,B,C} currently contribute
	// to EditLines, tracked independently of whether that contribution
	// is visible (a chosen source with no content on this range still
	// counts as active). This is what makes choose(X) a true toggle
	// (spec §8 P9) even through a Removed/Conflict collapse: the
	// collapse only affects EditLines' rendering, never this bitmask.
	activeSources uint8
}

// Model is the full editable merge result: the aligned Diff3LineList plus
// the MergeLine ranges built over it. DisplayA/B/C hold each source's
// display-view line bytes (spec §3: display bytes are preserved
// separately from the comparison view used for matching), indexed by
// that source's line number; Save and the text-edit operations read
// Sourced edit lines' content from here.
type Model struct {
	D3L      *diff3model.List
	Lines    []*MergeLine
	HasC     bool
	Opt      options.Options
	DisplayA [][]byte
	DisplayB [][]byte
	DisplayC [][]byte
}

// Build classifies every Diff3Line, groups them into MergeLines (spec
// §4.5 sameKindCheck), applies whitespace-only conflict relaxation, and
// populates each MergeLine's initial edit lines.
func Build(d3l *diff3model.List, hasC bool, opt options.Options, displayA, displayB, displayC [][]byte) *Model {
	m := &Model{D3L: d3l, HasC: hasC, Opt: opt, DisplayA: displayA, DisplayB: displayB, DisplayC: displayC}
	m.rebuild()
	return m
}

// LineBytes returns the display-view bytes of a Sourced edit line or the
// owned Text of a UserText line, and nil for a Conflict/Removed line or
// an absent source.
func (m *Model) LineBytes(el EditLine) []byte {
	if el.Kind == EditUserText {
		return el.Text
	}
	if el.Kind != EditSourced {
		return nil
	}
	row := m.D3L.Lines[el.D3LRef]
	idx := sourceIndex(row, el.Src)
	if idx == diff3model.Absent {
		return nil
	}
	switch el.Src {
	case SrcA:
		return m.DisplayA[idx]
	case SrcB:
		return m.DisplayB[idx]
	default:
		return m.DisplayC[idx]
	}
}

func (m *Model) rebuild() {
	rows := make([]rowInfo, len(m.D3L.Lines))
	for i, row := range m.D3L.Lines {
		rows[i] = classify(row, m.HasC, m.Opt.AutoSolve)
	}

	var lines []*MergeLine
	i := 0
	for i < len(rows) {
		j := i + 1
		for j < len(rows) && sameKind(m.D3L.Lines[j-1], rows[j-1], m.D3L.Lines[j], rows[j]) {
			j++
		}
		ml := &MergeLine{
			FirstD3l:    i,
			RangeLength: j - i,
			Details:     rows[i].details,
			SrcSelect:   rows[i].src,
			Conflict:    rows[i].conflict,
			Delta:       rows[i].details != DNoChange,
		}
		applyWhitespaceRelaxation(ml, m.D3L, m.HasC, m.Opt)
		populateEditLines(m, ml)
		lines = append(lines, ml)
		i = j
	}
	m.Lines = lines
}

// sameKind implements spec §4.5's grouping rule.
func sameKind(prevRow diff3model.Line, prev rowInfo, curRow diff3model.Line, cur rowInfo) bool {
	if prev.conflict && cur.conflict {
		return prevRow.AEqB == curRow.AEqB && prevRow.AEqC == curRow.AEqC
	}
	if !prev.conflict && !cur.conflict {
		prevDelta := prev.details != DNoChange
		curDelta := cur.details != DNoChange
		switch {
		case prevDelta && curDelta:
			return prev.src == cur.src
		case !prevDelta && !curDelta:
			return true
		default:
			return false
		}
	}
	return false
}

// applyWhitespaceRelaxation implements spec §4.5's whitespace-only
// conflict relaxation.
func applyWhitespaceRelaxation(ml *MergeLine, d3l *diff3model.List, hasC bool, opt options.Options) {
	if !ml.Conflict {
		return
	}
	allWhitespace := true
	for k := ml.FirstD3l; k < ml.FirstD3l+ml.RangeLength; k++ {
		row := d3l.Lines[k]
		var cond bool
		if hasC {
			cond = (row.AEqB && row.AEqC) || (row.WhiteA && row.WhiteB && row.WhiteC)
		} else {
			cond = row.AEqB || (row.WhiteA && row.WhiteB)
		}
		if !cond {
			allWhitespace = false
			break
		}
	}
	if !allWhitespace {
		return
	}
	ml.WhiteSpaceConflict = true

	var def Src
	switch opt.WhitespaceMergeDefault {
	case options.WhitespaceA:
		def = SrcA
	case options.WhitespaceB:
		def = SrcB
	case options.WhitespaceC:
		def = SrcC
	default:
		return
	}
	ml.SrcSelect = def
	ml.Conflict = false
}

// populateEditLines implements spec §4.5's initial edit-line population:
// classify() has already picked ml.SrcSelect (or left it SrcNone for a
// conflict), so the initial active set is just that one source.
func populateEditLines(m *Model, ml *MergeLine) {
	if ml.Conflict {
		ml.activeSources = 0
	} else {
		ml.activeSources = bitFor(ml.SrcSelect)
	}
	buildEditLines(m, ml)
}

func sourceIndex(row diff3model.Line, s Src) int {
	switch s {
	case SrcA:
		return row.LineA
	case SrcB:
		return row.LineB
	case SrcC:
		return row.LineC
	default:
		return diff3model.Absent
	}
}

const (
	bitA uint8 = 1 << iota
	bitB
	bitC
)

func bitFor(s Src) uint8 {
	switch s {
	case SrcA:
		return bitA
	case SrcB:
		return bitB
	case SrcC:
		return bitC
	default:
		return 0
	}
}

func activeSrcList(mask uint8) []Src {
	var out []Src
	if mask&bitA != 0 {
		out = append(out, SrcA)
	}
	if mask&bitB != 0 {
		out = append(out, SrcB)
	}
	if mask&bitC != 0 {
		out = append(out, SrcC)
	}
	return out
}

// buildEditLines renders ml.EditLines from ml.activeSources (spec §4.6
// choose/chooseGlobal): a zero mask means no source has ever been chosen
// for this range, i.e. it is still an unresolved conflict. A non-zero
// mask with no visible content (every active source absent on every row
// in range) resolves to a single Removed line — the user deliberately
// picked a side that contributes nothing here, which is a resolution,
// not an open conflict.
func buildEditLines(m *Model, ml *MergeLine) {
	if ml.activeSources == 0 {
		ml.EditLines = []EditLine{{Kind: EditConflict}}
		ml.Conflict = true
		ml.SrcSelect = SrcNone
		return
	}

	srcs := activeSrcList(ml.activeSources)
	var out []EditLine
	for k := ml.FirstD3l; k < ml.FirstD3l+ml.RangeLength; k++ {
		row := m.D3L.Lines[k]
		for _, s := range srcs {
			if sourceIndex(row, s) == diff3model.Absent {
				continue
			}
			out = append(out, EditLine{Kind: EditSourced, Src: s, D3LRef: k})
		}
	}

	ml.Conflict = false
	if len(out) == 0 {
		ml.EditLines = []EditLine{{Kind: EditRemoved}}
	} else {
		ml.EditLines = out
	}
	if len(srcs) == 1 {
		ml.SrcSelect = srcs[0]
	} else {
		ml.SrcSelect = SrcNone
	}
}

// Package diff3model implements the three-way aligner (spec §4.4): it
// folds the pairwise A↔B, A↔C and B↔C DiffLists into a single ordered
// Diff3LineList, then trims/compacts it.
package diff3model

import (
	"fmt"

	"github.com/odvcencio/coremerge/pkg/engerr"
	"github.com/odvcencio/coremerge/pkg/linediff"
)

// Absent marks a line index that does not exist on a given side of a row.
const Absent = -1

// Line is one row of the three-way display (spec §3 Diff3Line).
type Line struct {
	LineA, LineB, LineC int
	AEqB, AEqC, BEqC    bool

	FineAB, FineBC, FineCA *linediff.DiffList

	WhiteA, WhiteB, WhiteC bool

	LinesNeededForDisplay    int
	SumLinesNeededForDisplay int
}

// List is the authoritative ordered Diff3Line sequence (Diff3LineList).
// A parallel index vector would be built for O(1) row access in a
// presenter; this module exposes Lines directly since it owns no
// rendering concerns.
type List struct {
	Lines []Line
}

// Content bundles the per-source comparison data the aligner needs to
// make content-equality decisions during BC-improvement and trim (spec
// §4.4.3, §4.4.4): the comparison-view LineValues (for equal()) and a
// parallel whiteness flag per line (spec §4.4.5).
type Content struct {
	Values []linediff.LineValue
	White  []bool
}

// Build runs all of §4.4's steps: seed with A↔B, merge in A↔C (only when C
// is present), improve using B↔C, trim, then set white-line flags. ac and
// bc are ignored when hasC is false.
func Build(ab, ac, bc linediff.DiffList, a, b, c Content, eo linediff.EqualOptions, hasC bool) *List {
	l := &List{Lines: stepAB(ab)}
	if hasC {
		stepAC(l, ac)
		stepBC(l, bc, a, b, c, eo)
	}
	stepTrim(l, a, b, c, eo, hasC)
	stepWhiteLines(l, a, b, c, hasC)
	return l
}

// stepAB seeds the list from the A↔B DiffList (spec §4.4.1).
func stepAB(ab linediff.DiffList) []Line {
	var lines []Line
	curA, curB := 0, 0
	for _, d := range ab {
		for i := 0; i < d.NofEquals; i++ {
			lines = append(lines, Line{LineA: curA, LineB: curB, LineC: Absent, AEqB: true})
			curA++
			curB++
		}
		m := maxInt(d.LeftOnly, d.RightOnly)
		for i := 0; i < m; i++ {
			ln := Line{LineA: Absent, LineB: Absent, LineC: Absent}
			if i < d.LeftOnly {
				ln.LineA = curA
				curA++
			}
			if i < d.RightOnly {
				ln.LineB = curB
				curB++
			}
			lines = append(lines, ln)
		}
	}
	return lines
}

// stepAC merges the A↔C DiffList into the list produced by stepAB (spec
// §4.4.2). Existing rows (every line of A sits on exactly one of them,
// from stepAB's walk across all of A) are found by their LineA and
// annotated in place for the A↔C equals run; C-only
// (and the C side of add/delete pairs) lines are inserted as fresh rows
// immediately before the current A-cursor position.
func stepAC(l *List, ac linediff.DiffList) {
	i3 := 0
	curA, curC := 0, 0

	findA := func(from, a int) int {
		for l.Lines[from].LineA != a {
			from++
		}
		return from
	}

	for _, d := range ac {
		for i := 0; i < d.NofEquals; i++ {
			i3 = findA(i3, curA)
			row := &l.Lines[i3]
			row.LineC = curC
			row.AEqC = true
			row.BEqC = row.AEqB
			i3++
			curA++
			curC++
		}
		m := maxInt(d.LeftOnly, d.RightOnly)
		for i := 0; i < m; i++ {
			if i < d.LeftOnly {
				i3 = findA(i3, curA)
				i3++
				curA++
			}
			if i < d.RightOnly {
				newRow := Line{LineA: Absent, LineB: Absent, LineC: curC}
				l.Lines = insertAt(l.Lines, i3, newRow)
				i3++
				curC++
			}
		}
	}
}

func insertAt(s []Line, idx int, v Line) []Line {
	s = append(s, Line{})
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// DebugLineCheck verifies spec §3's invariant (P1, spec §8): for each
// source X, the ordered projection of present LineX values equals
// 0,1,...,sizeX-1 exactly. It returns engerr.ErrInternal, wrapped with
// detail, on violation.
func DebugLineCheck(l *List, sizeA, sizeB, sizeC int, hasC bool) error {
	if err := checkProjection(l, sizeA, func(r Line) int { return r.LineA }, "A"); err != nil {
		return err
	}
	if err := checkProjection(l, sizeB, func(r Line) int { return r.LineB }, "B"); err != nil {
		return err
	}
	if hasC {
		if err := checkProjection(l, sizeC, func(r Line) int { return r.LineC }, "C"); err != nil {
			return err
		}
	}
	return nil
}

func checkProjection(l *List, size int, get func(Line) int, name string) error {
	want := 0
	for _, row := range l.Lines {
		v := get(row)
		if v == Absent {
			continue
		}
		if v != want {
			return fmt.Errorf("%w: source %s projection expected %d, got %d", engerr.ErrInternal, name, want, v)
		}
		want++
	}
	if want != size {
		return fmt.Errorf("%w: source %s projection covered %d of %d lines", engerr.ErrInternal, name, want, size)
	}
	return nil
}

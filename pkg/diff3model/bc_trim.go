package diff3model

import "github.com/odvcencio/coremerge/pkg/linediff"

// stepBC improves the list using the B↔C DiffList (spec §4.4.3). For each
// B↔C equals unit, the rows currently carrying curB and curC are located;
// if they are the same row, bBEqC is set directly. Otherwise the "leader"
// (earlier row) and "trailer" (later row) are identified, and the line is
// moved onto the leader's row when nothing "disturbs" the move — i.e. the
// interval between the two rows holds no other line of the source being
// moved. This is a conservative (zero-disturbance) instance of the
// original nofDisturbingLines<nofEquals heuristic (spec §9 Open
// Questions): it is preserved rather than "simplified" because the source
// explicitly warns against doing so, but it is restricted to the clean
// case a line/char merge engine meets in practice (isolated single-line
// moves), documented in DESIGN.md.
func stepBC(l *List, bc linediff.DiffList, a, b, c Content, eo linediff.EqualOptions) {
	curB, curC := 0, 0
	i3b, i3c := 0, 0

	findB := func(from, val int) int {
		for l.Lines[from].LineB != val {
			from++
		}
		return from
	}
	findC := func(from, val int) int {
		for l.Lines[from].LineC != val {
			from++
		}
		return from
	}

	for _, d := range bc {
		for i := 0; i < d.NofEquals; i++ {
			ib := findB(i3b, curB)
			ic := findC(i3c, curC)

			switch {
			case ib == ic:
				l.Lines[ib].BEqC = true
			case ib < ic:
				if countDisturbing(l, ib, ic, false) == 0 {
					moveConto(l, ib, ic, a, c, eo)
				}
			default:
				if countDisturbing(l, ic, ib, true) == 0 {
					moveBonto(l, ic, ib, b, eo)
				}
			}

			i3b = maxInt(ib, i3b) + 1
			i3c = maxInt(ic, i3c) + 1
			curB++
			curC++
		}
		// B-only / C-only runs: the rows already exist (B from stepAB, C
		// from stepAC); out-of-order relocation is left to stepTrim's
		// hoisting pass, which subsumes the single-row relocation spec
		// §4.4.3's last paragraph describes.
		curB += d.LeftOnly
		curC += d.RightOnly
	}
}

// countDisturbing counts rows strictly between lo and hi (exclusive) that
// carry a line of the source being moved, i.e. rows whose line would end
// up out of order if the mover's line slid past it. moverIsB selects
// which source is being relocated (true: B is moving onto C's row;
// false: C is moving onto B's row).
func countDisturbing(l *List, lo, hi int, moverIsB bool) int {
	n := 0
	for k := lo + 1; k < hi; k++ {
		if moverIsB {
			if l.Lines[k].LineB != Absent {
				n++
			}
		} else {
			if l.Lines[k].LineC != Absent {
				n++
			}
		}
	}
	return n
}

// moveConto moves the C value at row "from" onto the earlier row "onto"
// (ib < ic case: B's row precedes C's row).
func moveConto(l *List, onto, from int, a, c Content, eo linediff.EqualOptions) {
	cIdx := l.Lines[from].LineC
	l.Lines[onto].LineC = cIdx
	l.Lines[onto].BEqC = true
	if l.Lines[onto].LineA != Absent {
		l.Lines[onto].AEqC = a.Values[l.Lines[onto].LineA].EqualTo(c.Values[cIdx], false, eo.IgnoreWhiteSpace, eo.IgnoreTrivialMatches, eo.TrivialThreshold)
	}
	l.Lines[from].LineC = Absent
	l.Lines[from].AEqC = false
	l.Lines[from].BEqC = false
}

// moveBonto moves the B value at row "from" onto the earlier row "onto"
// (ic < ib case: C's row precedes B's row).
func moveBonto(l *List, onto, from int, b Content, eo linediff.EqualOptions) {
	bIdx := l.Lines[from].LineB
	l.Lines[onto].LineB = bIdx
	l.Lines[onto].BEqC = true
	if l.Lines[onto].LineA != Absent {
		// AEqB is cleared rather than recomputed; trim's rule 1 compares
		// content directly instead of relying on this flag.
		l.Lines[onto].AEqB = false
	}
	l.Lines[from].LineB = Absent
	l.Lines[from].AEqB = false
	l.Lines[from].BEqC = false
}

// stepTrim implements spec §4.4.4: hoist a present line back to an
// earlier all-empty-for-that-source slot when the documented conditions
// hold, then drop rows that end up fully empty.
func stepTrim(l *List, a, b, c Content, eo linediff.EqualOptions, hasC bool) {
	hoistSource(l, sourceA, a, b, c, eo, hasC)
	hoistSource(l, sourceB, a, b, c, eo, hasC)
	if hasC {
		hoistSource(l, sourceC, a, b, c, eo, hasC)
	}

	out := l.Lines[:0]
	for _, row := range l.Lines {
		if row.LineA == Absent && row.LineB == Absent && row.LineC == Absent {
			continue
		}
		out = append(out, row)
	}
	l.Lines = out
}

type source int

const (
	sourceA source = iota
	sourceB
	sourceC
)

func get(row Line, s source) int {
	switch s {
	case sourceA:
		return row.LineA
	case sourceB:
		return row.LineB
	default:
		return row.LineC
	}
}

func set(row *Line, s source, v int) {
	switch s {
	case sourceA:
		row.LineA = v
	case sourceB:
		row.LineB = v
	default:
		row.LineC = v
	}
}

// hoistSource walks the list once for source s, trailing a catch-up
// cursor. When the main row carries s but the catch-up row is empty for
// s, it attempts the three rules of spec §4.4.4 in order.
func hoistSource(l *List, s source, a, b, c Content, eo linediff.EqualOptions, hasC bool) {
	catchUp := 0
	for i3 := 0; i3 < len(l.Lines); i3++ {
		if get(l.Lines[i3], s) == Absent {
			continue
		}
		for catchUp < i3 && get(l.Lines[catchUp], s) != Absent {
			catchUp++
		}
		if catchUp >= i3 {
			continue
		}

		if tryHoist(l, s, catchUp, i3, a, b, c, eo, hasC) {
			catchUp++
		} else {
			// The line stays on row i3; no later line of s may be
			// hoisted above it.
			catchUp = i3
		}
	}
}

// tryHoist applies rule 1, then rule 2, then rule 3 (spec §4.4.4).
func tryHoist(l *List, s source, target, cur int, a, b, c Content, eo linediff.EqualOptions, hasC bool) bool {
	val := get(l.Lines[cur], s)

	// Rule 1: source s's content on the current row equals the other two
	// sources' content on the target row.
	if contentEqualsOthers(l.Lines[target], s, val, a, b, c, eo, hasC) {
		hoist(l, s, target, cur, val)
		return true
	}

	// Rule 2: s doesn't match either other source on the current row.
	if !matchesAnyOther(l.Lines[cur], s) {
		hoist(l, s, target, cur, val)
		return true
	}

	// Rule 3: two sources match each other but not the third on the
	// current row, and both catch-up slots (for the two non-s sources)
	// are empty on the target row -> hoist both together.
	if hasC {
		if other1, other2, ok := pairedMatchExcluding(l.Lines[cur], s); ok {
			if get(l.Lines[target], other1) == Absent && get(l.Lines[target], other2) == Absent {
				v1 := get(l.Lines[cur], other1)
				v2 := get(l.Lines[cur], other2)
				set(&l.Lines[target], other1, v1)
				set(&l.Lines[target], other2, v2)
				set(&l.Lines[cur], other1, Absent)
				set(&l.Lines[cur], other2, Absent)
				return true
			}
		}
	}

	return false
}

func hoist(l *List, s source, target, cur, val int) {
	set(&l.Lines[target], s, val)
	set(&l.Lines[cur], s, Absent)
	// Clear equality flags tied to s on both rows; stepWhiteLines and any
	// later content check recompute what is needed.
	clearFlagsFor(&l.Lines[target], s)
	clearFlagsFor(&l.Lines[cur], s)
}

func clearFlagsFor(row *Line, s source) {
	switch s {
	case sourceA:
		row.AEqB, row.AEqC = false, false
	case sourceB:
		row.AEqB, row.BEqC = false, false
	case sourceC:
		row.AEqC, row.BEqC = false, false
	}
}

func matchesAnyOther(row Line, s source) bool {
	switch s {
	case sourceA:
		return row.AEqB || row.AEqC
	case sourceB:
		return row.AEqB || row.BEqC
	default:
		return row.AEqC || row.BEqC
	}
}

// pairedMatchExcluding reports the two sources other than s when they
// match each other (but not s), per rule 3.
func pairedMatchExcluding(row Line, s source) (other1, other2 source, ok bool) {
	switch s {
	case sourceA:
		return sourceB, sourceC, row.BEqC
	case sourceB:
		return sourceA, sourceC, row.AEqC
	default:
		return sourceA, sourceB, row.AEqB
	}
}

func contentEqualsOthers(target Line, s source, val int, a, b, c Content, eo linediff.EqualOptions, hasC bool) bool {
	var content Content
	switch s {
	case sourceA:
		content = a
	case sourceB:
		content = b
	default:
		content = c
	}
	v := content.Values[val]

	check := func(otherSrc source, otherContent Content) bool {
		idx := get(target, otherSrc)
		if idx == Absent {
			return true // nothing to contradict
		}
		return v.EqualTo(otherContent.Values[idx], false, eo.IgnoreWhiteSpace, eo.IgnoreTrivialMatches, eo.TrivialThreshold)
	}

	switch s {
	case sourceA:
		okB := check(sourceB, b)
		okC := !hasC || check(sourceC, c)
		return (get(target, sourceB) != Absent || (hasC && get(target, sourceC) != Absent)) && okB && okC
	case sourceB:
		okA := check(sourceA, a)
		okC := !hasC || check(sourceC, c)
		return (get(target, sourceA) != Absent || (hasC && get(target, sourceC) != Absent)) && okA && okC
	default:
		okA := check(sourceA, a)
		okB := check(sourceB, b)
		return (get(target, sourceA) != Absent || get(target, sourceB) != Absent) && okA && okB
	}
}

// stepWhiteLines sets bWhiteLineX = (lineX absent) OR content[lineX] is a
// white line (spec §4.4.5).
func stepWhiteLines(l *List, a, b, c Content, hasC bool) {
	for i := range l.Lines {
		row := &l.Lines[i]
		row.WhiteA = row.LineA == Absent || a.White[row.LineA]
		row.WhiteB = row.LineB == Absent || b.White[row.LineB]
		if hasC {
			row.WhiteC = row.LineC == Absent || c.White[row.LineC]
		} else {
			row.WhiteC = true
		}
	}
}

// Package finediff implements the fine differ driver (spec §4.7): for
// every Diff3Line whose two sides are both present but not byte-equal, it
// runs the character-level matcher and attaches the resulting DiffList to
// the row's pFineAB/pFineBC/pFineCA slot.
package finediff

import (
	"bytes"

	"github.com/odvcencio/coremerge/pkg/diff3model"
	"github.com/odvcencio/coremerge/pkg/linediff"
)

// Pair selects which side-pair to fine-diff.
type Pair int

const (
	PairAB Pair = 1
	PairBC Pair = 2
	PairCA Pair = 3
)

// Stats reports per-pair total textual equality, a by-product of the
// fine-diff pass (spec §4.7).
type Stats struct {
	TotalEqualBytes int
	TotalBytes      int
}

// Run fine-diffs every Diff3Line with both sides of pair present, storing
// the result on the appropriate slot. aLines/bLines/cLines are the
// display-view byte slices for each source line, indexed by line number.
func Run(l *diff3model.List, pair Pair, aLines, bLines, cLines [][]byte, eo linediff.EqualOptions, maxSearchLength int, cancelled func() bool) Stats {
	var stats Stats

	for i := range l.Lines {
		row := &l.Lines[i]

		var idx1, idx2 int
		var lines1, lines2 [][]byte
		var slot **linediff.DiffList

		switch pair {
		case PairAB:
			idx1, idx2 = row.LineA, row.LineB
			lines1, lines2 = aLines, bLines
			slot = &row.FineAB
		case PairBC:
			idx1, idx2 = row.LineB, row.LineC
			lines1, lines2 = bLines, cLines
			slot = &row.FineBC
		case PairCA:
			idx1, idx2 = row.LineC, row.LineA
			lines1, lines2 = cLines, aLines
			slot = &row.FineCA
		}

		if idx1 == diff3model.Absent || idx2 == diff3model.Absent {
			*slot = nil
			continue
		}

		b1, b2 := lines1[idx1], lines2[idx2]
		stats.TotalBytes += len(b1) + len(b2)

		if bytes.Equal(b1, b2) {
			*slot = nil
			stats.TotalEqualBytes += len(b1) + len(b2)
			continue
		}

		if cancelled != nil && cancelled() {
			return stats
		}

		dl := linediff.CalcDiff(linediff.ByteSources(b1), linediff.ByteSources(b2), linediff.MatchChar, maxSearchLength, eo, cancelled)
		dl = postOptimize(dl)
		*slot = &dl
		stats.TotalEqualBytes += dl.SumLeft() - sumOnly(dl, true)
	}

	return stats
}

func sumOnly(dl linediff.DiffList, left bool) int {
	n := 0
	for _, d := range dl {
		if left {
			n += d.LeftOnly
		} else {
			n += d.RightOnly
		}
	}
	return n
}

// postOptimize rolls any Diff whose nofEquals is under 4 (and which sits
// beside a genuine change) into the surrounding diff counts, preventing
// visually noisy 1-3 character "islands" inside a change (spec §4.7
// post-optimization).
func postOptimize(dl linediff.DiffList) linediff.DiffList {
	if len(dl) < 2 {
		return dl
	}
	out := make(linediff.DiffList, 0, len(dl))
	for i, d := range dl {
		if d.NofEquals > 0 && d.NofEquals < 4 && (d.LeftOnly > 0 || d.RightOnly > 0) && len(out) > 0 {
			prev := &out[len(out)-1]
			prev.LeftOnly += d.NofEquals + d.LeftOnly
			prev.RightOnly += d.NofEquals + d.RightOnly
			continue
		}
		_ = i
		out = append(out, d)
	}
	return out
}

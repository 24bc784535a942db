package linediff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// CalcDiffExternal computes a line-level DiffList using
// sergi/go-diff/diffmatchpatch's Myers-style minimal differ instead of
// CalcDiff's own greedy-anchor matcher (spec §4.3's invitation to
// substitute "an external best-of-breed differ (Myers-style minimal)...
// behind the same DiffList contract", spec §4.10). It is only ever used
// at line granularity; character-level fine diffing always goes through
// CalcDiff directly.
//
// The two matchers are interchangeable because both satisfy DiffList's
// invariants (spec P2): SumLeft/SumRight equal len(left)/len(right).
func CalcDiffExternal(left, right []string) DiffList {
	dmp := diffmatchpatch.New()

	leftText, rightText, lineArray := dmp.DiffLinesToChars(strings.Join(left, "\n"), strings.Join(right, "\n"))
	diffs := dmp.DiffMainRunes([]rune(leftText), []rune(rightText), false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out DiffList
	for _, d := range diffs {
		n := countLines(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			out = appendEquals(out, n)
		case diffmatchpatch.DiffDelete:
			out = appendOnly(out, n, 0)
		case diffmatchpatch.DiffInsert:
			out = appendOnly(out, 0, n)
		}
	}
	return out
}

func appendOnly(out DiffList, left, right int) DiffList {
	if len(out) > 0 {
		last := &out[len(out)-1]
		if last.NofEquals == 0 {
			last.LeftOnly += left
			last.RightOnly += right
			return out
		}
	}
	return append(out, Diff{LeftOnly: left, RightOnly: right})
}

// countLines returns the number of newline-delimited lines represented by
// s, where s is a concatenation of whole lines each still ending in '\n'
// except possibly the last fragment (diffmatchpatch preserves terminators
// when fed pre-split, newline-joined text).
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

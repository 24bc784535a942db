// Package linediff implements the pairwise matcher (spec §4.3): equal(),
// the engine's own calcDiff greedy-anchor algorithm generic over an
// Element interface (lines or bytes), and the DiffList/Diff run-length
// output contract both the line and character level share.
package linediff

// Element is the minimal capability calcDiff needs from whatever it is
// comparing: byte equality with two modes, and occurrence-count awareness
// for trivial-match suppression. Both line-level (LineData) and
// char-level (single byte) comparisons implement this.
type Element interface {
	// EqualTo reports whether e and other are the same under strict or
	// relaxed rules, given the ignore-whitespace/ignore-trivial options.
	EqualTo(other Element, strict bool, ignoreWhiteSpace, ignoreTrivialMatches bool, trivialThreshold int) bool
}

// Diff is one run of a pairwise alignment: nofEquals matched elements
// followed by leftOnly elements unique to the left side and/or rightOnly
// elements unique to the right side (spec §3 Diff invariant).
type Diff struct {
	NofEquals int
	LeftOnly  int
	RightOnly int
}

// DiffList is the ordered sequence of Diff runs describing a full
// alignment (spec §3 DiffList invariant: summed equals+leftOnly equals
// the left length; likewise for right).
type DiffList []Diff

// SumLeft returns Σ(equals+leftOnly) across the list.
func (dl DiffList) SumLeft() int {
	n := 0
	for _, d := range dl {
		n += d.NofEquals + d.LeftOnly
	}
	return n
}

// SumRight returns Σ(equals+rightOnly) across the list.
func (dl DiffList) SumRight() int {
	n := 0
	for _, d := range dl {
		n += d.NofEquals + d.RightOnly
	}
	return n
}

// MatchLevel selects line-level (1) or character-level (2) matching; it
// only affects one of the anchor search's context predicates (spec §4.3
// step 2).
type MatchLevel int

const (
	MatchLine MatchLevel = 1
	MatchChar MatchLevel = 2
)

// EqualOptions bundles the comparison knobs equal() needs. It is the
// linediff-local mirror of the fields of options.Options that matter to
// matching, kept separate so this package has no dependency on the CLI-
// facing options package.
type EqualOptions struct {
	IgnoreWhiteSpace     bool
	IgnoreTrivialMatches bool
	TrivialThreshold     int
}

// Source is the generic element range calcDiff walks. It is implemented
// separately for lines (Sources) and bytes (ByteSources) so the
// same matcher serves both granularities (spec §4.3 / Design Notes: the
// matcher needs only equality with two modes and a way to look at the
// next element).
type Source interface {
	Len() int
	At(i int) Element
}

// CalcDiff runs the engine's own greedy-anchor matcher (spec §4.3) over
// p1[0:p1.Len()) and p2[0:p2.Len()). match selects MatchLine or MatchChar
// context relaxation. maxSearchRange bounds the anchor search (used to
// keep character-level diffing inside changed lines cheap).
//
// Post-condition (debug-checked by callers via DiffList.SumLeft/SumRight):
// the returned DiffList's sums equal p1.Len() and p2.Len().
func CalcDiff(p1, p2 Source, match MatchLevel, maxSearchRange int, eo EqualOptions, cancelled func() bool) DiffList {
	s1, s2 := p1.Len(), p2.Len()
	var out DiffList

	i1, i2 := 0, 0
	for {
		if cancelled != nil && cancelled() {
			return out
		}

		// Step 1: advance both cursors while non-strictly equal.
		nofEquals := 0
		for i1 < s1 && i2 < s2 && equalElems(p1.At(i1), p2.At(i2), false, eo) {
			i1++
			i2++
			nofEquals++
		}

		if i1 >= s1 && i2 >= s2 {
			if nofEquals > 0 || len(out) == 0 {
				out = appendEquals(out, nofEquals)
			}
			break
		}

		// Step 2: search for the next anchor.
		bestI1, bestI2, found := findAnchor(p1, p2, i1, i2, s1, s2, match, maxSearchRange, eo)

		if !found {
			out = append(out, Diff{NofEquals: nofEquals, LeftOnly: s1 - i1, RightOnly: s2 - i2})
			i1, i2 = s1, s2
			break
		}

		// Step 3: back off the anchor while the elements just before it
		// are still non-strictly equal to each other; they get picked up
		// as leading equals on the next iteration instead of being
		// counted as only-diffs.
		for bestI1 > 0 && bestI2 > 0 && equalElems(p1.At(i1+bestI1-1), p2.At(i2+bestI2-1), false, eo) {
			bestI1--
			bestI2--
		}

		out = append(out, Diff{NofEquals: nofEquals, LeftOnly: bestI1, RightOnly: bestI2})
		i1 += bestI1
		i2 += bestI2

		// The original source's end-re-matching pass (spec §4.3 step 5)
		// exists to catch elements the greedy anchor search skipped right
		// before the anchor. Step 3's backoff loop above already performs
		// that correction eagerly: any trailing elements of the only-run
		// that turn out to be non-strictly equal are folded back before
		// the cursors advance, so they are picked up as leading equals on
		// the next loop iteration instead of needing a separate rewrite
		// pass. Preserved as a documented simplification (spec §9 Open
		// Questions) rather than a transliterated pop/re-push.
	}

	return out
}

func appendEquals(out DiffList, n int) DiffList {
	if n == 0 {
		return out
	}
	if len(out) > 0 && out[len(out)-1].LeftOnly == 0 && out[len(out)-1].RightOnly == 0 {
		out[len(out)-1].NofEquals += n
		return out
	}
	return append(out, Diff{NofEquals: n})
}

func equalElems(a, b Element, strict bool, eo EqualOptions) bool {
	return a.EqualTo(b, strict, eo.IgnoreWhiteSpace, eo.IgnoreTrivialMatches, eo.TrivialThreshold)
}

// findAnchor looks for the next position (i1+di1, i2+di2) where elements
// are strictly equal and at least one context predicate holds, tracking
// the candidate with minimum di1+di2 (spec §4.3 step 2).
func findAnchor(p1, p2 Source, i1, i2, s1, s2 int, match MatchLevel, maxSearchRange int, eo EqualOptions) (bestI1, bestI2 int, found bool) {
	best := -1
	for d1 := 0; i1+d1 < s1 || d1 == 0; d1++ {
		if best >= 0 && d1 > best {
			break
		}
		maxD2 := maxSearchRange
		if i2+maxD2 > s2 {
			maxD2 = s2 - i2
		}
		for d2 := 0; d2 <= maxD2; d2++ {
			if best >= 0 && d1+d2 >= best {
				break
			}
			if i1+d1 >= s1 || i2+d2 >= s2 {
				continue
			}
			if !equalElems(p1.At(i1+d1), p2.At(i2+d2), true, eo) {
				continue
			}
			ctx := match == MatchLine ||
				abs(d1-d2) < 3 ||
				(i1+d1+1 >= s1 && i2+d2+1 >= s2) ||
				(i1+d1+1 < s1 && i2+d2+1 < s2 && equalElems(p1.At(i1+d1+1), p2.At(i2+d2+1), false, eo))
			if !ctx {
				continue
			}
			if best < 0 || d1+d2 < best {
				best = d1 + d2
				bestI1, bestI2 = d1, d2
				found = true
			}
		}
		if i1+d1 >= s1 && best < 0 {
			break
		}
	}
	return bestI1, bestI2, found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

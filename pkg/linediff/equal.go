package linediff

import "bytes"

// LineValue is the Element wrapping one line's comparison-view bytes and
// occurrence count, used by the line-level calcDiff pass (spec §4.2).
type LineValue struct {
	Bytes           []byte
	OccurrenceCount int
}

// EqualTo implements Element for LineValue per spec §4.2's equal(l1, l2,
// strict) rule.
func (lv LineValue) EqualTo(other Element, strict, ignoreWhiteSpace, ignoreTrivialMatches bool, trivialThreshold int) bool {
	ov, ok := other.(LineValue)
	if !ok {
		return false
	}
	return equalBytes(lv.Bytes, lv.OccurrenceCount, ov.Bytes, ov.OccurrenceCount, strict, ignoreWhiteSpace, ignoreTrivialMatches, trivialThreshold)
}

// ByteValue is the Element used by the character-level calcDiff pass
// (spec §4.7 fine differ). Trivial-match suppression does not apply at
// this granularity.
type ByteValue struct {
	B byte
}

// EqualTo implements Element for ByteValue: plain byte equality,
// optionally skipping space/tab on both sides when ignoreWhiteSpace is
// set (so fine diffs inside whitespace-relaxed lines don't manufacture
// noise around the skipped whitespace).
func (bv ByteValue) EqualTo(other Element, strict, ignoreWhiteSpace, ignoreTrivialMatches bool, trivialThreshold int) bool {
	ov, ok := other.(ByteValue)
	if !ok {
		return false
	}
	if ignoreWhiteSpace && isSpaceOrTab(bv.B) && isSpaceOrTab(ov.B) {
		return true
	}
	return bv.B == ov.B
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

// equalBytes implements spec §4.2 precisely:
//   - strict + trivial-ignore + either occurrenceCount >= threshold -> false
//   - with ignoreWhiteSpace: skip spaces/tabs on both sides, compare the
//     remaining bytes; in strict+trivial-ignore mode require more than 2
//     non-white matched bytes, otherwise any complete traversal matches
//   - without ignoreWhiteSpace: byte-length equality and full memcmp
func equalBytes(a []byte, aOcc int, b []byte, bOcc int, strict, ignoreWhiteSpace, ignoreTrivialMatches bool, trivialThreshold int) bool {
	if strict && ignoreTrivialMatches && (aOcc >= trivialThreshold || bOcc >= trivialThreshold) {
		return false
	}

	if !ignoreWhiteSpace {
		return bytes.Equal(a, b)
	}

	i, j, nonWhite := 0, 0, 0
	for {
		for i < len(a) && isSpaceOrTab(a[i]) {
			i++
		}
		for j < len(b) && isSpaceOrTab(b[j]) {
			j++
		}
		if i >= len(a) && j >= len(b) {
			break
		}
		if i >= len(a) || j >= len(b) || a[i] != b[j] {
			return false
		}
		i++
		j++
		nonWhite++
	}

	if strict && ignoreTrivialMatches {
		return nonWhite > 2
	}
	return true
}

// Sources wraps a slice of LineValue as a linediff.Source.
type Sources []LineValue

func (s Sources) Len() int          { return len(s) }
func (s Sources) At(i int) Element  { return s[i] }

// ByteSources wraps a byte slice as a linediff.Source of ByteValue.
type ByteSources []byte

func (s ByteSources) Len() int         { return len(s) }
func (s ByteSources) At(i int) Element { return ByteValue{B: s[i]} }

package linediff

import "testing"

func lineValues(ss ...string) Sources {
	out := make(Sources, len(ss))
	for i, s := range ss {
		out[i] = LineValue{Bytes: []byte(s), OccurrenceCount: 1}
	}
	return out
}

func sumsMatch(t *testing.T, dl DiffList, leftLen, rightLen int) {
	t.Helper()
	if got := dl.SumLeft(); got != leftLen {
		t.Fatalf("SumLeft() = %d, want %d", got, leftLen)
	}
	if got := dl.SumRight(); got != rightLen {
		t.Fatalf("SumRight() = %d, want %d", got, rightLen)
	}
}

func TestCalcDiffIdenticalInputs(t *testing.T) {
	p1 := lineValues("a", "b", "c")
	p2 := lineValues("a", "b", "c")
	dl := CalcDiff(p1, p2, MatchLine, 10, EqualOptions{}, nil)
	sumsMatch(t, dl, 3, 3)
	for _, d := range dl {
		if d.LeftOnly != 0 || d.RightOnly != 0 {
			t.Fatalf("identical inputs produced a delta: %+v", dl)
		}
	}
}

func TestCalcDiffPureInsertion(t *testing.T) {
	p1 := lineValues("a", "b", "c")
	p2 := lineValues("a", "X", "b", "c")
	dl := CalcDiff(p1, p2, MatchLine, 10, EqualOptions{}, nil)
	sumsMatch(t, dl, 3, 4)

	total := 0
	for _, d := range dl {
		total += d.RightOnly
	}
	if total != 1 {
		t.Fatalf("total rightOnly = %d, want 1", total)
	}
}

func TestCalcDiffPureDeletion(t *testing.T) {
	p1 := lineValues("a", "b", "c")
	p2 := lineValues("a", "c")
	dl := CalcDiff(p1, p2, MatchLine, 10, EqualOptions{}, nil)
	sumsMatch(t, dl, 3, 2)

	total := 0
	for _, d := range dl {
		total += d.LeftOnly
	}
	if total != 1 {
		t.Fatalf("total leftOnly = %d, want 1", total)
	}
}

func TestCalcDiffTotalMismatch(t *testing.T) {
	p1 := lineValues("x", "y", "z")
	p2 := lineValues("p", "q")
	dl := CalcDiff(p1, p2, MatchLine, 10, EqualOptions{}, nil)
	sumsMatch(t, dl, 3, 2)
}

func TestCalcDiffCancelled(t *testing.T) {
	p1 := lineValues("a", "b", "c")
	p2 := lineValues("a", "x", "c")
	dl := CalcDiff(p1, p2, MatchLine, 10, EqualOptions{}, func() bool { return true })
	if len(dl) != 0 {
		t.Fatalf("cancelled CalcDiff returned non-empty result: %+v", dl)
	}
}

func TestCalcDiffIgnoreWhiteSpace(t *testing.T) {
	p1 := lineValues("foo bar")
	p2 := lineValues("foo  bar")
	eo := EqualOptions{IgnoreWhiteSpace: true}
	dl := CalcDiff(p1, p2, MatchLine, 10, eo, nil)
	sumsMatch(t, dl, 1, 1)
	if len(dl) != 1 || dl[0].NofEquals != 1 {
		t.Fatalf("expected whitespace-only difference to match, got %+v", dl)
	}
}

func TestEqualBytesTrivialMatchSuppression(t *testing.T) {
	a := LineValue{Bytes: []byte("}"), OccurrenceCount: 10}
	b := LineValue{Bytes: []byte("}"), OccurrenceCount: 10}
	if !a.EqualTo(b, false, false, true, 5) {
		t.Fatal("non-strict compare should ignore trivial-match suppression")
	}
	if a.EqualTo(b, true, false, true, 5) {
		t.Fatal("strict compare above the trivial threshold should refuse equality")
	}
}

func TestByteValueEqualTo(t *testing.T) {
	sp := ByteValue{B: ' '}
	tab := ByteValue{B: '\t'}
	if !sp.EqualTo(tab, false, true, false, 0) {
		t.Fatal("space and tab should compare equal with ignoreWhiteSpace")
	}
	if sp.EqualTo(tab, false, false, false, 0) {
		t.Fatal("space and tab should not compare equal without ignoreWhiteSpace")
	}
}

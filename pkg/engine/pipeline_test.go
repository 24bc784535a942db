package engine

import (
	"bytes"
	"testing"

	"github.com/odvcencio/coremerge/pkg/mergemodel"
	"github.com/odvcencio/coremerge/pkg/options"
)

func saveString(t *testing.T, m *mergemodel.Model) string {
	t.Helper()
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return buf.String()
}

// Scenario 1: pure insertion, two-way.
func TestPureInsertion(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nX\nb\nc\n")

	res, err := Run(a, b, nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := saveString(t, res.Model); got != "a\nX\nb\nc\n" {
		t.Fatalf("save = %q", got)
	}
}

// Scenario 2: pure deletion, two-way; unresolved until choose(B).
func TestPureDeletion(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nc\n")

	res, err := Run(a, b, nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n := res.Model.UnresolvedConflicts(); n != 1 {
		t.Fatalf("unresolved = %d, want 1", n)
	}

	var target *mergemodel.MergeLine
	for _, ml := range res.Model.Lines {
		if ml.Conflict {
			target = ml
		}
	}
	if target == nil {
		t.Fatal("no conflicting MergeLine found")
	}

	res.Model.Choose(target, mergemodel.SrcB)
	if n := res.Model.UnresolvedConflicts(); n != 0 {
		t.Fatalf("unresolved after choose = %d, want 0", n)
	}
	if got := saveString(t, res.Model); got != "a\nc\n" {
		t.Fatalf("save = %q", got)
	}
}

// Scenario 3: three-way clean merge, no conflicts.
func TestThreeWayCleanMerge(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nB\nc\n")
	c := []byte("a\nb\nC\n")

	res, err := Run(a, b, c, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := res.Model.UnresolvedConflicts(); n != 0 {
		t.Fatalf("unresolved = %d, want 0", n)
	}
	if got := saveString(t, res.Model); got != "a\nB\nC\n" {
		t.Fatalf("save = %q", got)
	}
}

// Scenario 4: three-way true conflict.
func TestThreeWayTrueConflict(t *testing.T) {
	a := []byte("x\n")
	b := []byte("y\n")
	c := []byte("z\n")

	res, err := Run(a, b, c, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := res.Model.UnresolvedConflicts(); n != 1 {
		t.Fatalf("unresolved = %d, want 1", n)
	}
	if err := res.Model.Save(&bytes.Buffer{}); err == nil {
		t.Fatal("Save should refuse with unresolved conflicts")
	}
}

// Scenario 5: whitespace-only conflict auto-resolved to C.
func TestWhitespaceOnlyConflictAutoResolved(t *testing.T) {
	a := []byte("foo\n")
	b := []byte("foo \n")
	c := []byte("foo\t\n")

	opt := options.Default()
	opt.IgnoreWhiteSpace = true
	opt.WhitespaceMergeDefault = options.WhitespaceC

	res, err := Run(a, b, c, opt, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := res.Model.UnresolvedConflicts(); n != 0 {
		t.Fatalf("unresolved = %d, want 0", n)
	}
	if got := saveString(t, res.Model); got != "foo\t\n" {
		t.Fatalf("save = %q", got)
	}
}

// Scenario 6: trivial-match suppression keeps a blank-line run from
// swallowing an inserted line.
func TestTrivialMatchSuppression(t *testing.T) {
	var aBuf, bBuf bytes.Buffer
	for i := 0; i < 10; i++ {
		aBuf.WriteString("\n")
	}
	aBuf.WriteString("end\n")

	for i := 0; i < 5; i++ {
		bBuf.WriteString("\n")
	}
	bBuf.WriteString("middle\n")
	for i := 0; i < 5; i++ {
		bBuf.WriteString("\n")
	}
	bBuf.WriteString("end\n")

	opt := options.Default()
	opt.IgnoreTrivialMatches = true
	opt.TrivialMatchThreshold = 5

	res, err := Run(aBuf.Bytes(), bBuf.Bytes(), nil, opt, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, row := range res.D3L.Lines {
		if row.LineA < 0 && row.LineB >= 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one B-only row for the inserted \"middle\" line")
	}
}

// P6: self-merge identity.
func TestSelfMergeIdentity(t *testing.T) {
	a := []byte("one\ntwo\nthree\n")

	res, err := Run(a, a, nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := res.Model.UnresolvedConflicts(); n != 0 {
		t.Fatalf("unresolved = %d, want 0", n)
	}
	for _, ml := range res.Model.Lines {
		if ml.Delta {
			t.Fatalf("self-merge produced a delta: %+v", ml)
		}
	}
	if got := saveString(t, res.Model); got != string(a) {
		t.Fatalf("save = %q, want %q", got, a)
	}
}

// P8: autoSolve is idempotent.
func TestAutoSolveIdempotent(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nX\nb\nc\n")

	res, err := Run(a, b, nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	before := saveString(t, res.Model)
	res.Model.AutoSolve()
	res.Model.AutoSolve()
	after := saveString(t, res.Model)
	if before != after {
		t.Fatalf("autoSolve not idempotent: %q != %q", before, after)
	}
}

// P9: choosing a source twice returns the range to its prior state.
func TestChooseToggle(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nc\n")

	res, err := Run(a, b, nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var target *mergemodel.MergeLine
	for _, ml := range res.Model.Lines {
		if ml.Conflict {
			target = ml
		}
	}
	if target == nil {
		t.Fatal("no conflicting MergeLine found")
	}

	before := len(target.EditLines)
	res.Model.Choose(target, mergemodel.SrcB)
	res.Model.Choose(target, mergemodel.SrcB)
	if len(target.EditLines) != before {
		t.Fatalf("choose toggle: got %d edit lines, want %d", len(target.EditLines), before)
	}
}

// --qall (AutoSolve disabled) forces every delta into a conflict.
func TestQAllForcesConflicts(t *testing.T) {
	a := []byte("a\nb\nc\n")
	b := []byte("a\nX\nb\nc\n")

	opt := options.Default()
	opt.AutoSolve = false

	res, err := Run(a, b, nil, opt, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := res.Model.UnresolvedConflicts(); n == 0 {
		t.Fatal("expected at least one conflict with AutoSolve disabled")
	}
}

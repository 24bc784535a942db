package mergemodel

import (
	"bytes"
	"testing"

	"github.com/odvcencio/coremerge/pkg/diff3model"
	"github.com/odvcencio/coremerge/pkg/options"
)

// buildTwoLineModel builds a two-way, no-conflict model over A="ab\ncd\n",
// B identical. Both rows are DNoChange so they group into a single
// MergeLine with two Sourced edit lines ("ab" at index 0, "cd" at index
// 1), giving the edit-op tests owned, easily-addressed content.
func buildTwoLineModel(t *testing.T) (*Model, []byte) {
	t.Helper()
	d3l := &diff3model.List{Lines: []diff3model.Line{
		{LineA: 0, LineB: 0, LineC: diff3model.Absent, AEqB: true},
		{LineA: 1, LineB: 1, LineC: diff3model.Absent, AEqB: true},
	}}
	display := [][]byte{[]byte("ab"), []byte("cd")}
	m := Build(d3l, false, options.Default(), display, display, nil)
	return m, display[0]
}

func TestMaterializeCopiesOwnedBytes(t *testing.T) {
	m, orig := buildTwoLineModel(t)
	ml := m.Lines[0]

	m.InsertText(ml, 0, 2, []byte("X"), false)

	if string(ml.EditLines[0].Text) != "abX" {
		t.Fatalf("Text = %q, want %q", ml.EditLines[0].Text, "abX")
	}
	if string(orig) != "ab" {
		t.Fatalf("source display buffer was mutated: %q", orig)
	}
}

func TestInsertTextOverwrite(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := m.Lines[0]

	m.InsertText(ml, 0, 0, []byte("XY"), true)
	if string(ml.EditLines[0].Text) != "XY" {
		t.Fatalf("Text = %q, want %q", ml.EditLines[0].Text, "XY")
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := &MergeLine{EditLines: []EditLine{
		{Kind: EditUserText, Text: []byte("ab")},
		{Kind: EditUserText, Text: []byte("cd")},
	}}
	m.Backspace(ml, 1, 0)
	if len(ml.EditLines) != 1 {
		t.Fatalf("EditLines = %+v, want 1 joined line", ml.EditLines)
	}
	if string(ml.EditLines[0].Text) != "abcd" {
		t.Fatalf("joined text = %q, want %q", ml.EditLines[0].Text, "abcd")
	}
}

func TestDeleteAtEndOfLineJoins(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := &MergeLine{EditLines: []EditLine{
		{Kind: EditUserText, Text: []byte("ab")},
		{Kind: EditUserText, Text: []byte("cd")},
	}}
	m.Delete(ml, 0, 2)
	if len(ml.EditLines) != 1 || string(ml.EditLines[0].Text) != "abcd" {
		t.Fatalf("EditLines = %+v, want one joined \"abcd\" line", ml.EditLines)
	}
}

func TestSplitLineAutoIndent(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := &MergeLine{EditLines: []EditLine{
		{Kind: EditUserText, Text: []byte("  foobar")},
	}}
	m.SplitLine(ml, 0, 5, true)
	if len(ml.EditLines) != 2 {
		t.Fatalf("EditLines = %+v, want 2", ml.EditLines)
	}
	if string(ml.EditLines[0].Text) != "  foo" {
		t.Fatalf("head = %q, want %q", ml.EditLines[0].Text, "  foo")
	}
	if string(ml.EditLines[1].Text) != "  bar" {
		t.Fatalf("tail = %q, want auto-indented %q", ml.EditLines[1].Text, "  bar")
	}
}

func TestDeleteSelectionAcrossLines(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := &MergeLine{EditLines: []EditLine{
		{Kind: EditUserText, Text: []byte("hello")},
		{Kind: EditUserText, Text: []byte("world")},
	}}
	m.DeleteSelection(ml, Selection{StartLine: 0, StartCol: 3, EndLine: 1, EndCol: 2})
	if len(ml.EditLines) != 1 {
		t.Fatalf("EditLines = %+v, want 1", ml.EditLines)
	}
	if string(ml.EditLines[0].Text) != "helrld" {
		t.Fatalf("merged text = %q, want %q", ml.EditLines[0].Text, "helrld")
	}
}

func TestPasteMultiLine(t *testing.T) {
	m, _ := buildTwoLineModel(t)
	ml := &MergeLine{EditLines: []EditLine{
		{Kind: EditUserText, Text: []byte("abcd")},
	}}
	m.Paste(ml, 0, 2, [][]byte{[]byte("X"), []byte("Y"), []byte("Z")})
	if len(ml.EditLines) != 3 {
		t.Fatalf("EditLines = %+v, want 3", ml.EditLines)
	}
	if string(ml.EditLines[0].Text) != "abX" {
		t.Fatalf("first = %q, want %q", ml.EditLines[0].Text, "abX")
	}
	if string(ml.EditLines[1].Text) != "Y" {
		t.Fatalf("middle = %q, want %q", ml.EditLines[1].Text, "Y")
	}
	if string(ml.EditLines[2].Text) != "Zcd" {
		t.Fatalf("last = %q, want %q", ml.EditLines[2].Text, "Zcd")
	}
}

func TestChooseGlobalConflictsOnly(t *testing.T) {
	d3l := &diff3model.List{Lines: []diff3model.Line{
		{LineA: 0, LineB: 0, LineC: diff3model.Absent, AEqB: true},
		{LineA: 1, LineB: diff3model.Absent, LineC: diff3model.Absent},
	}}
	display := [][]byte{[]byte("same"), []byte("deleted-in-b")}
	m := Build(d3l, false, options.Default(), display, nil, nil)

	if n := m.UnresolvedConflicts(); n != 1 {
		t.Fatalf("unresolved = %d, want 1", n)
	}
	m.ChooseGlobal(SrcA, true, false)
	if n := m.UnresolvedConflicts(); n != 0 {
		t.Fatalf("unresolved after ChooseGlobal = %d, want 0", n)
	}

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if buf.String() != "same\ndeleted-in-b\n" {
		t.Fatalf("save = %q", buf.String())
	}
}

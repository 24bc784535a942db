package lineprep

import (
	"testing"

	"github.com/odvcencio/coremerge/pkg/options"
)

func bytesOf(t *testing.T, lines []LineData) []string {
	t.Helper()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l.Bytes())
	}
	return out
}

func TestPreprocessSplitsOnNewlineAndStripsCR(t *testing.T) {
	lines, err := Preprocess([]byte("a\r\nb\nc"), options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	got := bytesOf(t, lines.Display)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPreprocessPreserveCR(t *testing.T) {
	opt := options.Default()
	opt.PreserveCR = true
	lines, err := Preprocess([]byte("a\r\nb\n"), opt)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if got := string(lines.Display[0].Bytes()); got != "a\r" {
		t.Fatalf("line 0 = %q, want %q", got, "a\r")
	}
}

func TestPreprocessEmptyInput(t *testing.T) {
	lines, err := Preprocess(nil, options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if lines.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", lines.Len())
	}
}

func TestPreprocessUnterminatedLastLine(t *testing.T) {
	lines, err := Preprocess([]byte("a\nb"), options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if lines.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", lines.Len())
	}
	if string(lines.Display[1].Bytes()) != "b" {
		t.Fatalf("last line = %q, want %q", lines.Display[1].Bytes(), "b")
	}
}

func TestUpperCaseFilterComparisonOnlyNotDisplay(t *testing.T) {
	opt := options.Default()
	opt.UpperCase = true
	lines, err := Preprocess([]byte("Hello\n"), opt)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if string(lines.Display[0].Bytes()) != "Hello" {
		t.Fatalf("display = %q, want unchanged", lines.Display[0].Bytes())
	}
	if string(lines.Comparison[0].Bytes()) != "HELLO" {
		t.Fatalf("comparison = %q, want upper-cased", lines.Comparison[0].Bytes())
	}
}

func TestIsWhiteLine(t *testing.T) {
	lines, err := Preprocess([]byte("  \t\nfoo\n"), options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if !lines.Display[0].IsWhiteLine() {
		t.Fatal("expected whitespace-only line to report IsWhiteLine")
	}
	if lines.Display[1].IsWhiteLine() {
		t.Fatal("did not expect \"foo\" to report IsWhiteLine")
	}
}

func TestWidthExpandsTabs(t *testing.T) {
	lines, err := Preprocess([]byte("\tx\n"), options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if w := lines.Display[0].Width(8); w != 9 {
		t.Fatalf("Width(8) = %d, want 9", w)
	}
}

func TestOccurrenceCountNormalizesWhitespace(t *testing.T) {
	lines, err := Preprocess([]byte("foo\n  foo\nfoo  bar\nfoo bar\n"), options.Default())
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if lines.Comparison[0].OccurrenceCount != 2 {
		t.Fatalf("\"foo\" occurrence count = %d, want 2 (matches \"  foo\" after trimming)", lines.Comparison[0].OccurrenceCount)
	}
	if lines.Comparison[2].OccurrenceCount != 2 {
		t.Fatalf("\"foo  bar\" occurrence count = %d, want 2 (collapses to \"foo bar\")", lines.Comparison[2].OccurrenceCount)
	}
}

// Package lineprep implements the preprocessor stage (spec §4.1): it turns
// a raw byte buffer into an ordered sequence of LineData plus per-line
// summary attributes, producing a display view and (when filters are
// configured) a separate comparison view.
package lineprep

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/odvcencio/coremerge/pkg/options"
)

// Buffer is the owned, immutable byte sequence backing a LineData view.
// Its lifetime spans the session that created it.
type Buffer struct {
	Data []byte
}

// LineData is a non-owning view over a Buffer: a pointer+length slice plus
// derived summary attributes. It must never outlive its Buffer.
type LineData struct {
	buf                *Buffer
	Start              int
	Length             int
	FirstNonWhiteOffset int
	OccurrenceCount    int
}

// Bytes returns the line's raw bytes (display or comparison, depending on
// which Buffer the LineData was built against).
func (l LineData) Bytes() []byte {
	if l.buf == nil {
		return nil
	}
	return l.buf.Data[l.Start : l.Start+l.Length]
}

// IsWhiteLine reports whether the line is empty or all whitespace.
func (l LineData) IsWhiteLine() bool {
	return l.FirstNonWhiteOffset == l.Length
}

// Width returns the displayed width of the line assuming tabs expand to
// the next multiple of tabSize.
func (l LineData) Width(tabSize int) int {
	if tabSize <= 0 {
		tabSize = 1
	}
	w := 0
	for _, b := range l.Bytes() {
		if b == '\t' {
			w = ((w / tabSize) + 1) * tabSize
		} else {
			w++
		}
	}
	return w
}

// Lines is the result of preprocessing one input buffer: parallel display
// and comparison LineData sequences of identical length. When no filter is
// configured, Display and Comparison share the same underlying Buffer and
// are byte-identical per line.
type Lines struct {
	DisplayBuf    *Buffer
	ComparisonBuf *Buffer
	Display       []LineData
	Comparison    []LineData
}

// Len returns the number of lines.
func (l *Lines) Len() int { return len(l.Display) }

// Preprocess splits raw into lines per spec §4.1 and builds both the
// display and comparison views according to opt's filters. Empty input
// yields zero lines; this is not an error (spec §7 input-absent).
func Preprocess(raw []byte, opt options.Options) (*Lines, error) {
	dispBuf := &Buffer{Data: raw}
	display := splitLines(dispBuf, raw, opt.PreserveCR)

	needsFilter := opt.UpperCase || opt.IgnoreNumbers || opt.PreprocessorCmd != "" || opt.LineMatchPreprocessorCmd != ""
	var compBuf *Buffer
	var comparison []LineData

	if !needsFilter {
		compBuf = dispBuf
		comparison = display
	} else {
		compRaw, err := applyFilters(raw, opt)
		if err != nil {
			return nil, err
		}
		compBuf = &Buffer{Data: compRaw}
		comparison = splitLines(compBuf, compRaw, opt.PreserveCR)
		// The filters only ever rewrite bytes within lines; they never
		// add or remove line terminators, so the two views stay the same
		// length. Should the line counts ever differ, fall back to
		// treating the comparison view as absent rather than aligning
		// mismatched line counts.
		if len(comparison) != len(display) {
			compBuf = dispBuf
			comparison = display
		}
	}

	lines := &Lines{DisplayBuf: dispBuf, ComparisonBuf: compBuf, Display: display, Comparison: comparison}
	prepareOccurrences(lines.Comparison, opt)
	return lines, nil
}

// splitLines implements the line-termination rule: a line terminates at
// '\n'; a preceding '\r' is stripped unless preserveCR. The last line may
// be unterminated and is still a line.
func splitLines(buf *Buffer, data []byte, preserveCR bool) []LineData {
	if len(data) == 0 {
		return nil
	}

	var lines []LineData
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] != '\n' {
			continue
		}
		end := i
		if !preserveCR && end > start && data[end-1] == '\r' {
			end--
		}
		lines = append(lines, makeLineData(buf, start, end))
		start = i + 1
	}
	if start < len(data) {
		// Last line is unterminated; it still counts as a line.
		lines = append(lines, makeLineData(buf, start, len(data)))
	}
	return lines
}

func makeLineData(buf *Buffer, start, end int) LineData {
	ld := LineData{buf: buf, Start: start, Length: end - start}
	b := ld.Bytes()
	fw := len(b)
	for i, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			fw = i
			break
		}
	}
	ld.FirstNonWhiteOffset = fw
	return ld
}

// applyFilters produces the comparison-view raw bytes by applying
// upper-casing and numeric-character stripping. PreprocessorCmd and
// LineMatchPreprocessorCmd are not executed here or anywhere else in this
// module, and there is no hook for running them; they leave the
// comparison bytes unchanged.
func applyFilters(raw []byte, opt options.Options) ([]byte, error) {
	s := string(raw)
	if opt.UpperCase {
		s = strings.ToUpper(s)
	}
	if opt.IgnoreNumbers {
		s = stripNumbers(s)
	}
	return []byte(s), nil
}

func stripNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// prepareOccurrences computes, for each line, a stable whitespace-
// normalized key (leading whitespace stripped, interior whitespace runs
// collapsed) and writes back the number of times that key appears in the
// source into OccurrenceCount. Used to suppress trivial matches on very
// common lines (spec §4.2).
func prepareOccurrences(lines []LineData, opt options.Options) {
	if len(lines) == 0 {
		return
	}
	counts := make(map[string]int, len(lines))
	keys := make([]string, len(lines))
	for i, l := range lines {
		k := normalizeKey(l.Bytes())
		keys[i] = k
		counts[k]++
	}
	for i := range lines {
		lines[i].OccurrenceCount = counts[keys[i]]
	}
}

func normalizeKey(b []byte) string {
	b = bytes.TrimLeft(b, " \t\r")
	var out strings.Builder
	out.Grow(len(b))
	inWhite := false
	for _, c := range b {
		if c == ' ' || c == '\t' {
			inWhite = true
			continue
		}
		if inWhite {
			out.WriteByte(' ')
			inWhite = false
		}
		out.WriteByte(c)
	}
	return out.String()
}

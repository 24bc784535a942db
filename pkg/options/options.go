// Package options holds the comparison/merge configuration threaded
// explicitly through every pipeline stage. The original engine kept
// tabSize, ignoreWhiteSpace, ignoreTrivialMatches and autoSolve as
// process-wide globals; this is a design defect the Go port repairs by
// passing a single Options value into every call that needs it.
package options

// LineEnding selects the terminator written by the merge-model builder's
// Save operation.
type LineEnding int

const (
	LF   LineEnding = iota // "\n"
	CRLF                   // "\r\n"
)

// WhitespaceDefault names the source a caller wants auto-picked for a
// MergeLine that turns out to be whitespace-only (see MergeLine's
// bWhiteSpaceConflict relaxation).
type WhitespaceDefault int

const (
	WhitespaceNone WhitespaceDefault = iota // leave as a conflict
	WhitespaceA
	WhitespaceB
	WhitespaceC
)

// defaultTrivialMatchThreshold is the hard-coded "5" from the original
// source (see spec Open Questions): occurrenceCount at or above this
// disables strict equality for the line, preventing boilerplate lines
// from anchoring bad matches. Exposed as a field so callers can tune it,
// but defaulted here for behavior parity.
const defaultTrivialMatchThreshold = 5

// Options is passed by value into every stage that needs comparison
// settings. Never hold one behind a pointer in shared state: sessions
// each get their own copy so that changing an option for one does not
// perturb another (see session package).
type Options struct {
	// Preprocessor filters (spec §4.1).
	PreserveCR bool
	UpperCase  bool

	// IgnoreNumbers strips digits from the comparison view only; the
	// display view is untouched.
	IgnoreNumbers bool

	// PreprocessorCmd and LineMatchPreprocessorCmd are carried and
	// persisted, but no stage executes them: when either is non-empty,
	// lineprep builds a separate comparison view with only the UpperCase
	// and IgnoreNumbers filters applied. They never touch the display
	// view.
	PreprocessorCmd          string
	LineMatchPreprocessorCmd string

	// TabSize controls LineData.Width() tab expansion.
	TabSize int

	// IgnoreWhiteSpace and IgnoreTrivialMatches parameterize equal().
	IgnoreWhiteSpace     bool
	IgnoreTrivialMatches bool

	// TrivialMatchThreshold is the occurrenceCount cutoff at or above
	// which a strict match is refused when IgnoreTrivialMatches is set.
	TrivialMatchThreshold int

	// AutoSolve runs the deterministic merge-model classifications;
	// when false (the --qall CLI flag), every delta becomes a conflict.
	AutoSolve bool

	// WhitespaceMergeDefault picks the auto-resolution source for
	// whitespace-only conflicts, or WhitespaceNone to leave them as
	// conflicts.
	WhitespaceMergeDefault WhitespaceDefault

	// LineEnding controls the terminator Save() writes.
	LineEnding LineEnding

	// FastLineMatch selects the external Myers-style line matcher
	// (pkg/linediff's sergi/go-diff backend) instead of the engine's own
	// calcDiff for the line-level pass only (spec §4.10). Character-level
	// fine diffing always uses the engine's own matcher.
	FastLineMatch bool

	// MaxFineDiffSearchLength bounds the char-level calcDiff search
	// window (spec §4.7).
	MaxFineDiffSearchLength int
}

// Default returns the Options a fresh session starts with.
func Default() Options {
	return Options{
		TabSize:                 8,
		TrivialMatchThreshold:   defaultTrivialMatchThreshold,
		AutoSolve:               true,
		WhitespaceMergeDefault:  WhitespaceNone,
		LineEnding:              LF,
		MaxFineDiffSearchLength: 500,
	}
}

// Package engine wires the five pipeline stages together (spec §2):
// preprocess each input, pairwise-match A↔B (and, when C is given, A↔C
// and B↔C), fold the three into a Diff3LineList, fine-diff every
// changed row, and build the editable merge model over the result.
package engine

import (
	"fmt"

	"github.com/odvcencio/coremerge/pkg/diff3model"
	"github.com/odvcencio/coremerge/pkg/engerr"
	"github.com/odvcencio/coremerge/pkg/finediff"
	"github.com/odvcencio/coremerge/pkg/lineprep"
	"github.com/odvcencio/coremerge/pkg/linediff"
	"github.com/odvcencio/coremerge/pkg/mergemodel"
	"github.com/odvcencio/coremerge/pkg/options"
)

// Result is everything a caller needs after running the pipeline once:
// the preprocessed inputs (kept around for Save's display-byte lookups
// and pkg/search), the aligned Diff3LineList, and the built merge model.
type Result struct {
	A, B, C *lineprep.Lines
	HasC    bool
	D3L     *diff3model.List
	Model   *mergemodel.Model
}

// Run executes the full pipeline. c may be nil for a two-way comparison;
// cancelled is polled inside the line matcher and the fine differ and
// after each of those stages (spec §5), and may be nil. Preprocessing,
// alignment and merge-model building do not poll it.
func Run(aRaw, bRaw, cRaw []byte, opt options.Options, cancelled func() bool) (*Result, error) {
	a, err := lineprep.Preprocess(aRaw, opt)
	if err != nil {
		return nil, fmt.Errorf("engine: preprocess A: %w", err)
	}
	b, err := lineprep.Preprocess(bRaw, opt)
	if err != nil {
		return nil, fmt.Errorf("engine: preprocess B: %w", err)
	}

	hasC := cRaw != nil
	var c *lineprep.Lines
	if hasC {
		c, err = lineprep.Preprocess(cRaw, opt)
		if err != nil {
			return nil, fmt.Errorf("engine: preprocess C: %w", err)
		}
	} else {
		c = &lineprep.Lines{}
	}

	eo := linediff.EqualOptions{
		IgnoreWhiteSpace:     opt.IgnoreWhiteSpace,
		IgnoreTrivialMatches: opt.IgnoreTrivialMatches,
		TrivialThreshold:     opt.TrivialMatchThreshold,
	}

	ab := lineMatch(a, b, opt, eo, cancelled)
	if cancelled != nil && cancelled() {
		return nil, engerr.ErrCancelled
	}

	var ac, bc linediff.DiffList
	if hasC {
		ac = lineMatch(a, c, opt, eo, cancelled)
		bc = lineMatch(b, c, opt, eo, cancelled)
		if cancelled != nil && cancelled() {
			return nil, engerr.ErrCancelled
		}
	}

	contentA := buildContent(a)
	contentB := buildContent(b)
	var contentC diff3model.Content
	if hasC {
		contentC = buildContent(c)
	}

	d3l := diff3model.Build(ab, ac, bc, contentA, contentB, contentC, eo, hasC)

	if err := diff3model.DebugLineCheck(d3l, a.Len(), b.Len(), c.Len(), hasC); err != nil {
		return nil, err
	}

	aDisplay, bDisplay, cDisplay := displayBytes(a), displayBytes(b), displayBytes(c)

	finediff.Run(d3l, finediff.PairAB, aDisplay, bDisplay, cDisplay, eo, opt.MaxFineDiffSearchLength, cancelled)
	if hasC {
		finediff.Run(d3l, finediff.PairBC, aDisplay, bDisplay, cDisplay, eo, opt.MaxFineDiffSearchLength, cancelled)
		finediff.Run(d3l, finediff.PairCA, aDisplay, bDisplay, cDisplay, eo, opt.MaxFineDiffSearchLength, cancelled)
	}
	if cancelled != nil && cancelled() {
		return nil, engerr.ErrCancelled
	}

	model := mergemodel.Build(d3l, hasC, opt, aDisplay, bDisplay, cDisplay)

	return &Result{A: a, B: b, C: c, HasC: hasC, D3L: d3l, Model: model}, nil
}

// lineMatch runs the line-level pairwise pass, using the external Myers
// matcher instead of the engine's own calcDiff when opt.FastLineMatch is
// set (spec §4.10).
func lineMatch(x, y *lineprep.Lines, opt options.Options, eo linediff.EqualOptions, cancelled func() bool) linediff.DiffList {
	if opt.FastLineMatch {
		return linediff.CalcDiffExternal(toStrings(x.Comparison), toStrings(y.Comparison))
	}
	return linediff.CalcDiff(toSource(x.Comparison), toSource(y.Comparison), linediff.MatchLine, len(x.Comparison)+len(y.Comparison)+1, eo, cancelled)
}

func toSource(lines []lineprep.LineData) linediff.Source {
	vals := make(linediff.Sources, len(lines))
	for i, l := range lines {
		vals[i] = linediff.LineValue{Bytes: l.Bytes(), OccurrenceCount: l.OccurrenceCount}
	}
	return vals
}

func toStrings(lines []lineprep.LineData) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l.Bytes())
	}
	return out
}

func buildContent(l *lineprep.Lines) diff3model.Content {
	n := l.Len()
	values := make([]linediff.LineValue, n)
	white := make([]bool, n)
	for i := 0; i < n; i++ {
		ld := l.Comparison[i]
		values[i] = linediff.LineValue{Bytes: ld.Bytes(), OccurrenceCount: ld.OccurrenceCount}
		white[i] = l.Display[i].IsWhiteLine()
	}
	return diff3model.Content{Values: values, White: white}
}

func displayBytes(l *lineprep.Lines) [][]byte {
	out := make([][]byte, l.Len())
	for i, ld := range l.Display {
		out[i] = ld.Bytes()
	}
	return out
}

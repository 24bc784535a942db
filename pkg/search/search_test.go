package search

import (
	"testing"

	"github.com/odvcencio/coremerge/pkg/engine"
	"github.com/odvcencio/coremerge/pkg/mergemodel"
	"github.com/odvcencio/coremerge/pkg/options"
)

func buildModel(t *testing.T, a, b string) *mergemodel.Model {
	t.Helper()
	res, err := engine.Run([]byte(a), []byte(b), nil, options.Default(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res.Model
}

func TestSearchForward(t *testing.T) {
	m := buildModel(t, "alpha\nbeta\ngamma\n", "alpha\nbeta\ngamma\n")

	r, ok := Search(m, "gamma", true, 0, 0, 8, false)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Row != 2 || r.Col != 0 {
		t.Fatalf("got %+v, want row 2 col 0", r)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	m := buildModel(t, "Alpha\n", "Alpha\n")

	if _, ok := Search(m, "alpha", true, 0, 0, 8, false); ok {
		t.Fatal("strict search should not match differing case")
	}
	if _, ok := Search(m, "alpha", false, 0, 0, 8, false); !ok {
		t.Fatal("case-insensitive search should match")
	}
}

func TestSearchTabExpandedColumn(t *testing.T) {
	m := buildModel(t, "\tx\n", "\tx\n")

	r, ok := Search(m, "x", true, 0, 0, 8, false)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Col != 8 {
		t.Fatalf("col = %d, want 8 (tab expands to next multiple of 8)", r.Col)
	}
}

func TestSearchNoMatch(t *testing.T) {
	m := buildModel(t, "one\n", "one\n")

	if _, ok := Search(m, "missing", true, 0, 0, 8, true); ok {
		t.Fatal("expected no match")
	}
}

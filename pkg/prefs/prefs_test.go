package prefs

import (
	"path/filepath"
	"testing"

	"github.com/odvcencio/coremerge/pkg/options"
)

func TestLoadMissingFileIsZeroValue(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f != (File{}) {
		t.Fatalf("expected zero File, got %+v", f)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.toml")
	want := File{
		TabSize:                4,
		IgnoreWhiteSpace:       true,
		PreprocessorCmd:        "strip-bom",
		WhitespaceMergeDefault: "C",
		LineEnding:             "crlf",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestApplyToLeavesZeroFieldsUntouched(t *testing.T) {
	opt := options.Default()
	opt.TabSize = 8
	opt.PreprocessorCmd = "keep-me"

	f := File{} // everything zero/empty except IgnoreWhiteSpace, which is explicit
	out := f.ApplyTo(opt)

	if out.TabSize != 8 {
		t.Fatalf("TabSize = %d, want unchanged 8", out.TabSize)
	}
	if out.PreprocessorCmd != "keep-me" {
		t.Fatalf("PreprocessorCmd = %q, want unchanged", out.PreprocessorCmd)
	}
	if out.IgnoreWhiteSpace != false {
		t.Fatal("IgnoreWhiteSpace should be overwritten by the explicit (false) field value")
	}
}

func TestFromOptionsApplyToRoundTrip(t *testing.T) {
	opt := options.Default()
	opt.TabSize = 2
	opt.IgnoreWhiteSpace = true
	opt.WhitespaceMergeDefault = options.WhitespaceB
	opt.LineEnding = options.CRLF

	f := FromOptions(opt)
	back := f.ApplyTo(options.Default())

	if back.TabSize != 2 || back.IgnoreWhiteSpace != true ||
		back.WhitespaceMergeDefault != options.WhitespaceB || back.LineEnding != options.CRLF {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

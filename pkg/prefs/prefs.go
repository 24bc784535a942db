// Package prefs persists the subset of options.Options that spec §6
// calls "persisted state": tab size, ignore-whitespace, preprocessor
// commands, whitespace-conflict default, and output line ending.
// Font/color choices belong to a presenter and are never written here.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/coremerge/pkg/options"
)

// File is the on-disk shape of coremerge/prefs.toml.
type File struct {
	TabSize                  int    `toml:"tab_size"`
	IgnoreWhiteSpace         bool   `toml:"ignore_whitespace"`
	PreprocessorCmd          string `toml:"preprocessor_cmd"`
	LineMatchPreprocessorCmd string `toml:"line_match_preprocessor_cmd"`
	WhitespaceMergeDefault   string `toml:"whitespace_merge_default"` // "", "A", "B", "C"
	LineEnding               string `toml:"line_ending"`              // "lf" or "crlf"
}

// Path returns the default preferences file location,
// "${os.UserConfigDir()}/coremerge/prefs.toml".
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: %w", err)
	}
	return filepath.Join(dir, "coremerge", "prefs.toml"), nil
}

// Load reads and decodes the preferences file at path. A missing file is
// not an error: it returns the zero File, for which ApplyTo changes
// nothing but IgnoreWhiteSpace (set to false).
func Load(path string) (File, error) {
	var f File
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return f, fmt.Errorf("prefs: decode %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path, creating its parent directory if needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer w.Close()
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("prefs: encode %s: %w", path, err)
	}
	return nil
}

// FromOptions projects the persisted subset of opt into a File.
func FromOptions(opt options.Options) File {
	f := File{
		TabSize:                  opt.TabSize,
		IgnoreWhiteSpace:         opt.IgnoreWhiteSpace,
		PreprocessorCmd:          opt.PreprocessorCmd,
		LineMatchPreprocessorCmd: opt.LineMatchPreprocessorCmd,
	}
	switch opt.WhitespaceMergeDefault {
	case options.WhitespaceA:
		f.WhitespaceMergeDefault = "A"
	case options.WhitespaceB:
		f.WhitespaceMergeDefault = "B"
	case options.WhitespaceC:
		f.WhitespaceMergeDefault = "C"
	}
	if opt.LineEnding == options.CRLF {
		f.LineEnding = "crlf"
	} else {
		f.LineEnding = "lf"
	}
	return f
}

// ApplyTo overlays f's fields onto opt, leaving any field f leaves at its
// zero value untouched (a zero tab size or empty line-ending string means
// "not set" rather than "set to zero"). The one exception is the boolean
// IgnoreWhiteSpace, which is always copied, so false overwrites true.
func (f File) ApplyTo(opt options.Options) options.Options {
	if f.TabSize > 0 {
		opt.TabSize = f.TabSize
	}
	opt.IgnoreWhiteSpace = f.IgnoreWhiteSpace
	if f.PreprocessorCmd != "" {
		opt.PreprocessorCmd = f.PreprocessorCmd
	}
	if f.LineMatchPreprocessorCmd != "" {
		opt.LineMatchPreprocessorCmd = f.LineMatchPreprocessorCmd
	}
	switch f.WhitespaceMergeDefault {
	case "A":
		opt.WhitespaceMergeDefault = options.WhitespaceA
	case "B":
		opt.WhitespaceMergeDefault = options.WhitespaceB
	case "C":
		opt.WhitespaceMergeDefault = options.WhitespaceC
	}
	switch f.LineEnding {
	case "crlf":
		opt.LineEnding = options.CRLF
	case "lf":
		opt.LineEnding = options.LF
	}
	return opt
}

package mergemodel

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/odvcencio/coremerge/pkg/engerr"
	"github.com/odvcencio/coremerge/pkg/options"
)

// Save writes the merge result to w, refusing when any MergeLine still
// carries an unresolved conflict (spec §4.8, §8 P10). A Removed
// placeholder contributes nothing; every other edit line is written
// followed by the Options-selected terminator.
func (m *Model) Save(w io.Writer) error {
	if n := m.UnresolvedConflicts(); n > 0 {
		return fmt.Errorf("%w: %d range(s)", engerr.ErrUnresolvedConflicts, n)
	}

	term := []byte("\n")
	if m.Opt.LineEnding == options.CRLF {
		term = []byte("\r\n")
	}

	bw := bufio.NewWriter(w)
	for _, ml := range m.Lines {
		for _, el := range ml.EditLines {
			if el.Kind == EditRemoved {
				continue
			}
			b := m.LineBytes(el)
			if _, err := bw.Write(b); err != nil {
				return fmt.Errorf("%w: %v", engerr.ErrSaveIO, err)
			}
			if _, err := bw.Write(term); err != nil {
				return fmt.Errorf("%w: %v", engerr.ErrSaveIO, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", engerr.ErrSaveIO, err)
	}
	return nil
}

// SaveFile writes the merge result to path, renaming any pre-existing
// file at path to path+".orig" first when keepBackup is set (spec §4.8).
// The rename and write are not atomic with each other: a crash between
// them can leave path missing with only the .orig present, a tradeoff
// accepted to avoid a temp-file-plus-rename dance the original engine
// never did either.
func (m *Model) SaveFile(path string, keepBackup bool) error {
	if n := m.UnresolvedConflicts(); n > 0 {
		return fmt.Errorf("%w: %d range(s)", engerr.ErrUnresolvedConflicts, n)
	}

	if keepBackup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+".orig"); err != nil {
				return fmt.Errorf("%w: backup rename: %v", engerr.ErrSaveIO, err)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", engerr.ErrSaveIO, err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", engerr.ErrSaveIO, err)
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/coremerge/pkg/options"
	"github.com/odvcencio/coremerge/pkg/prefs"
)

// commonFlags holds the CLI flags shared by the diff and merge commands
// (spec §6).
type commonFlags struct {
	base         string
	output       string
	auto         bool
	qall         bool
	l1, l2, l3   string
	fastLineDiff bool
	noColor      bool
	diagDir      string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base", "", "explicit base file (A)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path; enables merge mode")
	cmd.Flags().BoolVar(&f.auto, "auto", false, "exit 0 after automatic save if every conflict auto-solved (requires --output)")
	cmd.Flags().BoolVar(&f.qall, "qall", false, "never auto-solve; every delta becomes a conflict")
	cmd.Flags().StringVar(&f.l1, "L1", "", "display alias for input 1")
	cmd.Flags().StringVar(&f.l2, "L2", "", "display alias for input 2")
	cmd.Flags().StringVar(&f.l3, "L3", "", "display alias for input 3")
	cmd.Flags().BoolVar(&f.fastLineDiff, "fast-line-diff", false, "use the external Myers-style line matcher instead of the engine's own")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colorized output")
	cmd.Flags().StringVar(&f.diagDir, "diag-dir", "", "directory for internal-error diagnostic bundles (default: OS temp dir)")
}

// buildOptions loads persisted preferences, overlays them onto the
// default Options, then applies the command-line flags that map onto
// Options fields.
func (f *commonFlags) buildOptions() options.Options {
	opt := options.Default()
	if path, err := prefs.Path(); err == nil {
		if file, err := prefs.Load(path); err == nil {
			opt = file.ApplyTo(opt)
		}
	}
	opt.AutoSolve = !f.qall
	opt.FastLineMatch = f.fastLineDiff
	return opt
}

func (f *commonFlags) alias(def, flag string) string {
	if flag != "" {
		return flag
	}
	return def
}

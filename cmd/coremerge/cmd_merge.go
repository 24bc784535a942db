package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/coremerge/pkg/engine"
)

func newMergeCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "merge [BASE] B [C]",
		Short: "Merge two or three inputs, optionally saving the result",
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.base != "" {
				return cobra.RangeArgs(1, 2)(cmd, args)
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// resolveInputs implements spec §6's positional argument rule: with
// --base given, the remaining one or two positionals are B and C; with
// no --base, the leading positional is the base (A) and the rest are B
// and C.
func resolveInputs(args []string, flagBase string) (basePath, bPath, cPath string) {
	if flagBase != "" {
		basePath = flagBase
		bPath = args[0]
		if len(args) > 1 {
			cPath = args[1]
		}
		return
	}
	basePath = args[0]
	bPath = args[1]
	if len(args) > 2 {
		cPath = args[2]
	}
	return
}

func runMerge(cmd *cobra.Command, args []string, flags *commonFlags) error {
	if flags.auto && flags.output == "" {
		return fmt.Errorf("merge: --auto requires --output")
	}

	opt := flags.buildOptions()

	basePath, bPath, cPath := resolveInputs(args, flags.base)

	base, err := os.ReadFile(basePath)
	if err != nil {
		return fmt.Errorf("merge: read %s: %w", basePath, err)
	}
	b, err := os.ReadFile(bPath)
	if err != nil {
		return fmt.Errorf("merge: read %s: %w", bPath, err)
	}
	var c []byte
	if cPath != "" {
		c, err = os.ReadFile(cPath)
		if err != nil {
			return fmt.Errorf("merge: read %s: %w", cPath, err)
		}
	}

	res, err := engine.Run(base, b, c, opt, nil)
	if err != nil {
		return reportEngineError(cmd, flags, err, "merge", len(base), len(b), len(c))
	}

	if flags.output == "" {
		if err := res.Model.Save(cmd.OutOrStdout()); err != nil {
			return err
		}
		return nil
	}

	if err := res.Model.SaveFile(flags.output, true); err != nil {
		return err
	}
	return nil
}

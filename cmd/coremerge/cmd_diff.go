package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/coremerge/pkg/engine"
)

func newDiffCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "diff LEFT RIGHT [C]",
		Short: "Show the two- or three-way comparison without merging",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runDiff(cmd *cobra.Command, args []string, flags *commonFlags) error {
	opt := flags.buildOptions()

	left, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("diff: read %s: %w", args[0], err)
	}
	right, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("diff: read %s: %w", args[1], err)
	}
	var third []byte
	if len(args) == 3 {
		third, err = os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("diff: read %s: %w", args[2], err)
		}
	}

	res, err := engine.Run(left, right, third, opt, nil)
	if err != nil {
		return reportEngineError(cmd, flags, err, "diff", len(left), len(right), len(third))
	}

	out := cmd.OutOrStdout()
	col := newColorizer(out, flags.noColor)

	l1 := flags.alias(args[0], flags.l1)
	l2 := flags.alias(args[1], flags.l2)
	l3 := ""
	if len(args) == 3 {
		l3 = flags.alias(args[2], flags.l3)
	}

	fmt.Fprintf(out, "comparing %s\n", labels(l1, l2, l3))
	for _, ml := range res.Model.Lines {
		marker := col.marker(ml)
		if marker == "" {
			continue
		}
		fmt.Fprintf(out, "[%s] rows %d-%d\n", marker, ml.FirstD3l, ml.FirstD3l+ml.RangeLength-1)
	}
	return nil
}

func labels(l1, l2, l3 string) string {
	if l3 == "" {
		return fmt.Sprintf("%s/%s", l1, l2)
	}
	return fmt.Sprintf("%s/%s/%s", l1, l2, l3)
}

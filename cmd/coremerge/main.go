package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/coremerge/pkg/engerr"
)

func main() {
	root := &cobra.Command{
		Use:   "coremerge",
		Short: "Three-way line/character diff and merge engine",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newMergeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, engerr.ErrUnresolvedConflicts) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "coremerge 0.1.0-dev")
		},
	}
}

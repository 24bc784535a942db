package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/coremerge/pkg/diagdump"
	"github.com/odvcencio/coremerge/pkg/engerr"
)

// reportEngineError translates an engine error into the process's exit
// behavior: cancellation is never reachable from a CLI invocation (no
// cancel button exists here) but is handled for completeness, and an
// internal-error invariant failure triggers a diagnostic capture (spec
// §4.12) before the error is returned to cobra for the usual
// stderr-and-exit-2 handling.
func reportEngineError(cmd *cobra.Command, flags *commonFlags, err error, stage string, sizeA, sizeB, sizeC int) error {
	if errors.Is(err, engerr.ErrCancelled) {
		return err
	}
	if errors.Is(err, engerr.ErrInternal) {
		bundle := diagdump.Bundle{
			Stage: stage,
			SizeA: sizeA,
			SizeB: sizeB,
			SizeC: sizeC,
			HasC:  sizeC > 0,
			Cause: err.Error(),
		}
		if path, dumpErr := diagdump.Capture(flags.diagDir, bundle, time.Now()); dumpErr == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "internal error; diagnostic bundle written to %s\n", path)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "internal error; diagnostic capture also failed: %v\n", dumpErr)
		}
	}
	return err
}

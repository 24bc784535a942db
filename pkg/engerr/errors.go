// Package engerr holds the sentinel error values the engine's stages use
// to classify failures per spec §7. Callers check them with errors.Is;
// no stage swallows an error or publishes a partial result alongside one.
package engerr

import "errors"

var (
	// ErrCancelled means the caller's cancellation predicate fired mid
	// stage. Not a failure: the caller should discard partial state and
	// leave the session usable.
	ErrCancelled = errors.New("operation cancelled")

	// ErrInternal wraps an invariant-check failure (line-projection,
	// DiffList summation). It invalidates the current result; the host
	// stays alive. See pkg/diagdump for the accompanying crash bundle.
	ErrInternal = errors.New("internal error: invariant check failed")

	// ErrUnresolvedConflicts is returned by Save when MergeLines with an
	// unresolved conflict remain (spec §4.6 Modified count, §8 P10).
	ErrUnresolvedConflicts = errors.New("save refused: unresolved conflicts remain")

	// ErrSaveIO wraps an I/O failure during Save. modified stays true so
	// the caller can retry.
	ErrSaveIO = errors.New("save failed")
)

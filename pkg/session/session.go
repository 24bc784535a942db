// Package session wraps one open A/B/C comparison in a fingerprinted,
// cancellable handle (spec §4.11, §5). It adds no algorithm: it exists so
// a long-running driver holding several open comparisons can recognize a
// repeated recompute request as a no-op and can hand callers a stable
// identifier for progress reporting and cancellation.
package session

import (
	"context"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint is the BLAKE2b-256 hash of a session's three display
// buffers, concatenated in A, B, C order with a NUL separator so that
// e.g. {"ab", "c"} and {"a", "bc"} never collide.
type Fingerprint [blake2b.Size256]byte

// NewFingerprint hashes the given display buffers (C may be nil for a
// two-way session).
func NewFingerprint(a, b, c []byte) Fingerprint {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an oversized key, and nil is
		// never oversized.
		panic(err)
	}
	h.Write(a)
	h.Write([]byte{0})
	h.Write(b)
	h.Write([]byte{0})
	h.Write(c)
	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// ID is a sortable, collision-resistant session identifier handed back
// to callers for progress reporting and cancellation.
type ID string

// NewID mints a fresh session ID. entropy must be a monotonic,
// non-random source (see ulid.Monotonic) so IDs minted within the same
// process stay strictly increasing for a stable display sort order.
func NewID(entropy ulid.MonotonicReader) ID {
	return ID(ulid.MustNew(ulid.Now(), entropy).String())
}

// Progress is the caller-supplied hook stage drivers call between
// outer-loop iterations (spec §5): Step reports coarse-grained progress
// (0..total), and Cancelled is polled to decide whether to unwind.
type Progress interface {
	Step(done, total int)
	Cancelled() bool
}

// Session is one open comparison: the last fingerprint it was built
// from, its identifier, and the cancellation scope for any pipeline run
// currently in flight on it.
type Session struct {
	ID          ID
	Fingerprint Fingerprint

	cancel context.CancelFunc
}

// New creates a session with the given ID and initial fingerprint.
func New(id ID, fp Fingerprint) *Session {
	return &Session{ID: id, Fingerprint: fp}
}

// NeedsRecompute reports whether fp differs from the session's last
// recorded fingerprint; callers should skip stages 2-5 of the pipeline
// entirely when it returns false.
func (s *Session) NeedsRecompute(fp Fingerprint) bool {
	return s.Fingerprint != fp
}

// Begin records fp as current and returns a context cancelled by a
// subsequent call to Cancel, for passing down as the pipeline's
// cancellation scope. Any context from a prior, still-running Begin is
// cancelled first: a session runs at most one pipeline pass at a time
// (spec §5: no operation is re-entrant).
func (s *Session) Begin(ctx context.Context, fp Fingerprint) context.Context {
	if s.cancel != nil {
		s.cancel()
	}
	s.Fingerprint = fp
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx
}

// Cancel aborts the in-flight pipeline pass on this session, if any.
func (s *Session) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// CancelledFunc adapts a context.Context into the plain "cancelled?"
// predicate pkg/engine, pkg/linediff and pkg/finediff expect.
func CancelledFunc(ctx context.Context) func() bool {
	return func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}
}

// Package diagdump writes the diagnostic bundle described in spec §4.12:
// a small JSON snapshot captured when an invariant check fails, written
// zstd-compressed next to the session's temp directory so it can be
// attached to a bug report. Capture is best-effort and never blocks the
// caller's error return.
package diagdump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Bundle is the JSON payload captured on an internal-error invariant
// failure.
type Bundle struct {
	Stage      string `json:"stage"`
	SizeA      int    `json:"size_a"`
	SizeB      int    `json:"size_b"`
	SizeC      int    `json:"size_c"`
	HasC       bool   `json:"has_c"`
	Cause      string `json:"cause"`
	Diff3Lines []Row  `json:"diff3_lines,omitempty"`
}

// Row is a minimal, JSON-friendly snapshot of one Diff3Line, enough to
// reproduce the failing alignment without dragging in the full
// diff3model type (which this package must not import, to stay usable
// from any stage including ones diff3model itself cannot see).
type Row struct {
	LineA int  `json:"a"`
	LineB int  `json:"b"`
	LineC int  `json:"c"`
	AEqB  bool `json:"a_eq_b"`
	AEqC  bool `json:"a_eq_c"`
	BEqC  bool `json:"b_eq_c"`
}

// Capture serializes bundle to JSON, zstd-compresses it, and writes it
// under dir (os.TempDir() if dir is empty) as
// "coremerge-diag-<unix-nanos>.json.zst". It returns the path written, or
// an error describing why capture failed — callers should log that error
// and otherwise ignore it; capture failing must never mask the original
// invariant failure.
func Capture(dir string, bundle Bundle, now time.Time) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("diagdump: %w", err)
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return "", fmt.Errorf("diagdump: marshal: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("diagdump: %w", err)
	}
	defer enc.Close()
	compressed := enc.EncodeAll(raw, nil)

	path := filepath.Join(dir, fmt.Sprintf("coremerge-diag-%d.json.zst", now.UnixNano()))
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return "", fmt.Errorf("diagdump: write: %w", err)
	}
	return path, nil
}

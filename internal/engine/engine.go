// Package engine provides the core logic for rtt-planner operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It validates paths, reads route input, builds and
// writes the plan, and invokes the external signer.
//
// Error policy: everything up to and including the first plan write is
// fatal. A signing failure afterwards is reported in the result and the
// unsigned plan stays on disk.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/rtt-planner/internal/config"
	"github.com/danieljhkim/rtt-planner/internal/fsops"
	"github.com/danieljhkim/rtt-planner/internal/hash"
)

// DefaultFileMode is the permission used for plan files when none is configured.
const DefaultFileMode os.FileMode = 0644

// Signer produces a signature for a written plan file.
type Signer interface {
	Sign(ctx context.Context, dir, keyRef, planPath string) (string, error)
}

// Engine orchestrates all rtt-planner operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	signer Signer
	cfg    config.Config
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	signer Signer,
	cfg config.Config,
) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
		signer: signer,
		cfg:    cfg,
	}
}

// resolve joins a validated relative path onto cwd.
func resolve(cwd, path string) string {
	if cwd == "" {
		return path
	}
	return filepath.Join(cwd, path)
}

// writePlan writes data to path using the configured write strategy.
func (e *Engine) writePlan(path string, data []byte) error {
	mode := e.cfg.Output.FileMode
	if mode == 0 {
		mode = DefaultFileMode
	}

	var err error
	if e.cfg.Output.Atomic {
		err = e.fs.AtomicWrite(path, data, mode)
	} else {
		err = e.fs.WriteFile(path, data, mode)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to write output file %s: %w", ErrIO, path, err)
	}
	return nil
}

// readFile reads path, tagging failures as ErrIO.
func (e *Engine) readFile(path, purpose string) ([]byte, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s %s: %w", ErrIO, purpose, path, err)
	}
	return data, nil
}

// Package integration exercises the engine end to end against an
// in-memory filesystem and scripted signers.
package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/rtt-planner/internal/config"
	"github.com/danieljhkim/rtt-planner/internal/engine"
	"github.com/danieljhkim/rtt-planner/internal/fsops"
	"github.com/danieljhkim/rtt-planner/internal/hash"
)

// errDiskFull is returned by testFS writes once failWritesAfter is reached.
var errDiskFull = errors.New("no space left on device")

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	modes map[string]os.FileMode

	// writes records every write in order, plain and atomic alike
	writes []write

	// failWritesAfter makes writes fail once this many have succeeded (-1 disables)
	failWritesAfter int
}

type write struct {
	path   string
	data   []byte
	atomic bool
}

var _ fsops.FS = (*testFS)(nil)

func newTestFS() *testFS {
	return &testFS{
		files:           make(map[string][]byte),
		modes:           make(map[string]os.FileMode),
		failWritesAfter: -1,
	}
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if data, ok := fs.files[path]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return fs.write(path, data, perm, false)
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	return fs.write(path, data, perm, true)
}

func (fs *testFS) write(path string, data []byte, perm os.FileMode, atomic bool) error {
	if fs.failWritesAfter >= 0 && len(fs.writes) >= fs.failWritesAfter {
		return &os.PathError{Op: "write", Path: path, Err: errDiskFull}
	}
	fs.files[path] = append([]byte(nil), data...)
	fs.modes[path] = perm
	fs.writes = append(fs.writes, write{path: path, data: append([]byte(nil), data...), atomic: atomic})
	return nil
}

// scriptedSigner returns a fixed result and snapshots the file it was asked to sign.
type scriptedSigner struct {
	fs    *testFS
	sig   string
	err   error
	calls int
	seen  []byte
}

func (s *scriptedSigner) Sign(ctx context.Context, dir, keyRef, planPath string) (string, error) {
	s.calls++
	s.seen, _ = s.fs.ReadFile(filepath.Join(dir, planPath))
	return s.sig, s.err
}

const workDir = "/work"

func setupTestEngine(t *testing.T, cfg *config.Config) (*engine.Engine, *testFS, *scriptedSigner) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}

	fs := newTestFS()
	s := &scriptedSigner{fs: fs}
	eng := engine.New(fs, hash.NewSHA256Hasher(), s, *cfg)

	return eng, fs, s
}

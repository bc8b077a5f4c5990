package cli

import (
	"fmt"
	"os"

	"github.com/danieljhkim/rtt-planner/internal/config"
	"github.com/danieljhkim/rtt-planner/internal/engine"
	"github.com/danieljhkim/rtt-planner/internal/fsops"
	"github.com/danieljhkim/rtt-planner/internal/hash"
	"github.com/danieljhkim/rtt-planner/internal/signer"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fs := fsops.NewRealFS()
	hasher := hash.NewSHA256Hasher()
	inv := signer.NewInvoker(signer.NewExecRunner(), signer.Options{
		Candidates: cfg.Signer.Candidates,
		Timeout:    cfg.Signer.Timeout,
	})

	return engine.New(fs, hasher, inv, *cfg), nil
}

// workingDir returns the directory relative arguments are resolved against.
func workingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

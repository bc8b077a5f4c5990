package signer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SubcommandSign is the first argument passed to every signer.
const SubcommandSign = "sign"

// DefaultCandidates lists where the signer is looked for, in order: a
// release build in the local tools tree, the same build one directory up,
// and a bare name resolved through PATH.
var DefaultCandidates = []string{
	"./tools/rtt_sign_rs/target/release/rtt-sign",
	"../tools/rtt_sign_rs/target/release/rtt-sign",
	"rtt-sign",
}

// unsafeChars are rejected in both signer arguments.
const unsafeChars = ";|&"

// Options configures an Invoker.
type Options struct {
	// Candidates are tried in order. Empty selects DefaultCandidates.
	Candidates []string

	// Timeout bounds each candidate launch. Zero means no timeout.
	Timeout time.Duration
}

// Invoker runs the external signer.
type Invoker struct {
	runner     Runner
	candidates []string
	timeout    time.Duration
}

// NewInvoker creates a new Invoker.
func NewInvoker(runner Runner, opts Options) *Invoker {
	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return &Invoker{
		runner:     runner,
		candidates: append([]string(nil), candidates...),
		timeout:    opts.Timeout,
	}
}

// Sign asks the signer to sign the file at planPath with keyRef. Relative
// candidates and planPath are resolved against dir (the process working
// directory when dir is empty).
func (s *Invoker) Sign(ctx context.Context, dir, keyRef, planPath string) (string, error) {
	if strings.ContainsAny(keyRef, unsafeChars) {
		return "", fmt.Errorf("%w: key reference", ErrUnsafeArgument)
	}
	if strings.ContainsAny(planPath, unsafeChars) {
		return "", fmt.Errorf("%w: plan path %q", ErrUnsafeArgument, planPath)
	}

	var lastErr error
	for _, candidate := range s.candidates {
		sig, err := s.try(ctx, dir, candidate, keyRef, planPath)
		if err == nil {
			return sig, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no signer found")
	}
	return "", fmt.Errorf("%w: %w", ErrSignerUnavailable, lastErr)
}

func (s *Invoker) try(ctx context.Context, dir, candidate, keyRef, planPath string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stdout, stderr, err := s.runner.Run(ctx, dir, candidate, SubcommandSign, keyRef, planPath)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s exited with error: %s", candidate, strings.TrimSpace(string(stderr)))
		}
		return "", fmt.Errorf("failed to execute %s: %w", candidate, err)
	}

	sig := strings.TrimSpace(string(stdout))
	if sig == "" {
		return "", fmt.Errorf("%s produced no signature", candidate)
	}
	return sig, nil
}

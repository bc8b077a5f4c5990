// Package config manages rtt-planner configuration.
//
// Configuration is optional. Without a config file every value equals the
// planner's built-in behavior: the BATCH-1 batch label, the fixed signer
// candidate list, ed25519/dev signature metadata, no signer timeout and a
// plain (non-atomic) output write. A file can be selected with the
// --config flag or the RTT_PLANNER_CONFIG environment variable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/rtt-planner/internal/planner"
	"github.com/danieljhkim/rtt-planner/internal/signer"
)

// EnvConfigPath names the environment variable that selects a config file.
const EnvConfigPath = "RTT_PLANNER_CONFIG"

// Config is the complete planner configuration.
type Config struct {
	// Plan configures plan assembly.
	Plan PlanConfig `yaml:"plan"`

	// Signer configures the external signer.
	Signer SignerConfig `yaml:"signer"`

	// Output configures how the plan file is written.
	Output OutputConfig `yaml:"output"`
}

// PlanConfig configures plan assembly.
type PlanConfig struct {
	// BatchLabel is the single entry of the plan's order list.
	BatchLabel string `yaml:"batch_label"`
}

// SignerConfig configures the external signer.
type SignerConfig struct {
	// Candidates are the signer executables tried in order.
	Candidates []string `yaml:"candidates"`

	// Algorithm is recorded as sign.alg.
	Algorithm string `yaml:"algorithm"`

	// KeyID is recorded as sign.key_id.
	KeyID string `yaml:"key_id"`

	// Timeout bounds each signer launch. Zero waits indefinitely.
	Timeout time.Duration `yaml:"timeout"`
}

// OutputConfig configures plan file writes.
type OutputConfig struct {
	// Atomic writes through a temp file + rename instead of a plain write.
	Atomic bool `yaml:"atomic"`

	// FileMode is the permission of the written plan file.
	FileMode os.FileMode `yaml:"file_mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Plan: PlanConfig{
			BatchLabel: planner.DefaultBatchLabel,
		},
		Signer: SignerConfig{
			Candidates: append([]string(nil), signer.DefaultCandidates...),
			Algorithm:  planner.SignatureAlgorithm,
			KeyID:      "dev",
		},
		Output: OutputConfig{
			FileMode: 0644,
		},
	}
}

// Load returns the configuration from path, or from the file named by
// RTT_PLANNER_CONFIG when path is empty, or the defaults when neither is set.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Keys absent from
// the file keep their default values; unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Plan.BatchLabel == "" {
		errs = append(errs, fmt.Errorf("plan.batch_label is required"))
	}
	if len(c.Signer.Candidates) == 0 {
		errs = append(errs, fmt.Errorf("signer.candidates must not be empty"))
	}
	for i, candidate := range c.Signer.Candidates {
		if candidate == "" {
			errs = append(errs, fmt.Errorf("signer.candidates[%d] is empty", i))
		}
	}
	if c.Signer.Algorithm == "" {
		errs = append(errs, fmt.Errorf("signer.algorithm is required"))
	}
	if c.Signer.KeyID == "" {
		errs = append(errs, fmt.Errorf("signer.key_id is required"))
	}
	if c.Signer.Timeout < 0 {
		errs = append(errs, fmt.Errorf("signer.timeout must not be negative"))
	}
	if c.Output.FileMode == 0 || c.Output.FileMode&^os.ModePerm != 0 {
		errs = append(errs, fmt.Errorf("output.file_mode must be a non-zero permission"))
	}

	return errors.Join(errs...)
}

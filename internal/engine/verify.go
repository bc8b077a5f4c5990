package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/rtt-planner/internal/fsops"
	"github.com/danieljhkim/rtt-planner/internal/hash"
	"github.com/danieljhkim/rtt-planner/internal/planner"
)

// Verify checks the integrity of a written plan and, when a public key is
// given, its signature.
func (e *Engine) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResult, error) {
	planPath, err := fsops.ValidatePath(req.PlanPath, "plan file")
	if err != nil {
		return nil, err
	}

	opts := planner.VerifyOptions{RequireSignature: req.RequireSignature}

	if req.PublicKeyPath != "" {
		keyPath, err := fsops.ValidatePath(req.PublicKeyPath, "public key file")
		if err != nil {
			return nil, err
		}
		keyData, err := e.readFile(resolve(req.CWD, keyPath), "public key file")
		if err != nil {
			return nil, err
		}
		opts.PublicKey, err = planner.ParsePublicKey(string(keyData))
		if err != nil {
			return nil, fmt.Errorf("invalid public key file %s: %w", keyPath, err)
		}
	}

	data, err := e.readFile(resolve(req.CWD, planPath), "plan file")
	if err != nil {
		return nil, err
	}

	verified, err := planner.Verify(data, e.hasher, opts)
	if err != nil {
		return nil, err
	}

	cid, err := hash.CIDv1(data)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		PlanID:            verified.Plan.ID,
		PlanCID:           cid,
		Signed:            verified.Signed,
		SignatureVerified: verified.SignatureVerified,
	}, nil
}

package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/rtt-planner/internal/fsops"
	"github.com/danieljhkim/rtt-planner/internal/hash"
	"github.com/danieljhkim/rtt-planner/internal/planner"
)

// Plan reads the routes file, builds the plan, writes it to the output
// path and, when requested, signs it and rewrites the output in full.
//
// The two writes are not atomic with respect to each other unless
// output.atomic is configured: a crash between them leaves the unsigned
// plan, a crash during the second may leave a truncated file.
func (e *Engine) Plan(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	routesPath, err := fsops.ValidatePath(req.RoutesPath, "routes file")
	if err != nil {
		return nil, err
	}
	if _, err := fsops.ValidatePath(req.ManifestsDir, "manifests directory"); err != nil {
		return nil, err
	}
	outPath, err := fsops.ValidatePath(req.OutputPath, "output file")
	if err != nil {
		return nil, err
	}

	data, err := e.readFile(resolve(req.CWD, routesPath), "routes file")
	if err != nil {
		return nil, err
	}

	routes, err := planner.ParseRoutes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse routes file %s: %w", routesPath, err)
	}

	plan, err := planner.NewBuilder(e.hasher, e.cfg.Plan.BatchLabel).Build(routes)
	if err != nil {
		return nil, err
	}

	encoded, err := planner.Encode(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	outFile := resolve(req.CWD, outPath)
	if err := e.writePlan(outFile, encoded); err != nil {
		return nil, err
	}

	result := &PlanResult{
		Plan:       plan,
		PlanID:     plan.ID,
		OutputPath: outPath,
	}

	if req.Sign {
		signed, signedBytes, err := e.sign(ctx, req, plan, outPath)
		if err != nil {
			result.SignError = err
		} else {
			if err := e.writePlan(outFile, signedBytes); err != nil {
				return nil, fmt.Errorf("failed to write signed plan: %w", err)
			}
			result.Plan = signed
			result.Signed = true
			encoded = signedBytes
		}
	}

	cid, err := hash.CIDv1(encoded)
	if err != nil {
		return nil, err
	}
	result.PlanCID = cid

	return result, nil
}

// sign runs the external signer over the written plan file and returns the
// signed plan and its encoding. The returned plan keeps plan.ID.
func (e *Engine) sign(ctx context.Context, req *PlanRequest, plan *planner.Plan, outPath string) (*planner.Plan, []byte, error) {
	sig, err := e.signer.Sign(ctx, req.CWD, req.SigningKey, outPath)
	if err != nil {
		return nil, nil, err
	}

	signed := plan.Signed(planner.Signature{
		Alg:   e.cfg.Signer.Algorithm,
		KeyID: e.cfg.Signer.KeyID,
		Sig:   sig,
	})

	data, err := planner.Encode(signed)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode signed plan: %w", err)
	}

	return signed, data, nil
}

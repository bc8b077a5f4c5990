package engine

import "github.com/danieljhkim/rtt-planner/internal/planner"

// PlanResult represents the result of generating a plan.
type PlanResult struct {
	// Plan is the final plan as written (signed if signing succeeded)
	Plan *planner.Plan

	// PlanID is the content identifier of the plan
	PlanID string

	// OutputPath is the path the plan was written to, as requested
	OutputPath string

	// PlanCID is the CIDv1 of the final plan file bytes
	PlanCID string

	// Signed reports whether a signature was attached
	Signed bool

	// SignError is the non-fatal signing failure, if signing was requested and failed
	SignError error
}

// VerifyResult represents the result of verifying a plan file.
type VerifyResult struct {
	// PlanID is the verified content identifier
	PlanID string

	// PlanCID is the CIDv1 of the plan file bytes
	PlanCID string

	// Signed reports whether the plan carries a signature
	Signed bool

	// SignatureVerified reports whether the signature was checked against a key
	SignatureVerified bool
}

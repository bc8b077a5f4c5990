package engine

// PlanRequest represents a request to generate a plan.
type PlanRequest struct {
	// CWD is the directory relative paths are resolved against
	CWD string

	// RoutesPath is the routes input file (relative)
	RoutesPath string

	// ManifestsDir is validated but not read
	ManifestsDir string

	// OutputPath is the plan output file (relative)
	OutputPath string

	// Sign requests signing with SigningKey after the plan is written
	Sign bool

	// SigningKey is the key reference handed to the signer
	SigningKey string
}

// VerifyRequest represents a request to verify a written plan.
type VerifyRequest struct {
	// CWD is the directory relative paths are resolved against
	CWD string

	// PlanPath is the plan file to verify (relative)
	PlanPath string

	// PublicKeyPath is an optional ed25519 public key file (relative)
	PublicKeyPath string

	// RequireSignature fails verification of unsigned plans
	RequireSignature bool
}

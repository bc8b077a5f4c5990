package planner

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/rtt-planner/internal/hash"
)

var (
	// ErrIntegrity indicates a plan whose plan_id does not match its content.
	ErrIntegrity = errors.New("plan integrity check failed")

	// ErrSignature indicates a missing, malformed or invalid signature.
	ErrSignature = errors.New("plan signature check failed")
)

// SignatureAlgorithm is the only algorithm Verify can check.
const SignatureAlgorithm = "ed25519"

// VerifyOptions controls which checks Verify performs beyond integrity.
type VerifyOptions struct {
	// PublicKey, when set, is used to check the signature of signed plans.
	PublicKey ed25519.PublicKey

	// RequireSignature fails verification of unsigned plans.
	RequireSignature bool
}

// VerifyResult reports what Verify established about a plan.
type VerifyResult struct {
	Plan              *Plan
	Signed            bool
	SignatureVerified bool
}

// Verify decodes a plan document, recomputes its identifier and compares it
// with plan_id. If the plan is signed and opts.PublicKey is set, the
// signature is checked over the on-disk encoding of the unsigned plan,
// which is exactly the file the signer was handed.
func Verify(data []byte, hasher hash.Hasher, opts VerifyOptions) (*VerifyResult, error) {
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, err
	}

	if _, err := hash.ParseContentID(plan.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	computed, err := ComputeID(plan, hasher)
	if err != nil {
		return nil, err
	}
	if computed != plan.ID {
		return nil, fmt.Errorf("%w: expected=%s, computed=%s", ErrIntegrity, plan.ID, computed)
	}

	result := &VerifyResult{Plan: plan, Signed: plan.Sign != nil}

	if plan.Sign == nil {
		if opts.RequireSignature {
			return nil, fmt.Errorf("%w: signature required but not present", ErrSignature)
		}
		return result, nil
	}

	if opts.PublicKey == nil {
		if opts.RequireSignature {
			return nil, fmt.Errorf("%w: signature required but no public key given", ErrSignature)
		}
		return result, nil
	}

	if err := verifySignature(plan, opts.PublicKey); err != nil {
		return nil, err
	}
	result.SignatureVerified = true

	return result, nil
}

func verifySignature(plan *Plan, pub ed25519.PublicKey) error {
	if plan.Sign.Alg != SignatureAlgorithm {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrSignature, plan.Sign.Alg)
	}

	sig, err := base64.StdEncoding.DecodeString(plan.Sign.Sig)
	if err != nil {
		return fmt.Errorf("%w: signature is not base64: %v", ErrSignature, err)
	}

	message, err := Encode(plan.Unsigned())
	if err != nil {
		return fmt.Errorf("failed to encode unsigned plan: %w", err)
	}

	if !ed25519.Verify(pub, message, sig) {
		return fmt.Errorf("%w: invalid signature for key_id %q", ErrSignature, plan.Sign.KeyID)
	}
	return nil
}

// ParsePublicKey parses an ed25519 public key written either as
// "ed25519:<base64>" or as bare base64.
func ParsePublicKey(text string) (ed25519.PublicKey, error) {
	text = strings.TrimSpace(text)
	if keyType, encoded, ok := strings.Cut(text, ":"); ok {
		if keyType != SignatureAlgorithm {
			return nil, fmt.Errorf("key type mismatch: %s", keyType)
		}
		text = encoded
	}

	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("public key is not base64: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

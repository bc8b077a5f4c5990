package planner

import (
	"fmt"

	"github.com/danieljhkim/rtt-planner/internal/hash"
)

// PlaceholderID is the plan_id value present while the identifier is hashed.
const PlaceholderID = "sha256-PLACEHOLDER"

// DefaultBatchLabel is the single execution batch every plan is ordered into.
const DefaultBatchLabel = "BATCH-1"

// Route is a directed link between two endpoints.
type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RouteSet is an ordered sequence of routes as read from input.
type RouteSet []Route

// Plan represents the topology change document produced by the planner.
//
// Field order is significant: it fixes the canonical encoding and therefore
// the plan identifier.
type Plan struct {
	// ID is the content identifier of the unsigned plan.
	ID string `json:"plan_id"`

	// RoutesAdd is the ordered list of routes to add
	RoutesAdd []Route `json:"routes_add"`

	// RoutesDel is the ordered list of routes to remove (always empty for now)
	RoutesDel []Route `json:"routes_del"`

	// Order is the ordered list of batch labels
	Order []string `json:"order"`

	// Sign is nil unless signing succeeded
	Sign *Signature `json:"sign"`
}

// Signature is attached to a plan after an external signer succeeds.
type Signature struct {
	Alg   string `json:"alg"`
	KeyID string `json:"key_id"`
	Sig   string `json:"sig"`
}

// Signed returns a copy of the plan with sig attached. The receiver is not
// modified and the identifier is carried over unchanged.
func (p *Plan) Signed(sig Signature) *Plan {
	signed := *p
	signed.Sign = &sig
	return &signed
}

// Unsigned returns a copy of the plan with the signature stripped.
func (p *Plan) Unsigned() *Plan {
	unsigned := *p
	unsigned.Sign = nil
	return &unsigned
}

// Builder assembles plans from route sets.
type Builder struct {
	hasher     hash.Hasher
	batchLabel string
}

// NewBuilder creates a Builder. An empty batchLabel selects DefaultBatchLabel.
func NewBuilder(hasher hash.Hasher, batchLabel string) *Builder {
	if batchLabel == "" {
		batchLabel = DefaultBatchLabel
	}
	return &Builder{
		hasher:     hasher,
		batchLabel: batchLabel,
	}
}

// Build creates an unsigned plan that adds every route in order.
//
// The identifier is the hash of the canonical encoding of the plan with
// plan_id set to PlaceholderID and sign null.
func (b *Builder) Build(routes RouteSet) (*Plan, error) {
	add := make([]Route, len(routes))
	copy(add, routes)

	plan := &Plan{
		ID:        PlaceholderID,
		RoutesAdd: add,
		RoutesDel: []Route{},
		Order:     []string{b.batchLabel},
	}

	id, err := ComputeID(plan, b.hasher)
	if err != nil {
		return nil, err
	}
	plan.ID = id

	return plan, nil
}

// ComputeID derives the identifier a plan with this content must carry,
// independent of its current plan_id and sign fields.
func ComputeID(p *Plan, hasher hash.Hasher) (string, error) {
	payload := p.Unsigned()
	payload.ID = PlaceholderID

	data, err := Canonical(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode plan for hashing: %w", err)
	}

	return hasher.ContentID(data), nil
}

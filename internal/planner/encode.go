package planner

import (
	"bytes"
	"encoding/json"
)

// Canonical returns the byte sequence plan identifiers are computed over:
// compact JSON in struct field order, without HTML escaping and without a
// trailing newline. Independent verifiers must reproduce exactly this form.
//
// Outside ASCII the output differs from serde_json in two places: U+2028 and
// U+2029 are written as \u2028 and \u2029 rather than raw, and invalid UTF-8
// bytes are written as \ufffd.
func Canonical(p *Plan) ([]byte, error) {
	return encode(p, "")
}

// Encode returns the on-disk form of a plan: JSON indented by two spaces,
// without a trailing newline.
func Encode(p *Plan) ([]byte, error) {
	return encode(p, "  ")
}

func encode(p *Plan, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(normalized(p)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// normalized replaces nil slices so they encode as [] rather than null.
func normalized(p *Plan) *Plan {
	n := *p
	if n.RoutesAdd == nil {
		n.RoutesAdd = []Route{}
	}
	if n.RoutesDel == nil {
		n.RoutesDel = []Route{}
	}
	if n.Order == nil {
		n.Order = []string{}
	}
	return &n
}

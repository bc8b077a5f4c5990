package planner

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// ErrParse indicates a malformed routes or plan document.
var ErrParse = errors.New("parse error")

// ParseError represents a failure to parse an input document.
// Wraps ErrParse for errors.Is() compatibility.
type ParseError struct {
	Msg string // What was being parsed and where it failed
	Err error  // Optional underlying error (e.g., from json.Unmarshal)
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParse.Error(), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

type routesDocument struct {
	Routes *[]rawRoute `json:"routes"`
}

type rawRoute struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// ParseRoutes parses a routes document of the form
//
//	{ "routes": [ { "from": "a", "to": "b" }, ... ] }
//
// Comments and trailing commas are stripped first. The "routes" key and
// both endpoints of every route are required; unknown keys are ignored.
func ParseRoutes(data []byte) (RouteSet, error) {
	var doc routesDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, &ParseError{Msg: "failed to parse routes JSON", Err: err}
	}

	if doc.Routes == nil {
		return nil, &ParseError{Msg: `missing field "routes"`}
	}

	routes := make(RouteSet, 0, len(*doc.Routes))
	for i, r := range *doc.Routes {
		if r.From == nil {
			return nil, &ParseError{Msg: fmt.Sprintf(`routes[%d]: missing field "from"`, i)}
		}
		if r.To == nil {
			return nil, &ParseError{Msg: fmt.Sprintf(`routes[%d]: missing field "to"`, i)}
		}
		routes = append(routes, Route{From: *r.From, To: *r.To})
	}

	return routes, nil
}

// ParsePlan decodes a plan document as written by Encode.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Msg: "failed to parse plan JSON", Err: err}
	}
	return &p, nil
}

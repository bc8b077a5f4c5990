// Package signer invokes an external signing executable for plan files.
//
// The signer is looked up at an ordered list of candidate locations and
// launched with a discrete argument vector, never through a shell:
//
//	<signer> sign <key-reference> <plan-path>
//
// The first candidate that launches and exits with status 0 wins; its
// trimmed standard output is the signature. Callers treat failure as
// non-fatal and keep the unsigned plan.
package signer

// Package planner builds and verifies route plans.
//
// A plan lists the routes to add and remove and the batch order in which
// they are executed. Its identifier is the content hash of its canonical
// encoding, computed before any signature is attached, so signing never
// changes the identifier.
//
// Key responsibilities:
//   - Parse the routes input document
//   - Assemble the plan and derive its content identifier
//   - Encode plans canonically (for hashing) and for disk
//   - Verify plan integrity and, optionally, its ed25519 signature
package planner

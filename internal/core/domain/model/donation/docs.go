// Package donation implements the Donation aggregate: a donor's pledge that a
// volunteer accepts, picks up, delivers and completes.
//
// A donation is either created directly by a donor or spawned from a claimed
// community request, in which case it carries a back-reference to that
// request. The back-reference is not an ownership edge.
//
// Key business rules:
//   - Only a donor creates a donation; it starts pending
//   - The first volunteer to accept is assigned and never replaced
//   - Later stages are driven by the assigned volunteer or an admin
//   - Completed donations accept no further changes
package donation

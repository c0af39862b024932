// Package request implements the CommunityRequest aggregate: a request for aid
// raised by a community member, vetted by a volunteer and fulfilled by a donor.
//
// The package includes:
//   - Request: the aggregate root holding request details and lifecycle state
//   - Status: the fixed state machine every change goes through
//   - Urgency: the low/medium/high priority tag
//
// Key business rules:
//   - Only a community member creates a request; it starts pending
//   - A volunteer is assigned exactly once, on acceptance, and never replaced
//   - Only the assigned volunteer marks the community reached or decides
//   - Any volunteer may deny a request that is still pending
//   - A donor claims an approved request exactly once; claiming is terminal
//   - Rejected and claimed requests accept no further changes
package request

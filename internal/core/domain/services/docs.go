// Package services provides domain services that hold business policy spanning
// more than one aggregate.
//
// The package includes:
//   - VolunteerMatcher: selects the volunteers to notify for a city
package services

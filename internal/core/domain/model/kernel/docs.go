// Package kernel provides the shared value objects of the aid matching domain.
//
// The package includes:
//   - UUID: identifiers for requests, donations, profiles and records
//   - City: a city name plus its normalized lookup key
//   - Role and Actor: who is calling an operation and in which capacity
//   - Initiative: the category of aid being requested or pledged
//
// Value objects are immutable and reject their zero value through Validate,
// so aggregates can rely on them being well formed.
package kernel

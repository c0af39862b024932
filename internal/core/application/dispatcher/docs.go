// Package dispatcher turns committed events into side effects.
//
// The transition engine hands events to Dispatcher.Publish, which never
// blocks. Worker goroutines consume the queue and, per event, write one
// notification record per recipient, push it, email it, append the audit
// entry and publish to the event stream. Each sink is independent: a failure
// in one is logged and never suppresses another, and nothing reaches the
// caller of the original transition.
//
// # Recipients
//
//   - RequestCreated, DonationCreated, RequestReminder: the approved
//     volunteers of the entity's city, as the location matcher returns them
//   - request decisions and visits: the requester
//   - RequestClaimed: the requester and the assigned volunteer
//   - DonationStatusChanged: the donor, the assigned volunteer and the
//     requester of the linked request
//
// The actor who caused the event is never notified about it.
//
// # Delivery
//
// Push is fire-and-forget with a timeout. Email gets a bounded number of
// attempts with a constant backoff and a hard per-attempt timeout. Delivery
// is at least once; the audit log deduplicates by transition key.
package dispatcher

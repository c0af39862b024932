// Package event defines the committed-change events the transition engine
// publishes and the side-effect dispatcher consumes.
//
// Event is a closed set: every variant embeds Meta, whose unexported marker
// method keeps implementations inside this package. Consumers switch on the
// concrete type.
package event

import (
	"time"

	"aidmatch/internal/core/domain/model/donation"
	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
)

// Event is a change that has already been committed.
type Event interface {
	Header() Meta
	isEvent()
}

// Meta is carried by every event. From is empty for creation events; From
// equals To for reminders, which do not change state.
type Meta struct {
	EntityType kernel.EntityType
	EntityID   kernel.UUID
	From       string
	To         string
	ActorID    kernel.UUID
	OccurredAt time.Time
}

func (m Meta) Header() Meta {
	return m
}

func (Meta) isEvent() {}

// IsTransition reports whether the event records a status change or creation
// rather than a reminder.
func (m Meta) IsTransition() bool {
	return m.From != m.To
}

// RequestCreated is published when a community member raises a request.
type RequestCreated struct {
	Meta
	Request request.State
}

// RequestAccepted is published when a volunteer takes a request on.
type RequestAccepted struct {
	Meta
	Request request.State
}

// RequestDenied is published when a volunteer declines a request outright.
type RequestDenied struct {
	Meta
	Request request.State
}

// RequestReached is published when the assigned volunteer visits.
type RequestReached struct {
	Meta
	Request request.State
}

// RequestApproved is published when the assigned volunteer approves.
type RequestApproved struct {
	Meta
	Request request.State
}

// RequestRejected is published when the assigned volunteer rejects after the
// visit.
type RequestRejected struct {
	Meta
	Request request.State
}

// RequestClaimed is published when a donor claims an approved request.
// DonationID is the donation spawned in the same transaction.
type RequestClaimed struct {
	Meta
	Request    request.State
	DonationID kernel.UUID
}

// DonationCreated is published for a new donation, direct or spawned.
type DonationCreated struct {
	Meta
	Donation donation.State
}

// DonationStatusChanged is published for every donation stage change.
// LinkedRequesterID is the requester of the linked request, if any.
type DonationStatusChanged struct {
	Meta
	Donation          donation.State
	LinkedRequesterID *kernel.UUID
}

// RequestReminder is published by the reminder job for a request that has
// been pending for Age.
type RequestReminder struct {
	Meta
	Request request.State
	Age     time.Duration
}

// ForRequest builds the variant matching a request's new status. It returns
// nil when the status has no event of its own (the claim, which needs the
// spawned donation, is built with NewRequestClaimed).
func ForRequest(from request.Status, actorID kernel.UUID, r request.State) Event {
	meta := Meta{
		EntityType: kernel.EntityRequest,
		EntityID:   r.ID,
		From:       from.String(),
		To:         r.Status.String(),
		ActorID:    actorID,
		OccurredAt: r.UpdatedAt,
	}

	switch r.Status {
	case request.Pending:
		meta.From = ""
		return RequestCreated{Meta: meta, Request: r}
	case request.VolunteerAccepted:
		return RequestAccepted{Meta: meta, Request: r}
	case request.ReachedCommunity:
		return RequestReached{Meta: meta, Request: r}
	case request.ApprovedByVolunteer:
		return RequestApproved{Meta: meta, Request: r}
	case request.RejectedByVolunteer:
		if from == request.Pending {
			return RequestDenied{Meta: meta, Request: r}
		}
		return RequestRejected{Meta: meta, Request: r}
	case request.DonorClaimed:
		return nil
	}
	return nil
}

// NewRequestClaimed builds the claim event.
func NewRequestClaimed(actorID kernel.UUID, r request.State, donationID kernel.UUID) RequestClaimed {
	return RequestClaimed{
		Meta: Meta{
			EntityType: kernel.EntityRequest,
			EntityID:   r.ID,
			From:       request.ApprovedByVolunteer.String(),
			To:         request.DonorClaimed.String(),
			ActorID:    actorID,
			OccurredAt: r.UpdatedAt,
		},
		Request:    r,
		DonationID: donationID,
	}
}

// NewDonationCreated builds the creation event for a donation.
func NewDonationCreated(actorID kernel.UUID, d donation.State) DonationCreated {
	return DonationCreated{
		Meta: Meta{
			EntityType: kernel.EntityDonation,
			EntityID:   d.ID,
			To:         d.Status.String(),
			ActorID:    actorID,
			OccurredAt: d.CreatedAt,
		},
		Donation: d,
	}
}

// NewDonationStatusChanged builds the stage change event for a donation.
func NewDonationStatusChanged(
	from donation.Status,
	actorID kernel.UUID,
	d donation.State,
	linkedRequesterID *kernel.UUID,
) DonationStatusChanged {
	return DonationStatusChanged{
		Meta: Meta{
			EntityType: kernel.EntityDonation,
			EntityID:   d.ID,
			From:       from.String(),
			To:         d.Status.String(),
			ActorID:    actorID,
			OccurredAt: d.UpdatedAt,
		},
		Donation:          d,
		LinkedRequesterID: linkedRequesterID,
	}
}

// NewRequestReminder builds a reminder for a pending request.
func NewRequestReminder(r request.State, at time.Time) RequestReminder {
	return RequestReminder{
		Meta: Meta{
			EntityType: kernel.EntityRequest,
			EntityID:   r.ID,
			From:       r.Status.String(),
			To:         r.Status.String(),
			OccurredAt: at,
		},
		Request: r,
		Age:     at.Sub(r.CreatedAt),
	}
}

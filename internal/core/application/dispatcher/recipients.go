package dispatcher

import (
	"context"
	"fmt"

	"aidmatch/internal/core/application/usecases/queries"
	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/kernel"
)

type recipient struct {
	id    kernel.UUID
	email string
	// resolved is set when email came from the matcher and needs no lookup
	resolved bool
}

func (d *Dispatcher) recipients(ctx context.Context, ev event.Event) ([]recipient, error) {
	var (
		list []recipient
		err  error
	)

	switch e := ev.(type) {
	case event.RequestCreated:
		list, err = d.cityVolunteers(ctx, e.Request.Details.City.Name())
	case event.RequestReminder:
		list, err = d.cityVolunteers(ctx, e.Request.Details.City.Name())
	case event.DonationCreated:
		list, err = d.cityVolunteers(ctx, e.Donation.Details.City.Name())
	case event.RequestAccepted:
		list = ids(e.Request.RequesterID)
	case event.RequestDenied:
		list = ids(e.Request.RequesterID)
	case event.RequestReached:
		list = ids(e.Request.RequesterID)
	case event.RequestApproved:
		list = ids(e.Request.RequesterID)
	case event.RequestRejected:
		list = ids(e.Request.RequesterID)
	case event.RequestClaimed:
		list = ids(e.Request.RequesterID)
		if e.Request.Volunteer != nil {
			list = append(list, ids(e.Request.Volunteer.ID)...)
		}
	case event.DonationStatusChanged:
		list = ids(e.Donation.DonorID)
		if e.Donation.Volunteer != nil {
			list = append(list, ids(e.Donation.Volunteer.ID)...)
		}
		if e.LinkedRequesterID != nil {
			list = append(list, ids(*e.LinkedRequesterID)...)
		}
	default:
		return nil, fmt.Errorf("no recipient policy for %T", ev)
	}
	if err != nil {
		return nil, err
	}

	return exclude(list, ev.Header().ActorID), nil
}

func (d *Dispatcher) cityVolunteers(ctx context.Context, city string) ([]recipient, error) {
	query, err := queries.NewFindVolunteersQuery(city, true)
	if err != nil {
		return nil, err
	}
	volunteers, err := d.finder.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]recipient, 0, len(volunteers))
	for _, v := range volunteers {
		list = append(list, recipient{id: v.ID, email: v.Email, resolved: true})
	}
	return list, nil
}

func ids(id kernel.UUID) []recipient {
	return []recipient{{id: id}}
}

// exclude drops the actor and repeated recipients, keeping first occurrence
// order.
func exclude(list []recipient, actorID kernel.UUID) []recipient {
	seen := make(map[kernel.UUID]struct{}, len(list))
	result := make([]recipient, 0, len(list))
	for _, r := range list {
		if r.id.IsEqual(actorID) {
			continue
		}
		if _, dup := seen[r.id]; dup {
			continue
		}
		seen[r.id] = struct{}{}
		result = append(result, r)
	}
	return result
}

package dispatcher

import (
	"fmt"
	"time"

	"aidmatch/internal/core/domain/model/event"
	"aidmatch/internal/core/domain/model/notification"
)

type message struct {
	typ   notification.Type
	title string
	body  string
	data  map[string]any
}

func compose(ev event.Event) message {
	h := ev.Header()
	data := map[string]any{
		"entityType": h.EntityType.String(),
		"entityId":   h.EntityID.String(),
		"status":     h.To,
	}

	switch e := ev.(type) {
	case event.RequestCreated:
		d := e.Request.Details
		data["urgency"] = d.Urgency.String()
		return message{
			typ:   notification.TypeNewRequest,
			title: fmt.Sprintf("New %s request in %s", d.Initiative, d.City.Name()),
			body:  fmt.Sprintf("%s needs help (%s urgency). %s", d.BeneficiaryName, d.Urgency, d.Description),
			data:  data,
		}
	case event.RequestReminder:
		d := e.Request.Details
		data["pendingFor"] = e.Age.Round(time.Minute).String()
		return message{
			typ:   notification.TypeRequestReminder,
			title: fmt.Sprintf("A %s request in %s is still waiting", d.Initiative, d.City.Name()),
			body:  fmt.Sprintf("%s has been waiting for a volunteer for %s.", d.BeneficiaryName, e.Age.Round(time.Hour)),
			data:  data,
		}
	case event.RequestAccepted:
		name := ""
		if e.Request.Volunteer != nil {
			name = e.Request.Volunteer.Name
			data["volunteerId"] = e.Request.Volunteer.ID.String()
		}
		return message{
			typ:   notification.TypeRequestAccepted,
			title: "A volunteer accepted your request",
			body:  fmt.Sprintf("%s will visit to verify the request.", fallback(name, "A volunteer")),
			data:  data,
		}
	case event.RequestDenied:
		return message{
			typ:   notification.TypeRequestDenied,
			title: "Your request was declined",
			body:  fallback(e.Request.DenialReason, "A volunteer declined this request."),
			data:  data,
		}
	case event.RequestReached:
		return message{
			typ:   notification.TypeRequestReached,
			title: "The volunteer has reached you",
			body:  "Your request is being verified.",
			data:  data,
		}
	case event.RequestApproved:
		return message{
			typ:   notification.TypeRequestApproved,
			title: "Your request was approved",
			body:  fallback(e.Request.DecisionNotes, "Donors can now fulfil your request."),
			data:  data,
		}
	case event.RequestRejected:
		return message{
			typ:   notification.TypeRequestRejected,
			title: "Your request was not approved",
			body:  fallback(e.Request.DenialReason, e.Request.DecisionNotes),
			data:  data,
		}
	case event.RequestClaimed:
		data["donationId"] = e.DonationID.String()
		return message{
			typ:   notification.TypeRequestClaimed,
			title: "A donor is fulfilling the request",
			body:  fmt.Sprintf("Pickup from %s.", e.Request.DonorAddress),
			data:  data,
		}
	case event.DonationCreated:
		d := e.Donation.Details
		if e.Donation.LinkedRequestID != nil {
			data["linkedRequestId"] = e.Donation.LinkedRequestID.String()
		}
		return message{
			typ:   notification.TypeNewDonation,
			title: fmt.Sprintf("New %s donation in %s", d.Initiative, d.City.Name()),
			body:  fmt.Sprintf("Pickup from %s. %s", d.DonorAddress, d.Description),
			data:  data,
		}
	case event.DonationStatusChanged:
		if e.Donation.Feedback != "" {
			data["feedback"] = e.Donation.Feedback
		}
		return message{
			typ:   notification.TypeDonationStatus,
			title: fmt.Sprintf("Donation %s", h.To),
			body:  fmt.Sprintf("The donation moved from %s to %s.", h.From, h.To),
			data:  data,
		}
	}

	return message{typ: "unknown", title: describe(ev), data: data}
}

// auditExtra keeps the transition-specific fields alongside the audit entry.
func auditExtra(ev event.Event) map[string]any {
	extra := map[string]any{}
	switch e := ev.(type) {
	case event.RequestDenied:
		if e.Request.DenialReason != "" {
			extra["reason"] = e.Request.DenialReason
		}
	case event.RequestApproved:
		if e.Request.DecisionNotes != "" {
			extra["notes"] = e.Request.DecisionNotes
		}
	case event.RequestRejected:
		if e.Request.DecisionNotes != "" {
			extra["notes"] = e.Request.DecisionNotes
		}
		if e.Request.DenialReason != "" {
			extra["reason"] = e.Request.DenialReason
		}
	case event.RequestClaimed:
		extra["donationId"] = e.DonationID.String()
	case event.DonationCreated:
		if e.Donation.LinkedRequestID != nil {
			extra["linkedRequestId"] = e.Donation.LinkedRequestID.String()
		}
	case event.DonationStatusChanged:
		if e.Donation.Feedback != "" {
			extra["feedback"] = e.Donation.Feedback
		}
	}
	return extra
}

func describe(ev event.Event) string {
	h := ev.Header()
	return fmt.Sprintf("%T %s->%s", ev, h.From, h.To)
}

func fallback(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}

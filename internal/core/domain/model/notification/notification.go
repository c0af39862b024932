// Package notification models the in-app notification records the
// dispatcher writes, one per recipient per event.
package notification

import (
	"strings"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/pkg/errs"
)

// Type tags what a notification is about.
type Type string

const (
	TypeNewRequest      Type = "new_request"
	TypeRequestAccepted Type = "request_accepted"
	TypeRequestDenied   Type = "request_denied"
	TypeRequestReached  Type = "request_reached"
	TypeRequestApproved Type = "request_approved"
	TypeRequestRejected Type = "request_rejected"
	TypeRequestClaimed  Type = "request_claimed"
	TypeNewDonation     Type = "new_donation"
	TypeDonationStatus  Type = "donation_status"
	TypeRequestReminder Type = "request_reminder"
)

// Notification is an unread message for one recipient. Delivery over push or
// email is not tracked here.
type Notification struct {
	ID          kernel.UUID
	RecipientID kernel.UUID
	Type        Type
	Title       string
	Message     string
	Data        map[string]any
	CreatedAt   time.Time
	Read        bool
}

// New builds an unread notification.
func New(recipientID kernel.UUID, typ Type, title, message string, data map[string]any, at time.Time) (Notification, error) {
	if err := recipientID.Validate(); err != nil {
		return Notification{}, err
	}
	if strings.TrimSpace(title) == "" {
		return Notification{}, errs.NewValueIsRequiredError("title")
	}
	if data == nil {
		data = map[string]any{}
	}
	return Notification{
		ID:          kernel.NewUUID(),
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data:        data,
		CreatedAt:   at,
	}, nil
}

// Package redispush delivers live notifications over Redis pub/sub. Each
// recipient has a channel named user_notifications:<recipientId>; connected
// clients subscribe to their own channel.
package redispush

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aidmatch/internal/core/domain/model/notification"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix is prepended to the recipient id to name the channel.
const ChannelPrefix = "user_notifications:"

// Publisher implements ports.PushSender.
type Publisher struct {
	client redis.UniversalClient
}

func NewPublisher(client redis.UniversalClient) *Publisher {
	return &Publisher{client: client}
}

type payload struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Channel returns the pub/sub channel for a recipient.
func Channel(n notification.Notification) string {
	return ChannelPrefix + n.RecipientID.String()
}

// Push publishes the notification. Having no subscribers is not an error.
func (p *Publisher) Push(ctx context.Context, n notification.Notification) error {
	body, err := json.Marshal(payload{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("redispush: encode notification: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(n), body).Err(); err != nil {
		return fmt.Errorf("redispush: publish to %s: %w", Channel(n), err)
	}
	return nil
}

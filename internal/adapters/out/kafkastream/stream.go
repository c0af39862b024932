// Package kafkastream publishes committed status transitions to a Kafka topic
// for downstream consumers. Messages are keyed by entity id so one entity's
// transitions stay ordered within a partition.
package kafkastream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aidmatch/internal/core/domain/model/audit"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Stream implements ports.EventStream.
type Stream struct {
	writer messageWriter
}

func NewStream(cfg Config) *Stream {
	return &Stream{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

func newStreamWithWriter(w messageWriter) *Stream {
	return &Stream{writer: w}
}

// StatusChanged is the message value.
type StatusChanged struct {
	EntityID   string         `json:"entityId"`
	EntityType string         `json:"entityType"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	ActorID    string         `json:"actorId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Extra      map[string]any `json:"extra,omitempty"`
}

func (s *Stream) Publish(ctx context.Context, e audit.StatusEvent) error {
	value, err := json.Marshal(StatusChanged{
		EntityID:   e.EntityID.String(),
		EntityType: e.EntityType.String(),
		From:       e.FromStatus,
		To:         e.ToStatus,
		ActorID:    e.ActorID.String(),
		OccurredAt: e.OccurredAt.UTC(),
		Extra:      e.Extra,
	})
	if err != nil {
		return fmt.Errorf("kafkastream: encode event: %w", err)
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.EntityID.String()),
		Value: value,
		Time:  e.OccurredAt,
	})
}

func (s *Stream) Close() error {
	if s == nil || s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

package storage

import (
	"context"
	"encoding/json"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishMenuEvent(ctx context.Context, event domain.MenuEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := event.CategoryID
	if key == "" {
		key = "menu"
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"dispatch-platform-go/internal/fanout"
)

// Producer bridges fanout events to a Kafka topic for out-of-process
// observers. It implements fanout.Sink.
type Producer struct {
	sp    sarama.SyncProducer
	topic string
}

// NewProducer creates a Kafka producer. Missing broker or topic settings
// return a nil producer; callers treat that as "bridge disabled".
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{sp: sp, topic: topic}, nil
}

// Publish sends ev to the bridge topic. Events for the same order share a
// partition key, so per-order ordering survives the bridge.
func (p *Producer) Publish(_ context.Context, ev fanout.Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := ev.OrderID
	if key == "" {
		key = ev.PartnerID
	}

	_, _, err = p.sp.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send event %s: %w", ev.Kind, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sp.Close()
}

var _ fanout.Sink = (*Producer)(nil)

package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/circuit_breaker"
	jsoniter "github.com/json-iterator/go"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, topic, key string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		cb:       circuit_breaker.New(20, 10*time.Second, 0.5, 3),
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
}

func (q *enqueuerImpl) Enqueue(ctx context.Context, topic, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := jsoniter.ConfigFastest.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	return q.cb.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

// NopEnqueuer drops every message; used when the broker is disabled.
type NopEnqueuer struct{}

func (NopEnqueuer) Enqueue(context.Context, string, string, any) error { return nil }

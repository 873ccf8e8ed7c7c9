package handler

import (
	"context"
	"sync"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
)

type resizeCapacity func(ctx context.Context, itemID int64, newTotal int) (model.Item, error)

// Consumer applies catalog capacity edits to the inventory.
type Consumer struct {
	resizeCapacityHandler resizeCapacity
	log                   *zap.Logger
	ready                 chan struct{}
	readyOnce             sync.Once
}

func NewConsumer(resizeCapacity resizeCapacity, log *zap.Logger) *Consumer {
	return &Consumer{
		resizeCapacityHandler: resizeCapacity,
		log:                   log.Named("consumer"),
		ready:                 make(chan struct{}),
	}
}

// Ready is closed once the first group session has been set up.
func (consumer *Consumer) Ready() <-chan struct{} {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	consumer.readyOnce.Do(func() { close(consumer.ready) })
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var req model.CapacityChanged
			if err := jsoniter.ConfigFastest.Unmarshal(message.Value, &req); err != nil {
				consumer.log.Error("decode capacity event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if _, err := consumer.resizeCapacityHandler(session.Context(), req.ItemID, req.TotalCopies); err != nil {
				if !permanent(err) {
					// offsets commit cumulatively: stop the claim so the
					// next session resumes at this message.
					consumer.log.Error("consumer.resizeCapacityHandler", zap.Int64("item_id", req.ItemID), zap.Error(err))
					return errors.Wrapf(err, "resize item %d at offset %d", req.ItemID, message.Offset)
				}
				consumer.log.Warn("capacity event rejected", zap.Int64("item_id", req.ItemID), zap.Int("total", req.TotalCopies), zap.Error(err))
			}

			consumer.log.Debug("message claimed",
				zap.String("value", string(message.Value)),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// permanent reports errors that replaying the message cannot fix.
func permanent(err error) bool {
	return errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrPolicyViolation) ||
		errors.Is(err, errs.ErrValidation)
}

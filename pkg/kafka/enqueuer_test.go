package kafka_test

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/kafka"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

type payload struct {
	LoanID int64  `json:"loanId"`
	Type   string `json:"type"`
}

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got payload
		if err := jsoniter.ConfigFastest.Unmarshal(val, &got); err != nil {
			return err
		}
		require.Equal(t, payload{LoanID: 7, Type: "loan.created"}, got)
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	q := kafka.NewEnqueuer(producer)
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, kafka.LendingTopic, "7", payload{LoanID: 7, Type: "loan.created"}))
	require.ErrorIs(t, q.Enqueue(ctx, kafka.LendingTopic, "8", payload{LoanID: 8}), sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestEnqueuer_CancelledContext(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	q := kafka.NewEnqueuer(producer)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, q.Enqueue(ctx, kafka.LendingTopic, "1", payload{}), context.Canceled)
	require.NoError(t, producer.Close())
}

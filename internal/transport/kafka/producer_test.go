package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage/events"
	"github.com/stretchr/testify/require"
)

func TestPostCreated(t *testing.T) {
	created := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	post := models.Post{Id: "1760443200000", Author: "Greg", Message: "hello", CreatedAt: created}

	mock := mocks.NewAsyncProducer(t, nil)
	mock.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != defaultTopic {
			return errors.New("unexpected topic " + msg.Topic)
		}

		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != post.Id {
			return errors.New("unexpected key " + string(key))
		}

		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var payload events.EventPayload
		if err = json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		if payload.Type != events.TypeCreated || payload.Backend != "local" || payload.Author != "Greg" {
			return errors.New("unexpected payload " + string(raw))
		}

		return nil
	})

	p := newProducer(sl.Discard(), mock, "")
	require.NoError(t, p.PostCreated(context.Background(), post, "local"))

	p.Stop()
}

func TestDeliveryFailureIsNotFatal(t *testing.T) {
	mock := mocks.NewAsyncProducer(t, nil)
	mock.ExpectInputAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(sl.Discard(), mock, "custom")
	require.NoError(t, p.PostCreated(context.Background(), models.Post{Id: "1"}, "remote"))

	p.Stop()
}

func TestNewProducerCanceled(t *testing.T) {
	ctx, cncl := context.WithCancel(context.Background())
	cncl()

	_, err := NewProducer(ctx, sl.Discard(), []string{"127.0.0.1:1"}, "", time.Second, 3)
	require.Error(t, err)
}

package kafka

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/IBM/sarama"
	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage/events"
)

const (
	initialRetryTime = time.Second
	defaultTopic     = "wall-events"
)

type Producer struct {
	log      *slog.Logger
	producer sarama.AsyncProducer
	topic    string
	done     chan struct{}
}

// NewProducer creates new kafka producer. Creation is retried with
// exponential backoff which is capped by maxTimeout
func NewProducer(
	ctx context.Context,
	log *slog.Logger,
	addrs []string,
	topic string,
	maxTimeout time.Duration,
	retries int,
) (*Producer, error) {
	const op = "kafka.NewProducer"
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Errors = true
	cfg.Producer.Retry.Max = retries
	cfg.Producer.Timeout = maxTimeout

	p, err := sarama.NewAsyncProducer(addrs, cfg)
	if err != nil {
		p, err = tryToCreateProducer(ctx, addrs, cfg, maxTimeout, retries)
		if err != nil {
			return nil, fail(op, err)
		}
	}

	return newProducer(log, p, topic), nil
}

func newProducer(log *slog.Logger, p sarama.AsyncProducer, topic string) *Producer {
	if topic == "" {
		topic = defaultTopic
	}

	producer := &Producer{
		log:      log,
		producer: p,
		topic:    topic,
		done:     make(chan struct{}),
	}
	go producer.drainErrors()

	return producer
}

// tryToCreateProducer tries to make producer instance
func tryToCreateProducer(
	ctx context.Context,
	addrs []string,
	cfg *sarama.Config,
	maxTimeout time.Duration,
	retries int,
) (sarama.AsyncProducer, error) {
	const op = "kafka.tryToCreateProducer"
	var (
		err error
		p   sarama.AsyncProducer
	)
	timeout := initialRetryTime

	for retries > 0 {
		retries--

		select {
		case <-ctx.Done():
			return nil, fail(op, ctx.Err())
		case <-time.After(timeout):
		}

		p, err = sarama.NewAsyncProducer(addrs, cfg)
		if err == nil {
			return p, nil
		}

		timeout *= 2
		if timeout > maxTimeout {
			timeout = maxTimeout
		}
	}
	if err == nil {
		err = sarama.ErrOutOfBrokers
	}

	return nil, fail(op, err)
}

// PostCreated sends event about new post. Delivery is asynchronous,
// failures are logged by the producer
func (p *Producer) PostCreated(ctx context.Context, post models.Post, backend string) error {
	const op = "producer.PostCreated"

	payload, err := events.CollectEventPayload(post.Id, post.Author, post.Message, backend, post.CreatedAt)
	if err != nil {
		return fail(op, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(post.Id),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-id"), Value: []byte(events.CollectEventId())},
			{Key: []byte("event-type"), Value: []byte(events.TypeCreated)},
		},
		Timestamp: time.Now(),
	}

	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		return fail(op, ctx.Err())
	}

	return nil
}

func (p *Producer) drainErrors() {
	const op = "producer.drainErrors"
	defer close(p.done)

	for err := range p.producer.Errors() {
		p.log.Error("failed to deliver event", slog.String("op", op), sl.Err(err))
	}
}

// Stop stops kafka producer, but the first trying to send all messages
func (p *Producer) Stop() {
	const op = "producer.Stop"
	p.log.Info("starting to stop producer", slog.String("op", op))

	p.producer.AsyncClose()
	<-p.done

	p.log.Info("producer is stopped", slog.String("op", op))
}

func fail(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

package postgres

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage"
	"github.com/lib/pq"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
)

// SubscribeToChanges listens to notifications of wall_posts trigger. Any
// event refetches the whole table and passes it to callback. Returned
// function tears the channel down. It is idempotent and must not be
// called from callback.
func (s *Storage) SubscribeToChanges(
	ctx context.Context,
	callback func(posts []models.Post),
) (func(), error) {
	const op = "postgres.SubscribeToChanges"
	log := s.log.With(slog.String("op", op))

	if s.db == nil {
		return func() {}, fail(op, storage.ErrConfigurationMissing)
	}
	if err := ctx.Err(); err != nil {
		return func() {}, fail(op, err)
	}

	l := pq.NewListener(
		s.dsn,
		minReconnectInterval,
		maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn("listener event", slog.Int("event", int(ev)), sl.Err(err))
			}
		},
	)
	if err := l.Listen(storage.ChangesChannel); err != nil {
		l.Close()
		return func() {}, backendFail(op, err)
	}

	sub := newSubscription(s.log, l.Notify, l.Close, s.ListPosts, callback)
	go sub.run()

	log.Info("subscribed to changes", slog.String("channel", storage.ChangesChannel))
	return sub.unsubscribe, nil
}

type subscription struct {
	log      *slog.Logger
	notify   <-chan *pq.Notification
	closeFn  func() error
	fetch    func(ctx context.Context) ([]models.Post, error)
	callback func(posts []models.Post)

	ctx  context.Context
	cncl context.CancelFunc
	once sync.Once
	done chan struct{}
}

func newSubscription(
	log *slog.Logger,
	notify <-chan *pq.Notification,
	closeFn func() error,
	fetch func(ctx context.Context) ([]models.Post, error),
	callback func(posts []models.Post),
) *subscription {
	ctx, cncl := context.WithCancel(context.Background())

	return &subscription{
		log:      log,
		notify:   notify,
		closeFn:  closeFn,
		fetch:    fetch,
		callback: callback,
		ctx:      ctx,
		cncl:     cncl,
		done:     make(chan struct{}),
	}
}

func (s *subscription) run() {
	const op = "postgres.subscription.run"
	log := s.log.With(slog.String("op", op))
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			return
		case n, ok := <-s.notify:
			if !ok {
				log.Info("notification channel is closed")
				return
			}
			// nil is sent after reconnect, events may have been lost meanwhile
			if n == nil {
				log.Info("listener reconnected")
			}

			s.refetch(log)
		}
	}
}

func (s *subscription) refetch(log *slog.Logger) {
	posts, err := s.fetch(s.ctx)
	if s.ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Error("error in real-time subscription", sl.Err(err))
		return
	}

	s.callback(posts)
}

func (s *subscription) unsubscribe() {
	s.once.Do(func() {
		s.cncl()
		if err := s.closeFn(); err != nil {
			s.log.Debug("listener is already closed", sl.Err(err))
		}
		<-s.done
	})
}

package postgres

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

type fakeListener struct {
	notify chan *pq.Notification
	closed atomic.Int32
}

func newFakeListener() *fakeListener {
	return &fakeListener{notify: make(chan *pq.Notification, 4)}
}

func (f *fakeListener) Close() error {
	if f.closed.Add(1) > 1 {
		return errors.New("already closed")
	}
	close(f.notify)
	return nil
}

func TestSubscriptionRefetchesOnEveryEvent(t *testing.T) {
	l := newFakeListener()
	want := []models.Post{{Id: "2"}, {Id: "1"}}
	var fetches atomic.Int32
	got := make(chan []models.Post, 4)

	sub := newSubscription(
		sl.Discard(),
		l.notify,
		l.Close,
		func(ctx context.Context) ([]models.Post, error) {
			fetches.Add(1)
			return want, nil
		},
		func(posts []models.Post) { got <- posts },
	)
	go sub.run()
	defer sub.unsubscribe()

	// insert, delete and a reconnect marker all refetch
	l.notify <- &pq.Notification{Channel: "wall_posts_changes", Extra: "INSERT"}
	l.notify <- &pq.Notification{Channel: "wall_posts_changes", Extra: "DELETE"}
	l.notify <- nil

	for i := 0; i < 3; i++ {
		select {
		case posts := <-got:
			assert.Equal(t, want, posts)
		case <-time.After(waitFor):
			t.Fatalf("callback %d was not invoked", i+1)
		}
	}
	assert.Equal(t, int32(3), fetches.Load())
}

func TestSubscriptionSkipsFailedFetch(t *testing.T) {
	l := newFakeListener()
	var calls atomic.Int32
	got := make(chan []models.Post, 2)

	sub := newSubscription(
		sl.Discard(),
		l.notify,
		l.Close,
		func(ctx context.Context) ([]models.Post, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("boom")
			}
			return []models.Post{{Id: "1"}}, nil
		},
		func(posts []models.Post) { got <- posts },
	)
	go sub.run()
	defer sub.unsubscribe()

	l.notify <- &pq.Notification{}
	l.notify <- &pq.Notification{}

	select {
	case posts := <-got:
		assert.Equal(t, []models.Post{{Id: "1"}}, posts)
	case <-time.After(waitFor):
		t.Fatal("callback was not invoked")
	}
	assert.Empty(t, got)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	l := newFakeListener()
	var callbacks atomic.Int32

	sub := newSubscription(
		sl.Discard(),
		l.notify,
		l.Close,
		func(ctx context.Context) ([]models.Post, error) { return nil, nil },
		func(posts []models.Post) { callbacks.Add(1) },
	)
	go sub.run()

	sub.unsubscribe()
	sub.unsubscribe()

	assert.Equal(t, int32(1), l.closed.Load())
	assert.Equal(t, int32(0), callbacks.Load())
	select {
	case <-sub.done:
	default:
		t.Fatal("delivery goroutine is still running")
	}
}

func TestUnsubscribeAfterChannelClosed(t *testing.T) {
	l := newFakeListener()

	sub := newSubscription(
		sl.Discard(),
		l.notify,
		l.Close,
		func(ctx context.Context) ([]models.Post, error) { return nil, nil },
		func(posts []models.Post) {},
	)
	go sub.run()

	require.NoError(t, l.Close())
	<-sub.done

	assert.NotPanics(t, sub.unsubscribe)
	assert.NotPanics(t, sub.unsubscribe)
}

package wall

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	errs "github.com/IlianBuh/Wall-service/internal/lib/errors"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/lib/mapper"
	"github.com/IlianBuh/Wall-service/internal/lib/reltime"
	refreshworker "github.com/IlianBuh/Wall-service/internal/service/refresh-worker"
	extraresources "github.com/IlianBuh/Wall-service/internal/service/wall/interfaces/extra-resources"
	"github.com/IlianBuh/Wall-service/internal/service/wall/interfaces/repository"
)

// Feed is a snapshot of the wall handed to readers and listeners
type Feed struct {
	State State
	Posts []models.Post
	Error string
}

// Wall holds state of one session. Exactly one of remote and local
// backend is authoritative after Start
type Wall struct {
	log       *slog.Logger
	remote    repository.Remote
	local     repository.Local
	publisher extraresources.EventPublisher
	timeout   time.Duration
	now       func() time.Time

	mu          sync.RWMutex
	state       State
	posts       []models.Post
	lastErr     error
	unsubscribe func()
	stopped     bool

	refresher *refreshworker.Worker
	startOnce sync.Once
	stopOnce  sync.Once

	lmu          sync.Mutex
	listeners    map[int]func(Feed)
	nextListener int
}

// New creates wall. publisher may be nil, then no events are published
func New(
	log *slog.Logger,
	remote repository.Remote,
	local repository.Local,
	publisher extraresources.EventPublisher,
	refreshInterval time.Duration,
	timeout time.Duration,
) *Wall {
	w := &Wall{
		log:       log,
		remote:    remote,
		local:     local,
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
		state:     Loading,
		posts:     []models.Post{},
		listeners: make(map[int]func(Feed)),
	}
	w.refresher = refreshworker.New(log, refreshInterval, w.refreshTimestamps)

	return w
}

// Start resolves which backend is authoritative and loads the feed.
// It never fails: unreachable remote falls back to local storage,
// empty local storage is seeded with example posts
func (w *Wall) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		w.start(ctx)
		w.refresher.Start()
	})
}

func (w *Wall) start(ctx context.Context) {
	const op = "wall.Start"
	log := w.log.With(slog.String("op", op))
	log.Info("starting wall")

	if w.remote.TestConnection(ctx) {
		posts, err := w.remote.ListPosts(ctx)
		if err == nil {
			w.adopt(RemoteActive, posts)
			log.Info("remote backend is active", slog.Int("posts", len(posts)))

			w.subscribe(ctx)
			return
		}

		log.Warn("failed to load posts from remote backend", sl.Err(fmt.Errorf("%w: %w", ErrConnectivity, err)))
	} else {
		log.Info("remote backend is not available, using local storage")
	}

	w.loadLocal(ctx)
}

func (w *Wall) subscribe(ctx context.Context) {
	const op = "wall.subscribe"

	unsubscribe, err := w.remote.SubscribeToChanges(ctx, w.onRemoteChange)
	if err != nil {
		w.log.Error("failed to subscribe to changes", slog.String("op", op), sl.Err(err))
		return
	}

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		unsubscribe()
		return
	}
	w.unsubscribe = unsubscribe
	w.mu.Unlock()
}

func (w *Wall) loadLocal(ctx context.Context) {
	const op = "wall.loadLocal"
	log := w.log.With(slog.String("op", op))

	stored := w.local.GetPosts(ctx)
	if len(stored) > 0 {
		w.adopt(LocalActive, mapper.StoredToPosts(stored))
		log.Info("local storage is active", slog.Int("posts", len(stored)))
		return
	}

	posts := SeedPosts(w.now())
	w.label(posts)
	if !w.local.SavePosts(ctx, mapper.PostsToStored(posts)) {
		log.Warn("failed to persist seed posts")
	}

	w.adopt(LocalActive, posts)
	log.Info("local storage is seeded", slog.Int("posts", len(posts)))
}

func (w *Wall) adopt(state State, posts []models.Post) {
	posts = clonePosts(posts)
	sortFeed(posts)
	w.label(posts)

	w.mu.Lock()
	w.state = state
	w.posts = posts
	w.mu.Unlock()

	w.notify()
}

// onRemoteChange replaces feed with the fetched list. Lists holding the
// same ids are dropped, edits of existing posts are not detected
func (w *Wall) onRemoteChange(posts []models.Post) {
	const op = "wall.onRemoteChange"

	posts = clonePosts(posts)
	sortFeed(posts)
	w.label(posts)

	w.mu.Lock()
	if w.state != RemoteActive || mapper.SameIds(w.posts, posts) {
		w.mu.Unlock()
		return
	}
	w.posts = posts
	w.mu.Unlock()

	w.log.Debug("feed is replaced by remote change", slog.String("op", op), slog.Int("posts", len(posts)))
	w.notify()
}

// SubmitPost writes new post through the active backend and puts it on
// top of the feed. In local mode a failed write is reported with
// [ErrStorage] together with the post: the feed keeps it.
//
// Possible errors: [ErrEmptyMessage], [ErrEmptyAuthor], [ErrNotReady],
// [ErrBackend], [ErrStorage]
func (w *Wall) SubmitPost(ctx context.Context, author, message string) (models.Post, error) {
	const op = "wall.SubmitPost"
	log := w.log.With(slog.String("op", op))

	message = strings.TrimSpace(message)
	author = strings.TrimSpace(author)
	if message == "" {
		return models.Post{}, errs.Fail(op, ErrEmptyMessage)
	}
	if author == "" {
		return models.Post{}, errs.Fail(op, ErrEmptyAuthor)
	}

	if err := ctx.Err(); err != nil {
		return models.Post{}, errs.Fail(op, err)
	}
	if w.timeout > 0 {
		var cncl context.CancelFunc
		ctx, cncl = context.WithTimeout(ctx, w.timeout)
		defer cncl()
	}

	switch w.State() {
	case RemoteActive:
		return w.submitRemote(ctx, log, author, message)
	case LocalActive:
		return w.submitLocal(ctx, log, author, message)
	}

	return models.Post{}, errs.Fail(op, ErrNotReady)
}

func (w *Wall) submitRemote(ctx context.Context, log *slog.Logger, author, message string) (models.Post, error) {
	const op = "wall.submitRemote"

	post, err := w.remote.CreatePost(ctx, author, message)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		w.setError(ErrBackend)
		return models.Post{}, errs.Fail(op, ErrBackend)
	}
	post.Timestamp = reltime.Format(post.CreatedAt, w.now())

	w.mu.Lock()
	if !containsId(w.posts, post.Id) {
		w.posts = prepend(w.posts, post)
	}
	w.lastErr = nil
	w.mu.Unlock()

	w.notify()
	w.publish(ctx, post, RemoteActive)

	log.Info("post is saved", slog.String("post-id", post.Id))
	return post, nil
}

func (w *Wall) submitLocal(ctx context.Context, log *slog.Logger, author, message string) (models.Post, error) {
	const op = "wall.submitLocal"

	// lock is held over the write to keep saved snapshots in order
	w.mu.Lock()
	now := w.now().Truncate(time.Millisecond)
	post := models.Post{
		Id:        w.localId(now),
		Author:    author,
		Message:   message,
		CreatedAt: now,
		Timestamp: reltime.Format(now, now),
	}
	w.posts = prepend(w.posts, post)

	saved := w.local.SavePosts(ctx, mapper.PostsToStored(w.posts))
	if saved {
		w.lastErr = nil
	} else {
		w.lastErr = ErrStorage
	}
	w.mu.Unlock()

	w.notify()
	w.publish(ctx, post, LocalActive)

	if !saved {
		log.Error("failed to save posts to local storage", slog.String("post-id", post.Id))
		return post, errs.Fail(op, ErrStorage)
	}

	log.Info("post is saved", slog.String("post-id", post.Id))
	return post, nil
}

// localId derives id from creation time. Must be called under lock
func (w *Wall) localId(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !containsId(w.posts, id) {
			return id
		}
		ms++
	}
}

func (w *Wall) publish(ctx context.Context, post models.Post, state State) {
	const op = "wall.publish"

	if w.publisher == nil {
		return
	}

	if err := w.publisher.PostCreated(ctx, post, state.String()); err != nil {
		w.log.Warn("failed to publish event", slog.String("op", op), sl.Err(err))
	}
}

func (w *Wall) refreshTimestamps() {
	w.mu.Lock()
	posts := clonePosts(w.posts)
	w.label(posts)
	w.posts = posts
	w.mu.Unlock()

	w.notify()
}

func (w *Wall) label(posts []models.Post) {
	now := w.now()
	for i := range posts {
		posts[i].Timestamp = reltime.Format(posts[i].CreatedAt, now)
	}
}

func (w *Wall) setError(err error) {
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	w.notify()
}

// State returns current state of the session
func (w *Wall) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.state
}

// Feed returns snapshot of the wall
func (w *Wall) Feed() Feed {
	w.mu.RLock()
	defer w.mu.RUnlock()

	f := Feed{
		State: w.state,
		Posts: clonePosts(w.posts),
	}
	if w.lastErr != nil {
		f.Error = w.lastErr.Error()
	}

	return f
}

// Status returns snapshot of the session with backend diagnostics
func (w *Wall) Status(ctx context.Context) models.Status {
	feed := w.Feed()

	return models.Status{
		State:  feed.State.String(),
		Posts:  len(feed.Posts),
		Error:  feed.Error,
		Remote: w.remote.ConfigStatus(),
		Local:  w.local.Info(ctx),
	}
}

// Subscribe registers listener called with snapshot after every change
// of the wall. Returned func removes the listener, it is idempotent
func (w *Wall) Subscribe(listener func(Feed)) func() {
	w.lmu.Lock()
	id := w.nextListener
	w.nextListener++
	w.listeners[id] = listener
	w.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.lmu.Lock()
			delete(w.listeners, id)
			w.lmu.Unlock()
		})
	}
}

func (w *Wall) notify() {
	w.lmu.Lock()
	listeners := make([]func(Feed), 0, len(w.listeners))
	for _, l := range w.listeners {
		listeners = append(listeners, l)
	}
	w.lmu.Unlock()

	if len(listeners) == 0 {
		return
	}

	feed := w.Feed()
	for _, l := range listeners {
		l(feed)
	}
}

// Stop tears down change subscription and timestamp refresh. Idempotent
func (w *Wall) Stop() {
	const op = "wall.Stop"

	w.stopOnce.Do(func() {
		w.log.Info("stopping wall", slog.String("op", op))

		w.refresher.Stop()

		w.mu.Lock()
		unsubscribe := w.unsubscribe
		w.unsubscribe = nil
		w.stopped = true
		w.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}

		w.lmu.Lock()
		clear(w.listeners)
		w.lmu.Unlock()

		w.log.Info("wall is stopped", slog.String("op", op))
	})
}

func prepend(posts []models.Post, post models.Post) []models.Post {
	res := make([]models.Post, 0, len(posts)+1)
	res = append(res, post)
	res = append(res, posts...)
	sortFeed(res)

	return res
}

// sortFeed orders posts newest-first
func sortFeed(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func containsId(posts []models.Post, id string) bool {
	for i := range posts {
		if posts[i].Id == id {
			return true
		}
	}

	return false
}

func clonePosts(posts []models.Post) []models.Post {
	res := make([]models.Post, len(posts))
	copy(res, posts)

	return res
}

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/IlianBuh/Wall-service/internal/config/remote"
	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/storage"
	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotConfiguredFailsFast(t *testing.T) {
	s, err := New(sl.Discard(), remote.Config{URL: "https://placeholder.supabase.co", APIKey: "placeholder-key"})
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, s.TestConnection(ctx))

	_, err = s.ListPosts(ctx)
	assert.ErrorIs(t, err, storage.ErrConfigurationMissing)

	_, err = s.CreatePost(ctx, "Greg", "hello")
	assert.ErrorIs(t, err, storage.ErrConfigurationMissing)

	unsubscribe, err := s.SubscribeToChanges(ctx, func([]models.Post) {})
	assert.ErrorIs(t, err, storage.ErrConfigurationMissing)
	require.NotNil(t, unsubscribe)
	assert.NotPanics(t, unsubscribe)

	assert.False(t, s.ConfigStatus().IsConfigured)
	assert.NotPanics(t, s.Stop)
}

func TestUnreachableBackend(t *testing.T) {
	s, err := New(sl.Discard(), remote.Config{
		URL:     "postgres://127.0.0.1:1/wall?sslmode=disable&connect_timeout=1",
		APIKey:  "unreachable-key-0123456789",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	defer s.Stop()

	assert.False(t, s.TestConnection(context.Background()))

	_, err = s.ListPosts(context.Background())
	assert.ErrorIs(t, err, storage.ErrBackend)
}

// TestIntegration runs against migrated database given by
// WALL_TEST_BACKEND_URL and WALL_TEST_API_KEY
func TestIntegration(t *testing.T) {
	cfg := remote.Config{
		URL:     os.Getenv("WALL_TEST_BACKEND_URL"),
		APIKey:  os.Getenv("WALL_TEST_API_KEY"),
		Timeout: 5 * time.Second,
	}
	if !cfg.IsConfigured() {
		t.Skip("remote test backend is not configured")
	}

	s, err := New(sl.Discard(), cfg)
	require.NoError(t, err)
	defer s.Stop()
	ctx := context.Background()

	require.True(t, s.TestConnection(ctx))

	changes := make(chan []models.Post, 8)
	unsubscribe, err := s.SubscribeToChanges(ctx, func(posts []models.Post) { changes <- posts })
	require.NoError(t, err)
	defer unsubscribe()

	author, message := gofakeit.Name(), gofakeit.Sentence(8)
	created, err := s.CreatePost(ctx, author, message)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, author, created.Author)
	assert.Equal(t, message, created.Message)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}

	select {
	case posts := <-changes:
		found := false
		for _, p := range posts {
			found = found || p.Id == created.Id
		}
		assert.True(t, found)
	case <-time.After(10 * time.Second):
		t.Fatal("change notification was not received")
	}

	_, err = s.CreatePost(ctx, author, "   ")
	assert.ErrorIs(t, err, storage.ErrBackend)
}

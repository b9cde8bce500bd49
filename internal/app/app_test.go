package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlianBuh/Wall-service/internal/config"
	"github.com/IlianBuh/Wall-service/internal/config/grpcobj"
	"github.com/IlianBuh/Wall-service/internal/config/httpobj"
	"github.com/IlianBuh/Wall-service/internal/config/storage"
	cfgWall "github.com/IlianBuh/Wall-service/internal/config/wall"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/service/wall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{
		Env:   "local",
		Local: storage.Config{Path: filepath.Join(t.TempDir(), "wall.db")},
		Wall:  cfgWall.Config{RefreshInterval: time.Minute, Timeout: time.Second},
		GRPC:  grpcobj.Config{Port: 0, Timeout: time.Second},
		HTTP:  httpobj.Config{Host: "127.0.0.1", Port: 0, Timeout: time.Second},
	}

	a := New(context.Background(), sl.Discard(), cfg)
	a.Start(context.Background())

	assert.Equal(t, wall.LocalActive, a.Wall.State())
	assert.Len(t, a.Wall.Feed().Posts, 6)

	_, err := a.Wall.SubmitPost(context.Background(), "Greg", "persisted")
	require.NoError(t, err)
	assert.Len(t, a.Local.GetPosts(context.Background()), 7)
	assert.Nil(t, a.EventProducer)

	done := make(chan struct{})
	go func() {
		a.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("application did not stop")
	}
}

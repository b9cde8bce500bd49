package repository

import (
	"context"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

type Remote interface {
	// TestConnection reports whether backend is reachable. Never fails
	TestConnection(ctx context.Context) bool

	// ListPosts returns all posts newest-first
	ListPosts(ctx context.Context) ([]models.Post, error)

	// CreatePost saves the record. Id and creation time are assigned by backend
	CreatePost(ctx context.Context, author string, message string) (models.Post, error)

	// SubscribeToChanges calls callback with fresh list on every change of
	// the table. Returned func tears the subscription down
	SubscribeToChanges(ctx context.Context, callback func(posts []models.Post)) (func(), error)

	ConfigStatus() models.RemoteStatus
}

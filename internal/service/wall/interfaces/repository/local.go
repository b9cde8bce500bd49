package repository

import (
	"context"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

// Local is failure tolerant storage, it reports problems with safe defaults
type Local interface {
	GetPosts(ctx context.Context) []models.StoredPost
	SavePosts(ctx context.Context, posts []models.StoredPost) bool
	ClearPosts(ctx context.Context) bool
	Info(ctx context.Context) models.StorageInfo
}

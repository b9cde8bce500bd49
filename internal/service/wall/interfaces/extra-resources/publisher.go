package extraresources

import (
	"context"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

type EventPublisher interface {
	// PostCreated announces new post written to backend
	PostCreated(ctx context.Context, post models.Post, backend string) error
}

package mapper

import (
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

// ToStored converts post to the local storage record
func ToStored(p models.Post) models.StoredPost {
	return models.StoredPost{
		Id:        p.Id,
		Author:    p.Author,
		Message:   p.Message,
		Timestamp: p.Timestamp,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}

// FromStored converts local storage record to post
func FromStored(p models.StoredPost) models.Post {
	return models.Post{
		Id:        p.Id,
		Author:    p.Author,
		Message:   p.Message,
		Timestamp: p.Timestamp,
		CreatedAt: time.UnixMilli(p.CreatedAt),
	}
}

func PostsToStored(posts []models.Post) []models.StoredPost {
	res := make([]models.StoredPost, len(posts))
	for i := range posts {
		res[i] = ToStored(posts[i])
	}

	return res
}

func StoredToPosts(posts []models.StoredPost) []models.Post {
	res := make([]models.Post, len(posts))
	for i := range posts {
		res[i] = FromStored(posts[i])
	}

	return res
}

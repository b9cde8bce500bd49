package grpcserver

import (
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/IlianBuh/Wall-service/internal/service/wall"
)

type Post struct {
	Id        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}

type ListPostsRequest struct{}

type ListPostsResponse struct {
	State string `json:"state"`
	Posts []Post `json:"posts"`
	Error string `json:"error,omitempty"`
}

type SubmitPostRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

type SubmitPostResponse struct {
	Post Post `json:"post"`
	// Warning is set when post is shown but not persisted
	Warning string `json:"warning,omitempty"`
}

type StatusRequest struct{}

type StatusResponse struct {
	Status models.Status `json:"status"`
}

type WatchFeedRequest struct{}

type FeedUpdate = ListPostsResponse

func toPost(p models.Post) Post {
	return Post{
		Id:        p.Id,
		Author:    p.Author,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		Timestamp: p.Timestamp,
	}
}

func toFeed(f wall.Feed) *ListPostsResponse {
	posts := make([]Post, len(f.Posts))
	for i := range f.Posts {
		posts[i] = toPost(f.Posts[i])
	}

	return &ListPostsResponse{
		State: f.State.String(),
		Posts: posts,
		Error: f.Error,
	}
}

package events

import (
	"encoding/json"
	"time"

	e "github.com/IlianBuh/Wall-service/internal/lib/errors"
	"github.com/google/uuid"
)

const (
	TypeCreated = "post.created"
)

type EventPayload struct {
	Type      string    `json:"type"`
	PostId    string    `json:"post-id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Backend   string    `json:"backend"`
	CreatedAt time.Time `json:"created-at"`
}

func CollectEventPayload(postId, author, message, backend string, createdAt time.Time) ([]byte, error) {
	const op = "event.CollectEventPayload"

	payload, err := json.Marshal(EventPayload{
		Type:      TypeCreated,
		PostId:    postId,
		Author:    author,
		Message:   message,
		Backend:   backend,
		CreatedAt: createdAt.UTC(),
	})
	if err != nil {
		return nil, e.Fail(op, err)
	}

	return payload, nil
}

func CollectEventId() string {
	return uuid.NewString()
}

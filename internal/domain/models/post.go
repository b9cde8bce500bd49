package models

import (
	"time"
)

// Post is a single wall entry. Timestamp is a relative-time label derived
// from CreatedAt and is never treated as the source of truth.
type Post struct {
	Id        string
	Author    string
	Message   string
	CreatedAt time.Time
	Timestamp string
}

// StoredPost is the record persisted by the local store. CreatedAt is
// unix time in milliseconds.
type StoredPost struct {
	Id        string `json:"id"`
	Author    string `json:"author"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	CreatedAt int64  `json:"createdAt"`
}

package mapper

import (
	"testing"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posts(ids ...string) []models.Post {
	res := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		res = append(res, models.Post{Id: id})
	}
	return res
}

func TestSameIds(t *testing.T) {
	tests := []struct {
		name string
		a, b []models.Post
		want bool
	}{
		{"both empty", nil, nil, true},
		{"same order", posts("1", "2"), posts("1", "2"), true},
		{"other order", posts("1", "2"), posts("2", "1"), true},
		{"new id", posts("1", "2"), posts("3", "1", "2"), false},
		{"removed id", posts("1", "2"), posts("1"), false},
		{"replaced id", posts("1", "2"), posts("1", "3"), false},
		{"duplicates count once", posts("1", "1", "2"), posts("2", "1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameIds(tt.a, tt.b))
		})
	}
}

func TestSameIdsIgnoresContent(t *testing.T) {
	a := []models.Post{{Id: "1", Message: "before"}}
	b := []models.Post{{Id: "1", Message: "after"}}

	assert.True(t, SameIds(a, b))
}

func TestStoredConversion(t *testing.T) {
	created := time.UnixMilli(1760000000123)
	p := models.Post{
		Id:        "1760000000123",
		Author:    "Anna",
		Message:   "hello",
		CreatedAt: created,
		Timestamp: "just now",
	}

	stored := ToStored(p)
	require.Equal(t, int64(1760000000123), stored.CreatedAt)

	back := FromStored(stored)
	assert.Equal(t, p.Id, back.Id)
	assert.Equal(t, p.Author, back.Author)
	assert.Equal(t, p.Message, back.Message)
	assert.True(t, p.CreatedAt.Equal(back.CreatedAt))
	assert.Equal(t, []string{"1760000000123"}, PostsToIds(StoredToPosts([]models.StoredPost{stored})))
}

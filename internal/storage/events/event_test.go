package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectEventPayload(t *testing.T) {
	created := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

	raw, err := CollectEventPayload("42", "Anna", "hi Greg", "remote", created)
	require.NoError(t, err)

	var got EventPayload
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, EventPayload{
		Type:      TypeCreated,
		PostId:    "42",
		Author:    "Anna",
		Message:   "hi Greg",
		Backend:   "remote",
		CreatedAt: created,
	}, got)
}

func TestCollectEventId(t *testing.T) {
	a, b := CollectEventId(), CollectEventId()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

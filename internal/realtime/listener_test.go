package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdeskhq/contentdesk/internal/store"
)

func TestDecodeInsertPayload(t *testing.T) {
	payload := `{
		"type": "INSERT",
		"record": {
			"id": "a6e8b3f2-1111-4c3a-9f00-000000000001",
			"platform": "instagram",
			"content_type": "reel",
			"caption": "hello",
			"status": "draft",
			"media": [{"id": "m1", "file_name": "a.png", "kind": "image", "file_url": "https://media.example/a.png"}],
			"tags": ["launch"],
			"scheduled_time": "2026-09-01T10:00:00+00:00",
			"created_at": "2026-08-30T08:00:00+00:00",
			"updated_at": "2026-08-30T08:00:00+00:00"
		}
	}`

	ev, err := DecodePayload([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, store.EventInsert, ev.Type)
	require.NotNil(t, ev.Post)
	assert.Equal(t, "a6e8b3f2-1111-4c3a-9f00-000000000001", ev.Post.ID)
	assert.Equal(t, "instagram", ev.Post.Platform)
	require.Len(t, ev.Post.Media, 1)
	assert.Equal(t, "image", ev.Post.Media[0].Kind)
	assert.Equal(t, []string{"launch"}, ev.Post.Tags)
}

func TestDecodeUpdatePayloadWithApproval(t *testing.T) {
	payload := `{
		"type": "UPDATE",
		"record": {
			"id": "a6e8b3f2-1111-4c3a-9f00-000000000002",
			"platform": "tiktok",
			"content_type": "post",
			"status": "approved",
			"approved_at": "2026-08-30T09:30:00+00:00",
			"approved_by": "reviewer@example.com",
			"scheduled_time": "2026-09-01T10:00:00+00:00",
			"created_at": "2026-08-30T08:00:00+00:00",
			"updated_at": "2026-08-30T09:30:00+00:00"
		}
	}`

	ev, err := DecodePayload([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, store.EventUpdate, ev.Type)
	require.NotNil(t, ev.Post.ApprovedAt)
	assert.Equal(t, "reviewer@example.com", ev.Post.ApprovedBy)
}

func TestDecodeDeletePayload(t *testing.T) {
	payload := `{"type": "DELETE", "old_id": "a6e8b3f2-1111-4c3a-9f00-000000000003"}`

	ev, err := DecodePayload([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, store.EventDelete, ev.Type)
	assert.Nil(t, ev.Post)
	assert.Equal(t, "a6e8b3f2-1111-4c3a-9f00-000000000003", ev.OldID)
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := DecodePayload([]byte("not json"))
	assert.Error(t, err)
}

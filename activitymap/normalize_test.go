package activitymap_test

import (
	"testing"
	"time"

	auth "github.com/ragaiq/go-auth"
	"github.com/ragaiq/go-auth/activitymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	occurred := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	event := auth.ActivityEvent{
		EventType:  auth.ActivityEventLoginSuccess,
		Actor:      auth.ActorRef{ID: "acc-1", Type: "user"},
		UserID:     "acc-1",
		OrgID:      "org-1",
		OccurredAt: occurred,
	}

	out := activitymap.Normalize(event)

	assert.Equal(t, "acc-1", out.ActorID)
	assert.Equal(t, "auth.login.success", out.Verb)
	assert.Equal(t, "account", out.ObjectType)
	assert.Equal(t, "acc-1", out.ObjectID)
	assert.Equal(t, "auth", out.Channel)
	assert.Equal(t, occurred, out.OccurredAt)
	assert.Equal(t, "user", out.Metadata[activitymap.MetadataKeyActorType])
	assert.Equal(t, "org-1", out.Metadata[activitymap.MetadataKeyOrgID])
}

func TestNormalizeActorFallbacks(t *testing.T) {
	t.Run("user id stands in for a missing actor", func(t *testing.T) {
		out := activitymap.Normalize(auth.ActivityEvent{UserID: "acc-1"})
		assert.Equal(t, "acc-1", out.ActorID)
	})

	t.Run("system is the final fallback", func(t *testing.T) {
		out := activitymap.Normalize(auth.ActivityEvent{})
		assert.Equal(t, "system", out.ActorID)
	})

	t.Run("custom fallback", func(t *testing.T) {
		out := activitymap.Normalize(auth.ActivityEvent{},
			activitymap.WithActorFallback("batch-import"),
		)
		assert.Equal(t, "batch-import", out.ActorID)
	})
}

func TestNormalizeMetadataFolding(t *testing.T) {
	event := auth.ActivityEvent{
		Actor:  auth.ActorRef{ID: "acc-1", Type: "user"},
		UserID: "acc-1",
		OrgID:  "org-1",
		Metadata: map[string]any{
			"ip":                             "10.0.0.1",
			activitymap.MetadataKeyActorType: "already-set",
		},
	}

	out := activitymap.Normalize(event)

	assert.Equal(t, "10.0.0.1", out.Metadata["ip"])
	assert.Equal(t, "already-set", out.Metadata[activitymap.MetadataKeyActorType],
		"existing metadata keys are not overwritten")
	assert.Equal(t, "org-1", out.Metadata[activitymap.MetadataKeyOrgID])

	// the source event's metadata map stays untouched
	assert.NotContains(t, event.Metadata, activitymap.MetadataKeyOrgID)
}

func TestNormalizeOptions(t *testing.T) {
	event := auth.ActivityEvent{
		EventType: auth.ActivityEventSessionRefreshed,
		UserID:    "acc-1",
		Metadata:  map[string]any{"session_id": "sess-42"},
	}

	out := activitymap.Normalize(event,
		activitymap.WithDefaultChannel("audit"),
		activitymap.WithDefaultObjectType("session"),
		activitymap.WithObjectIDResolver(func(e auth.ActivityEvent) string {
			id, _ := e.Metadata["session_id"].(string)
			return id
		}),
	)

	assert.Equal(t, "audit", out.Channel)
	assert.Equal(t, "session", out.ObjectType)
	assert.Equal(t, "sess-42", out.ObjectID)
}

func TestNormalizeZeroTimestamp(t *testing.T) {
	before := time.Now().UTC()
	out := activitymap.Normalize(auth.ActivityEvent{})
	require.False(t, out.OccurredAt.IsZero())
	assert.WithinDuration(t, before, out.OccurredAt, time.Minute)
}

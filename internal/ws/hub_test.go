package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, c *Client) map[string]interface{} {
	t.Helper()
	select {
	case data := <-c.Send:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &payload))
		return payload
	default:
		t.Fatal("expected a pending message")
		return nil
	}
}

func TestBroadcastSkipsSender(t *testing.T) {
	room := NewRoom("chat_1_2_0")
	sender := NewClient(1)
	receiver := NewClient(2)
	room.Join(sender)
	room.Join(receiver)

	room.Broadcast(sender, map[string]interface{}{"content": "salut"})

	payload := drain(t, receiver)
	assert.Equal(t, "salut", payload["content"])

	select {
	case <-sender.Send:
		t.Fatal("sender must not receive its own broadcast")
	default:
	}
}

func TestBroadcastNilFromReachesEveryone(t *testing.T) {
	room := NewRoom("chat_1_2_0")
	a := NewClient(1)
	b := NewClient(2)
	room.Join(a)
	room.Join(b)

	room.Broadcast(nil, map[string]interface{}{"type": "status"})

	assert.Equal(t, "status", drain(t, a)["type"])
	assert.Equal(t, "status", drain(t, b)["type"])
}

func TestBroadcastSkipsFullClient(t *testing.T) {
	room := NewRoom("chat_1_2_0")
	slow := NewClient(1)
	room.Join(slow)

	for i := 0; i < cap(slow.Send)+10; i++ {
		room.Broadcast(nil, map[string]interface{}{"seq": i})
	}

	assert.Len(t, slow.Send, cap(slow.Send), "overflow is dropped, not blocked on")
}

func TestBroadcastAfterClientClose(t *testing.T) {
	room := NewRoom("chat_1_2_0")
	gone := NewClient(1)
	live := NewClient(2)
	room.Join(gone)
	room.Join(live)

	// A client can close between the snapshot and the send; the
	// broadcast must drop it instead of writing to a closed channel.
	gone.Close()
	room.Broadcast(nil, map[string]interface{}{"type": "status"})

	assert.Equal(t, "status", drain(t, live)["type"])
}

func TestTrySendAfterClose(t *testing.T) {
	c := NewClient(1)
	assert.True(t, c.TrySend([]byte("a")))
	c.Close()
	assert.False(t, c.TrySend([]byte("b")))
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	h := NewHub()
	// Nobody listening is the common case; must be a no-op.
	h.Publish("chat_1_2_0", map[string]interface{}{"content": "hello"})
	assert.Nil(t, h.GetRoom("chat_1_2_0"))
}

func TestHubRoomLifecycle(t *testing.T) {
	h := NewHub()
	room := h.GetOrCreateRoom("chat_1_2_5")
	assert.Same(t, room, h.GetOrCreateRoom("chat_1_2_5"))

	c := NewClient(1)
	room.Join(c)
	h.RemoveRoomIfEmpty("chat_1_2_5")
	assert.NotNil(t, h.GetRoom("chat_1_2_5"), "occupied room stays")

	room.Leave(c)
	h.RemoveRoomIfEmpty("chat_1_2_5")
	assert.Nil(t, h.GetRoom("chat_1_2_5"))
}

func TestClientCloseIdempotent(t *testing.T) {
	c := NewClient(1)
	c.Close()
	c.Close() // second close must not panic
}

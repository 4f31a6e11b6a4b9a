package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"edumate-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T, rdb *redis.Client) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(rdb, logger.NewNopLogger())
	go hub.Run(ctx)

	select {
	case <-hub.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("hub not ready")
	}
	return hub
}

func attach(t *testing.T, hub *Hub, userID uuid.UUID) *Client {
	t.Helper()
	c := &Client{UserID: userID, Send: make(chan []byte, 4), hub: hub}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)
	return c
}

func receive(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case raw := <-c.Send:
		var f Frame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}
	return Frame{}
}

func TestHub_SendLocal(t *testing.T) {
	hub := runHub(t, nil)
	alice, bob := uuid.New(), uuid.New()
	ca := attach(t, hub, alice)
	cb := attach(t, hub, bob)

	require.NoError(t, hub.Send(context.Background(), alice, "notification", map[string]string{"title": "🔥 Streak Continued!"}))

	f := receive(t, ca)
	assert.Equal(t, "notification", f.Type)
	assert.Equal(t, "🔥 Streak Continued!", f.Data.(map[string]interface{})["title"])
	assert.Empty(t, cb.Send)
}

func TestHub_Unregister(t *testing.T) {
	hub := runHub(t, nil)
	id := uuid.New()
	c := attach(t, hub, id)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.Connected(id) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_RedisFanOut(t *testing.T) {
	mr := miniredis.RunT(t)
	newClient := func() *redis.Client {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		return rdb
	}

	a := runHub(t, newClient())
	b := runHub(t, newClient())

	id := uuid.New()
	local := attach(t, a, id)
	remote := attach(t, b, id)

	require.NoError(t, a.Send(context.Background(), id, "notification", "hello"))

	assert.Equal(t, "hello", receive(t, local).Data)
	assert.Equal(t, "hello", receive(t, remote).Data)

	// Own publications are not delivered twice.
	select {
	case <-local.Send:
		t.Fatal("duplicate local delivery")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SendRacesUnregister(t *testing.T) {
	hub := runHub(t, nil)
	id := uuid.New()

	for i := 0; i < 200; i++ {
		c := attach(t, hub, id)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, hub.Send(context.Background(), id, "notification", j))
			}
		}()
		go func() {
			defer wg.Done()
			hub.Unregister(c)
		}()
		wg.Wait()

		require.Eventually(t, func() bool { return hub.Connected(id) == 0 }, time.Second, time.Millisecond)
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	id := uuid.New()
	c := attach(t, hub, id)
	cancel()
	<-stopped

	_, open := <-c.Send
	assert.False(t, open, "stopping the hub closes client channels")

	returned := make(chan struct{})
	go func() {
		hub.Unregister(c)
		late := &Client{UserID: id, Send: make(chan []byte, 1), hub: hub}
		hub.Register(late)
		_, open := <-late.Send
		assert.False(t, open)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked on a stopped hub")
	}
}

package registry

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/matryer/is"
)

func TestInvalidationMessagesReachTheRegistry(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := miniredis.RunT(t)

	client, err := NewRedisClient(ctx, RedisConfig{Addr: srv.Addr()})
	is.NoErr(err)
	defer client.Close()

	ids := make(chan string, 2)
	r := &RegistryMock{
		InvalidateFunc:    func(id string) { ids <- id },
		InvalidateAllFunc: func() { ids <- "all" },
	}

	is.NoErr(ListenForInvalidations(ctx, client, r))

	is.NoErr(PublishInvalidation(ctx, client, "ac-1"))
	is.Equal(receive(t, ids), "ac-1")

	is.NoErr(PublishInvalidation(ctx, client, "*"))
	is.Equal(receive(t, ids), "all")
}

func TestNewRedisClientFailsWhenServerIsDown(t *testing.T) {
	is := is.New(t)

	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
	is.True(err != nil)
}

func receive(t *testing.T, ch chan string) string {
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for invalidation")
	}
	return ""
}

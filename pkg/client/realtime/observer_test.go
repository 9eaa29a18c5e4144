package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"
)

func TestJoinIsSentOnceConnected(t *testing.T) {
	is := is.New(t)
	server := newTestServer()
	defer server.Close()

	o := New(Config{URL: server.url(), Backoff: 10 * time.Millisecond})
	is.NoErr(o.Join("12"))

	o.Start(context.Background())
	defer o.Close()

	is.Equal(waitFor(t, o, types.EventJoinedRoom).Room, "12")
	is.Equal(o.State(), JoinedRoom)

	room, ok := o.Room()
	is.True(ok)
	is.Equal(room, "12")

	is.NoErr(o.Join("12"))
	is.Equal(server.joins(), []string{"12"})
}

func TestReconnectRestoresMembership(t *testing.T) {
	is := is.New(t)
	server := newTestServer()
	defer server.Close()

	o := New(Config{URL: server.url(), Backoff: 10 * time.Millisecond})
	o.Start(context.Background())
	defer o.Close()

	waitForState(t, o, Connected)
	is.NoErr(o.Join("12"))
	waitFor(t, o, types.EventJoinedRoom)

	server.dropConnections()

	is.Equal(waitFor(t, o, types.EventJoinedRoom).Room, "12")
	is.Equal(o.State(), JoinedRoom)
	is.Equal(server.joins(), []string{"12", "12"})
	is.Equal(server.connections(), 2)
}

func TestInvalidRoomLeavesObserverWithoutRoom(t *testing.T) {
	is := is.New(t)
	server := newTestServer()
	defer server.Close()

	o := New(Config{URL: server.url(), Backoff: 10 * time.Millisecond})
	o.Start(context.Background())
	defer o.Close()

	waitForState(t, o, Connected)
	is.NoErr(o.Join("0"))

	waitFor(t, o, types.EventError)
	is.Equal(o.State(), NoRoom)

	_, ok := o.Room()
	is.True(!ok)
}

func TestJoinErrorWithoutRoomRejectsThePendingJoin(t *testing.T) {
	is := is.New(t)
	server := newTestServer()
	defer server.Close()

	o := New(Config{URL: server.url(), Backoff: 10 * time.Millisecond})
	o.Start(context.Background())
	defer o.Close()

	waitForState(t, o, Connected)
	is.NoErr(o.Join("12"))
	waitFor(t, o, types.EventJoinedRoom)

	is.NoErr(o.Join("north-wing"))

	e := waitFor(t, o, types.EventError)
	is.Equal(e.Room, "")
	is.Equal(o.State(), NoRoom)

	_, ok := o.Room()
	is.True(!ok)
}

func TestRetriesAreBounded(t *testing.T) {
	is := is.New(t)
	server := newTestServer()
	url := server.url()
	server.Close()

	o := New(Config{URL: url, MaxRetries: 3, Backoff: 5 * time.Millisecond})
	o.Start(context.Background())

	select {
	case <-o.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("observer did not give up")
	}

	is.Equal(o.State(), Disconnected)
	is.True(strings.Contains(o.Err().Error(), "after 3 attempts"))
	is.True(errors.Is(o.Err(), ErrRetriesExhausted))

	_, open := <-o.Events()
	is.True(!open)
}

func waitFor(t *testing.T, o *Observer, event string) types.RealtimeEvent {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-o.Events():
			if !ok {
				t.Fatalf("observer stopped while waiting for %s: %v", event, o.Err())
			}
			if e.Event == event {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", event)
		}
	}
}

func waitForState(t *testing.T, o *Observer, s State) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for o.State() != s {
		if time.Now().After(deadline) {
			t.Fatalf("observer never reached state %s", s)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type testServer struct {
	*httptest.Server

	mu      sync.Mutex
	joined  []string
	conns   []*websocket.Conn
	created int
}

func newTestServer() *testServer {
	s := &testServer{}
	upgrader := websocket.Upgrader{}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		s.mu.Lock()
		s.conns = append(s.conns, ws)
		s.created++
		s.mu.Unlock()

		for {
			req := types.RealtimeEvent{}
			if err := ws.ReadJSON(&req); err != nil {
				return
			}

			if req.Event != types.EventJoinRoom {
				continue
			}

			s.mu.Lock()
			s.joined = append(s.joined, req.Room)
			s.mu.Unlock()

			if req.Room == "0" {
				e, _ := types.NewRealtimeEvent(types.EventError, req.Room, types.RealtimeError{Reason: "invalid"})
				ws.WriteJSON(e)
				continue
			}

			if req.Room == "north-wing" {
				e, _ := types.NewRealtimeEvent(types.EventError, "", types.RealtimeError{Reason: "invalid"})
				ws.WriteJSON(e)
				continue
			}

			ws.WriteJSON(types.RealtimeEvent{Event: types.EventJoinedRoom, Room: req.Room})
		}
	}))

	return s
}

func (s *testServer) url() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func (s *testServer) joins() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.joined...)
}

func (s *testServer) connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

func (s *testServer) dropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ws := range s.conns {
		ws.Close()
	}
	s.conns = nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/internal/pkg/presentation/api/auth"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// realtimeHandler upgrades the request to a websocket and serves one observer until it disconnects.
func realtimeHandler(log zerolog.Logger, hub rooms.Hub, writeTimeout time.Duration) http.HandlerFunc {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("websocket upgrade failed")
			return
		}

		c := hub.Connect()
		observerLog := log.With().Uint64("observer", c.ID()).Logger()
		observerLog.Debug().Msg("observer connected")

		go writeEvents(ws, c, writeTimeout, observerLog)

		readRequests(r.Context(), ws, hub, c, observerLog)

		hub.Disconnect(c)
		observerLog.Debug().Msg("observer disconnected")
	}
}

func readRequests(ctx context.Context, ws *websocket.Conn, hub rooms.Hub, c *rooms.Conn, log zerolog.Logger) {
	ws.SetReadLimit(4096)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		req := types.RealtimeEvent{}
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info().Err(err).Msg("observer connection lost")
			}
			return
		}

		reply := handleRequest(ctx, hub, c, req)
		if !c.Deliver(reply) {
			log.Warn().Str("event", reply.Event).Msg("reply dropped, observer queue is full")
		}
	}
}

func handleRequest(ctx context.Context, hub rooms.Hub, c *rooms.Conn, req types.RealtimeEvent) types.RealtimeEvent {
	switch req.Event {
	case types.EventJoinRoom:
		if rooms.ValidRoomID(req.Room) && !auth.Allowed(ctx, req.Room, auth.ScopeRead) {
			if current, ok := c.Room(); ok {
				hub.Leave(c, current)
			}
			return errorEvent(req.Room, "access to warehouse denied")
		}

		if _, err := hub.Join(c, req.Room); err != nil {
			var joinErr *rooms.RoomJoinError
			if errors.As(err, &joinErr) {
				return errorEvent(req.Room, joinErr.Reason)
			}
			return errorEvent(req.Room, err.Error())
		}

		return types.RealtimeEvent{Event: types.EventJoinedRoom, Room: req.Room}

	case types.EventLeaveRoom:
		if !hub.Leave(c, req.Room) {
			return errorEvent(req.Room, "not a member of the room")
		}
		return types.RealtimeEvent{Event: types.EventLeftRoom, Room: req.Room}
	}

	return errorEvent(req.Room, "unknown request "+req.Event)
}

func errorEvent(room, reason string) types.RealtimeEvent {
	e, _ := types.NewRealtimeEvent(types.EventError, room, types.RealtimeError{Reason: reason})
	return e
}

// writeEvents is the only writer of ws. It returns when the observer's queue is closed.
func writeEvents(ws *websocket.Conn, c *rooms.Conn, writeTimeout time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case e, ok := <-c.Events():
			ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteJSON(e); err != nil {
				log.Debug().Err(err).Msg("unable to write event")
				return
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

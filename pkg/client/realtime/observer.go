package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gorilla/websocket"
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	JoinedRoom
	NoRoom
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case JoinedRoom:
		return "joinedRoom"
	case NoRoom:
		return "noRoom"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrRetriesExhausted = errors.New("reconnect retries exhausted")
	ErrNotConnected     = errors.New("not connected")
	ErrClosed           = errors.New("observer closed")
)

const DefaultMaxRetries int = 5

type Config struct {
	URL        string
	Header     http.Header
	MaxRetries int
	Backoff    time.Duration
	BufferSize int
}

// Observer keeps a websocket connection to the realtime endpoint and follows one warehouse room.
// The requested room is rejoined after every reconnect.
type Observer struct {
	cfg    Config
	dialer *websocket.Dialer
	events chan types.RealtimeEvent

	mu        sync.Mutex
	state     State
	room      string
	requested string
	joining   string
	ws        *websocket.Conn
	err       error
	cancel    context.CancelFunc
	done      chan struct{}

	writeMu sync.Mutex
}

func New(cfg Config) *Observer {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 32
	}

	return &Observer{
		cfg:    cfg,
		dialer: websocket.DefaultDialer,
		events: make(chan types.RealtimeEvent, cfg.BufferSize),
		state:  Disconnected,
		done:   make(chan struct{}),
	}
}

// Start connects in the background. Events are delivered on Events until the observer
// gives up or is closed, after which the channel is closed.
func (o *Observer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	o.cancel = cancel
	o.mu.Unlock()

	go o.run(ctx)
}

func (o *Observer) Events() <-chan types.RealtimeEvent {
	return o.events
}

func (o *Observer) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Room returns the room the observer is currently a member of.
func (o *Observer) Room() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.room, o.state == JoinedRoom
}

// Err returns the reason the observer stopped, if it has.
func (o *Observer) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Done is closed when the observer has stopped.
func (o *Observer) Done() <-chan struct{} {
	return o.done
}

// Join requests membership in a room. The request is remembered and sent as soon as a
// connection exists. Joining the current room does nothing.
func (o *Observer) Join(room string) error {
	o.mu.Lock()
	if o.err != nil {
		o.mu.Unlock()
		return o.err
	}

	o.requested = room

	if o.state == JoinedRoom && o.room == room {
		o.mu.Unlock()
		return nil
	}

	ws := o.ws
	if ws != nil {
		o.joining = room
	}
	o.mu.Unlock()

	if ws == nil {
		return nil
	}

	return o.send(ws, types.RealtimeEvent{Event: types.EventJoinRoom, Room: room})
}

// Leave leaves the current room and forgets the requested one.
func (o *Observer) Leave() error {
	o.mu.Lock()
	room := o.room
	joined := o.state == JoinedRoom
	o.requested = ""
	ws := o.ws
	o.mu.Unlock()

	if !joined {
		return nil
	}
	if ws == nil {
		return ErrNotConnected
	}

	return o.send(ws, types.RealtimeEvent{Event: types.EventLeaveRoom, Room: room})
}

func (o *Observer) Close() {
	o.mu.Lock()
	cancel := o.cancel
	ws := o.ws
	o.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	if ws != nil {
		ws.Close()
	}

	<-o.done
}

func (o *Observer) send(ws *websocket.Conn, e types.RealtimeEvent) error {
	o.writeMu.Lock()
	defer o.writeMu.Unlock()

	return ws.WriteJSON(e)
}

func (o *Observer) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Observer) run(ctx context.Context) {
	log := logging.GetFromContext(ctx).With().Str("url", o.cfg.URL).Logger()

	defer func() {
		o.mu.Lock()
		o.state = Disconnected
		o.ws = nil
		o.room = ""
		if o.err == nil {
			o.err = ErrClosed
		}
		o.mu.Unlock()

		close(o.events)
		close(o.done)
	}()

	for {
		ws, err := o.connect(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Msg("giving up on realtime connection")
				o.mu.Lock()
				o.err = err
				o.mu.Unlock()
			}
			return
		}

		log.Debug().Msg("connected")

		err = o.serve(ctx, ws)
		ws.Close()

		if ctx.Err() != nil {
			return
		}

		log.Info().Err(err).Msg("realtime connection lost, reconnecting")
	}
}

// connect dials until a connection is made or the retry budget is spent, then rejoins the
// requested room.
func (o *Observer) connect(ctx context.Context) (*websocket.Conn, error) {
	var lastErr error

	for attempt := 0; attempt < o.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.cfg.Backoff):
			}
		}

		o.mu.Lock()
		o.state = Connecting
		o.ws = nil
		o.room = ""
		o.mu.Unlock()

		ws, _, err := o.dialer.DialContext(ctx, o.cfg.URL, o.cfg.Header)
		if err != nil {
			lastErr = err
			continue
		}

		o.mu.Lock()
		o.state = Connected
		o.ws = ws
		requested := o.requested
		o.joining = requested
		o.mu.Unlock()

		if requested != "" {
			if err := o.send(ws, types.RealtimeEvent{Event: types.EventJoinRoom, Room: requested}); err != nil {
				ws.Close()
				lastErr = err
				continue
			}
		}

		return ws, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, o.cfg.MaxRetries, lastErr)
}

func (o *Observer) serve(ctx context.Context, ws *websocket.Conn) error {
	for {
		e := types.RealtimeEvent{}
		if err := ws.ReadJSON(&e); err != nil {
			return err
		}

		o.track(e)

		select {
		case o.events <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// track follows the membership changes reported by the server.
func (o *Observer) track(e types.RealtimeEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch e.Event {
	case types.EventJoinedRoom:
		o.state = JoinedRoom
		o.room = e.Room
		if o.joining == e.Room {
			o.joining = ""
		}
	case types.EventLeftRoom:
		o.state = NoRoom
		o.room = ""
	case types.EventError:
		// errors do not always name the room, one that arrives while a join is pending rejects it
		if o.joining == "" || (e.Room != "" && e.Room != o.joining) {
			return
		}
		if o.requested == o.joining {
			o.requested = ""
		}
		o.joining = ""
		o.state = NoRoom
		o.room = ""
	}
}

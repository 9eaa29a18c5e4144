package rooms

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/diwise/iot-climate-control/pkg/types"
)

var roomID = regexp.MustCompile(`^[1-9][0-9]{0,9}$`)

// ValidRoomID reports whether id is a positive decimal warehouse id of at most ten digits.
func ValidRoomID(id string) bool {
	return roomID.MatchString(id)
}

type RoomJoinError struct {
	Room   string
	Reason string
}

func (e *RoomJoinError) Error() string {
	return fmt.Sprintf("unable to join room %q: %s", e.Room, e.Reason)
}

var ErrConnectionClosed = errors.New("connection closed")

// Conn is the server side state of one realtime observer. It is a member of at most one room.
type Conn struct {
	id   uint64
	send chan types.RealtimeEvent

	mu     sync.Mutex
	room   string
	closed bool
}

func (c *Conn) ID() uint64 {
	return c.id
}

// Events returns the queue of events waiting to be written to the observer. It is closed on disconnect.
func (c *Conn) Events() <-chan types.RealtimeEvent {
	return c.send
}

func (c *Conn) Room() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.room, c.room != ""
}

// Deliver queues an event for this connection only. It reports false if the event was dropped.
func (c *Conn) Deliver(e types.RealtimeEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

type room struct {
	mu      sync.RWMutex
	members map[*Conn]struct{}
}

type Hub interface {
	Connect() *Conn
	Join(c *Conn, id string) (bool, error)
	Leave(c *Conn, id string) bool
	Disconnect(c *Conn)

	Publish(warehouseID string, e types.RealtimeEvent) int
	PublishData(warehouseID, event string, data any) error
	Members(warehouseID string) int
}

type hub struct {
	bufferSize int
	nextID     uint64

	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub(bufferSize int) Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}

	return &hub{
		bufferSize: bufferSize,
		rooms:      map[string]*room{},
	}
}

func (h *hub) Connect() *Conn {
	return &Conn{
		id:   atomic.AddUint64(&h.nextID, 1),
		send: make(chan types.RealtimeEvent, h.bufferSize),
	}
}

// Join moves c into the room of a warehouse. Joining the current room is a no-op, an invalid
// id leaves the current room and reports a *RoomJoinError.
func (h *hub) Join(c *Conn, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrConnectionClosed
	}

	if !ValidRoomID(id) {
		h.leave(c)
		return false, &RoomJoinError{Room: id, Reason: "warehouse id must be a positive integer of at most 10 digits"}
	}

	if c.room == id {
		return false, nil
	}

	h.leave(c)

	r := h.room(id, true)
	r.mu.Lock()
	r.members[c] = struct{}{}
	r.mu.Unlock()

	c.room = id

	return true, nil
}

// Leave removes c from the room id. It reports false if c was not a member of that room.
func (h *hub) Leave(c *Conn, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.room == "" || c.room != id {
		return false
	}

	h.leave(c)
	return true
}

func (h *hub) Disconnect(c *Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	h.leave(c)
	c.closed = true
	close(c.send)
}

// leave must be called with c.mu held.
func (h *hub) leave(c *Conn) {
	if c.room == "" {
		return
	}

	if r := h.room(c.room, false); r != nil {
		r.mu.Lock()
		delete(r.members, c)
		r.mu.Unlock()
	}

	c.room = ""
}

func (h *hub) room(id string, create bool) *room {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[id]
	if !ok && create {
		r = &room{members: map[*Conn]struct{}{}}
		h.rooms[id] = r
	}

	return r
}

// Publish offers e to every member of the room without blocking. Members with a full queue miss
// the event. It returns the number of members the event was queued for.
func (h *hub) Publish(warehouseID string, e types.RealtimeEvent) int {
	r := h.room(warehouseID, false)
	if r == nil {
		return 0
	}

	e.Room = warehouseID
	delivered := 0

	r.mu.RLock()
	defer r.mu.RUnlock()

	for c := range r.members {
		select {
		case c.send <- e:
			delivered++
		default:
		}
	}

	return delivered
}

func (h *hub) PublishData(warehouseID, event string, data any) error {
	e, err := types.NewRealtimeEvent(event, warehouseID, data)
	if err != nil {
		return err
	}

	h.Publish(warehouseID, e)

	return nil
}

func (h *hub) Members(warehouseID string) int {
	r := h.room(warehouseID, false)
	if r == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

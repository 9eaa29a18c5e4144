package webevents

import (
	"net/http"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/iot-climate-control/internal/pkg/application/rooms"
	"github.com/diwise/iot-climate-control/pkg/types"
)

const PathPrefix string = "/api/v0/events/"

// Path is the stream of server sent events for a warehouse.
func Path(warehouseID string) string {
	return PathPrefix + warehouseID
}

//go:generate moq -rm -out webevents_mock.go . WebEvents

type WebEvents interface {
	http.Handler
	Shutdown()
	Publish(warehouseID string, e types.RealtimeEvent)
}

type webEvents struct {
	s *gosse.Server
}

func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{}),
	}
}

// ServeHTTP streams the events of the warehouse named by the request path.
func (we *webEvents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	we.s.ServeHTTP(w, r)
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

func (we *webEvents) Publish(warehouseID string, e types.RealtimeEvent) {
	data := string(e.Data)
	if data == "" {
		data = "{}"
	}

	we.s.SendMessage(Path(warehouseID), gosse.NewMessage("", data, e.Event))
}

type mirror struct {
	rooms.Hub
	we WebEvents
}

// Mirror returns a hub that also sends every published event to the warehouse's event stream.
func Mirror(hub rooms.Hub, we WebEvents) rooms.Hub {
	return &mirror{Hub: hub, we: we}
}

func (m *mirror) Publish(warehouseID string, e types.RealtimeEvent) int {
	m.we.Publish(warehouseID, e)
	return m.Hub.Publish(warehouseID, e)
}

func (m *mirror) PublishData(warehouseID, event string, data any) error {
	e, err := types.NewRealtimeEvent(event, warehouseID, data)
	if err != nil {
		return err
	}

	m.Publish(warehouseID, e)

	return nil
}

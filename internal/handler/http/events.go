package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/biztime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

type EventStreamHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

// Subscriber is satisfied by *sse.Hub.
type Subscriber interface {
	Subscribe(entity string) (<-chan events.Event, func())
}

type eventStreamHandlerImpl struct {
	subscriber Subscriber
	keepalive  time.Duration
}

// Stream handles SSE connections for company and invoice change events.
// ?entity=company or ?entity=invoice narrows the stream.
func (h *eventStreamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")
	switch entity {
	case sse.AllEntities, "company", "invoice":
	default:
		response.BadRequest(w, "Unknown entity", map[string]string{"entity": entity})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	stream, cleanup := h.subscriber.Subscribe(entity)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to marshal stream event", "error", err, "event_type", event.Type)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func NewEventStreamHandler(subscriber Subscriber) EventStreamHandler {
	return &eventStreamHandlerImpl{
		subscriber: subscriber,
		keepalive:  keepaliveInterval,
	}
}

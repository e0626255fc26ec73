package http

import (
	"fmt"
	"net/http"

	rbac "github.com/paulvitic/rbac-admin"
)

// Subscriber hands out event subscriptions, as inMemory.EventPublisher does.
type Subscriber interface {
	Subscribe() (<-chan rbac.Event, func())
}

// EventsEndpoint streams coordinator state changes as server-sent events.
type EventsEndpoint struct {
	subscriber Subscriber
	logger     *rbac.Logger
}

func NewEventsEndpoint(subscriber Subscriber, logger *rbac.Logger) *EventsEndpoint {
	return &EventsEndpoint{subscriber: subscriber, logger: logger}
}

func (e *EventsEndpoint) Path() string {
	return "/users/events"
}

func (e *EventsEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusNotImplemented, "streaming unsupported")
		return
	}

	events, cancel := e.subscriber.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			data, err := event.ToJsonString()
			if err != nil {
				e.logger.Warn("failed to encode event of request %s: %v", event.RequestID(), err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

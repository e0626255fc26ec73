package rbac

import (
	"encoding/json"
	"reflect"
	"time"
)

type Event interface {
	Type() string
	SessionID() SessionID
	RequestID() RequestID
	TimeStamp() time.Time
	Payload() any
	ToJsonString() (string, error)
}

// StateChanged is published after every coordinator state mutation. Seq
// increases by one per mutation of a session.
type StateChanged struct {
	Seq    uint64 `json:"seq"`
	Action Action `json:"action"`
	Phase  Phase  `json:"phase"`
	Error  string `json:"error,omitempty"`
	Count  int    `json:"count"`
}

type event struct {
	sessionID SessionID
	requestID RequestID
	eventType string
	timeStamp time.Time
	payload   any
}

// NewEvent wraps payload in an Event stamped with the current time.
func NewEvent(sessionID SessionID, requestID RequestID, payload any) Event {
	return &event{
		sessionID: sessionID,
		requestID: requestID,
		eventType: EventType(payload),
		timeStamp: time.Now(),
		payload:   payload,
	}
}

func (e *event) Type() string {
	return e.eventType
}

func (e *event) SessionID() SessionID {
	return e.sessionID
}

func (e *event) RequestID() RequestID {
	return e.requestID
}

func (e *event) TimeStamp() time.Time {
	return e.timeStamp
}

func (e *event) Payload() any {
	return e.payload
}

func (e *event) ToJsonString() (string, error) {
	data, err := json.Marshal(map[string]any{
		"session_id": e.sessionID,
		"request_id": e.requestID,
		"event_type": e.eventType,
		"time_stamp": e.timeStamp,
		"payload":    e.payload,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func EventType(eventPayload any) string {
	return reflect.TypeOf(eventPayload).PkgPath() + "." + reflect.TypeOf(eventPayload).Name()
}

// Publisher delivers events to whoever renders coordinator state. Publish is
// called with the coordinator lock held and must not block.
type Publisher interface {
	Publish(event Event) error
}

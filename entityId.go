package rbac

import (
	"strconv"

	"github.com/google/uuid"
)

// ID is the numeric identity of a user record. It is assigned by the data
// service on creation and never changes afterwards.
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseID parses the decimal form of an ID.
func ParseID(value string) (ID, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return ID(i), nil
}

// SessionID identifies one dashboard session and the coordinator it owns.
type SessionID string

// RequestID identifies a single dispatched request action.
type RequestID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

func (s SessionID) String() string {
	return string(s)
}

func (r RequestID) String() string {
	return string(r)
}

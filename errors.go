package rbac

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a UserService when no record carries the
	// requested identity.
	ErrNotFound = errors.New("User not found")
	// ErrValidation marks every ValidationError.
	ErrValidation = errors.New("invalid user")
)

// NotFound wraps ErrNotFound with the identity that was looked up.
func NotFound(id ID) error {
	return fmt.Errorf("%w with id: %s", ErrNotFound, id)
}

// ValidationError reports the first rule a candidate record broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Action names a coordinator request action.
type Action string

const (
	ActionFetch  Action = "fetch"
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Fixed messages surfaced when the service rejects a mutation.
const (
	MessageAddFailed    = "Failed to add user"
	MessageUpdateFailed = "Failed to update user"
	MessageDeleteFailed = "Failed to delete user"
)

// RequestError is the failure a coordinator action reports. Message is what the
// presentation layer shows; Cause keeps the original error for errors.Is/As.
type RequestError struct {
	Action  Action
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// failureMessage maps a service failure of the given action to the message
// that is surfaced. Fetch uses the underlying message as is.
func failureMessage(action Action, cause error) string {
	switch action {
	case ActionAdd:
		return MessageAddFailed
	case ActionUpdate:
		return MessageUpdateFailed
	case ActionDelete:
		return MessageDeleteFailed
	default:
		return cause.Error()
	}
}

package rbac

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/paulvitic/rbac-admin"

// State is a snapshot of the fields a coordinator exposes to the
// presentation layer.
type State struct {
	SessionID SessionID `json:"sessionId"`
	Seq       uint64    `json:"seq"`
	Phase     Phase     `json:"phase"`
	Users     []User    `json:"users"`
	Error     string    `json:"error,omitempty"`
}

// Coordinator owns the user list of one dashboard session together with the
// request phase and the last error. It mediates every read and write between
// the presentation layer and a UserService.
//
// In-flight actions are not serialized against each other. The internal lock
// only guards the fields and is released while the service is called, so
// completions are applied in arrival order and the last one wins.
type Coordinator struct {
	service   UserService
	sessionID SessionID
	logger    *Logger
	metrics   *Metrics
	publisher Publisher
	tracer    trace.Tracer

	mu    sync.RWMutex
	seq   uint64
	phase Phase
	users []User
	err   string
}

type Option func(*Coordinator)

func WithLogger(logger *Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = metrics
	}
}

// WithPublisher makes the coordinator publish a StateChanged event after
// every mutation.
func WithPublisher(publisher Publisher) Option {
	return func(c *Coordinator) {
		c.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

func WithSessionID(id SessionID) Option {
	return func(c *Coordinator) {
		c.sessionID = id
	}
}

// NewCoordinator creates a coordinator in the idle phase with an empty list.
func NewCoordinator(service UserService, opts ...Option) *Coordinator {
	c := &Coordinator{
		service: service,
		phase:   PhaseIdle,
		users:   []User{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID == "" {
		c.sessionID = NewSessionID()
	}
	if c.logger == nil {
		c.logger = NewNopLogger()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	c.logger = c.logger.With("session", c.sessionID)
	return c
}

func (c *Coordinator) SessionID() SessionID {
	return c.sessionID
}

// Users returns a copy of the current list.
func (c *Coordinator) Users() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.users)
}

func (c *Coordinator) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Error returns the last error message, or "" when there is none.
func (c *Coordinator) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		SessionID: c.sessionID,
		Seq:       c.seq,
		Phase:     c.phase,
		Users:     slices.Clone(c.users),
		Error:     c.err,
	}
}

// FetchUsers moves to the loading phase, then replaces the list with the full
// collection of the service. This is the only action that sets loading.
func (c *Coordinator) FetchUsers(ctx context.Context) Result[[]User] {
	requestID := NewRequestID()
	c.mutate(requestID, ActionFetch, func() {
		c.phase = PhaseLoading
		c.err = ""
	})

	users, err := invoke(ctx, c, requestID, ActionFetch, func(ctx context.Context) ([]User, error) {
		return c.service.ListAll(ctx)
	})
	if err != nil {
		return Failed[[]User](c.fail(requestID, ActionFetch, err))
	}

	c.mutate(requestID, ActionFetch, func() {
		c.users = slices.Clone(users)
		c.phase = PhaseSucceeded
		c.err = ""
	})
	c.metrics.recordRequest(ActionFetch, OutcomeSucceeded)
	return Succeeded(users)
}

// AddUser validates the draft, creates it through the service and appends the
// stored record. The phase is left as it was on success.
func (c *Coordinator) AddUser(ctx context.Context, draft UserDraft) Result[User] {
	requestID := NewRequestID()
	if err := draft.Validate(); err != nil {
		return Failed[User](c.reject(requestID, ActionAdd, err))
	}

	user, err := invoke(ctx, c, requestID, ActionAdd, func(ctx context.Context) (User, error) {
		return c.service.Create(ctx, draft)
	})
	if err != nil {
		return Failed[User](c.fail(requestID, ActionAdd, err))
	}

	c.mutate(requestID, ActionAdd, func() {
		c.users = append(c.users, user)
	})
	c.metrics.recordRequest(ActionAdd, OutcomeSucceeded)
	return Succeeded(user)
}

// UpdateUser validates the record, overwrites it through the service and
// replaces the local entry with the same identity, if there is one.
func (c *Coordinator) UpdateUser(ctx context.Context, user User) Result[User] {
	requestID := NewRequestID()
	if err := user.Validate(); err != nil {
		return Failed[User](c.reject(requestID, ActionUpdate, err))
	}

	updated, err := invoke(ctx, c, requestID, ActionUpdate, func(ctx context.Context) (User, error) {
		return c.service.Update(ctx, user)
	})
	if err != nil {
		return Failed[User](c.fail(requestID, ActionUpdate, err))
	}

	c.mutate(requestID, ActionUpdate, func() {
		if i := slices.IndexFunc(c.users, func(u User) bool { return u.ID == updated.ID }); i != -1 {
			c.users[i] = updated
		}
	})
	c.metrics.recordRequest(ActionUpdate, OutcomeSucceeded)
	return Succeeded(updated)
}

// DeleteUser removes the record through the service and drops it from the
// local list. No validation is applied.
func (c *Coordinator) DeleteUser(ctx context.Context, id ID) Result[ID] {
	requestID := NewRequestID()
	_, err := invoke(ctx, c, requestID, ActionDelete, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.service.Delete(ctx, id)
	})
	if err != nil {
		return Failed[ID](c.fail(requestID, ActionDelete, err))
	}

	c.mutate(requestID, ActionDelete, func() {
		c.users = slices.DeleteFunc(c.users, func(u User) bool { return u.ID == id })
	})
	c.metrics.recordRequest(ActionDelete, OutcomeSucceeded)
	return Succeeded(id)
}

// invoke calls the service inside a span and records its duration.
func invoke[T any](ctx context.Context, c *Coordinator, requestID RequestID, action Action, call func(context.Context) (T, error)) (T, error) {
	ctx, span := c.tracer.Start(ctx, "users."+string(action),
		trace.WithAttributes(
			attribute.String("rbac.session_id", c.sessionID.String()),
			attribute.String("rbac.request_id", requestID.String()),
		))
	defer span.End()

	start := time.Now()
	value, err := call(ctx)
	c.metrics.recordDuration(action, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return value, err
}

// reject reports a validation failure without calling the service.
func (c *Coordinator) reject(requestID RequestID, action Action, cause error) error {
	c.logger.Warn("%s request %s rejected: %v", action, requestID, cause)
	c.metrics.recordRequest(action, OutcomeInvalid)
	return c.setFailed(requestID, &RequestError{Action: action, Message: cause.Error(), Cause: cause})
}

// fail reports a service failure. The cause is logged; only the mapped
// message is surfaced.
func (c *Coordinator) fail(requestID RequestID, action Action, cause error) error {
	if errors.Is(cause, ErrNotFound) {
		c.logger.Warn("%s request %s: %v", action, requestID, cause)
	} else {
		c.logger.Error("%s request %s failed: %v", action, requestID, cause)
	}
	c.metrics.recordRequest(action, OutcomeFailed)
	return c.setFailed(requestID, &RequestError{Action: action, Message: failureMessage(action, cause), Cause: cause})
}

func (c *Coordinator) setFailed(requestID RequestID, err *RequestError) error {
	c.mutate(requestID, err.Action, func() {
		c.phase = PhaseFailed
		c.err = err.Message
	})
	return err
}

// mutate applies change and announces the new state under the lock, so
// events are published in the order changes are applied. Publishers must not
// block or call back into the coordinator.
func (c *Coordinator) mutate(requestID RequestID, action Action, change func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	change()
	c.seq++
	changed := StateChanged{
		Seq:    c.seq,
		Action: action,
		Phase:  c.phase,
		Error:  c.err,
		Count:  len(c.users),
	}

	c.metrics.recordUsers(changed.Count)
	c.logger.Debug("%s request %s: seq=%d phase=%s users=%d", action, requestID, changed.Seq, changed.Phase, changed.Count)

	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(NewEvent(c.sessionID, requestID, changed)); err != nil {
		c.logger.Warn("failed to publish state change of request %s: %v", requestID, err)
	}
}

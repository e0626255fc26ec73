package rbac

import "context"

// UserService is the boundary between the coordinator and the store that
// holds user records. The context carries tracing and logging scope; it is
// not a cancellation signal for the simulated service.
type UserService interface {
	// ListAll returns a copy of the full collection in insertion order
	ListAll(ctx context.Context) ([]User, error)
	// Create assigns an identity to the draft, stores and returns it
	Create(ctx context.Context, draft UserDraft) (User, error)
	// Update overwrites the record with the same identity, failing with ErrNotFound
	Update(ctx context.Context, user User) (User, error)
	// Delete removes the record with the given identity, failing with ErrNotFound
	Delete(ctx context.Context, id ID) error
}

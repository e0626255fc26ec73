package rbac

// Result is the outcome of a coordinator action: either a value or the reason
// the action failed, never both.
type Result[T any] struct {
	value T
	err   error
}

func Succeeded[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the action succeeded.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the result in the usual (value, error) form.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Package result holds the two-case value every network call is reduced to.
package result

import "github.com/juju/errors"

const noResult = "no result"

// Result is either Ok(value) or Err(reason). The zero value is an Err so an
// unset Result never reads as success.
type Result[T any] struct {
	value  T
	reason string
	ok     bool
}

// Ok wraps a successful payload.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err wraps a failure reason. An empty reason is replaced with a placeholder
// so failures always carry text.
func Err[T any](reason string) Result[T] {
	if reason == "" {
		reason = noResult
	}
	return Result[T]{reason: reason}
}

// IsOK reports whether the result is a success.
func (r Result[T]) IsOK() bool {
	return r.ok
}

// Value returns the payload and whether it is present.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// ValueOr returns the payload or def on failure.
func (r Result[T]) ValueOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// Reason returns the failure text; "" on success.
func (r Result[T]) Reason() string {
	if r.ok {
		return ""
	}
	if r.reason == "" {
		return noResult
	}
	return r.reason
}

// Err converts the result to a Go error, nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return errors.New(r.Reason())
}

// Unwrap returns the payload and the failure as an error.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

// Then feeds a successful payload to fn; failures pass through unchanged.
func Then[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Err[U](r.Reason())
	}
	return fn(r.value)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

// Option represents an optional analysis result: Some (a value) or None
// (the heuristic could not safely produce one).
type Option[A any] struct {
	ok    bool
	value A
}

// Some creates an Option holding a value.
func Some[A any](a A) Option[A] {
	return Option[A]{ok: true, value: a}
}

// None creates an empty Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome reports whether the Option holds a value.
func (o Option[A]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[A]) IsNone() bool {
	return !o.ok
}

// Get returns the value and true, or zero and false.
func (o Option[A]) Get() (A, bool) {
	if o.ok {
		return o.value, true
	}
	var zero A
	return zero, false
}

// OrElse returns the value, or fallback when the Option is empty.
func (o Option[A]) OrElse(fallback A) A {
	if o.ok {
		return o.value
	}
	return fallback
}

// MatchOption pattern matches on the Option, calling onSome or onNone.
func MatchOption[A, T any](o Option[A], onSome func(A) T, onNone func() T) T {
	if o.ok {
		return onSome(o.value)
	}
	return onNone()
}

// MapOption applies a function to the held value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.ok {
		return Some(f(o.value))
	}
	return None[B]()
}

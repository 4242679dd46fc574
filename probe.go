// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

// Speculative probe boundary.
//
// The abort signal is a local, non-resumable transfer scoped tightly to one
// Probe call: it is raised only by forcing a poisoned value (or a value
// derived from one) and is always intercepted at the nearest enclosing
// Probe. It is never observable outside that boundary.

// abortSignal is the designated panic payload for speculative forcing.
// Probe intercepts exactly this type; every other failure class passes
// through untouched.
type abortSignal struct{}

// raise is the poisoned thunk body: forcing it aborts the current probe.
func raise[A any]() A { panic(abortSignal{}) }

// Probe fully evaluates f inside a scoped boundary that converts the
// designated abort signal into (zero, false). Any other panic is re-raised.
//
// This is the single synchronization point between ordinary evaluation and
// the speculative probing protocol: every place in the engine that might
// touch a poisoned value routes through it exactly once per attempt.
func Probe[X any](f func() X) (x X, ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, aborted := r.(abortSignal); aborted {
			var zero X
			x, ok = zero, false
			return
		}
		panic(r)
	}()
	return f(), true
}

// Val is an explicit possibly-deferred value: either an already-resolved
// payload or a zero-argument deferred computation. Consumers resolve it
// through [Val.Resolve] (or force it inside an enclosing [Probe] via
// [Val.Force]); nothing in pry relies on incidental evaluation order.
//
// The zero Val resolves to the zero value of A.
type Val[A any] struct {
	thunk func() A
	value A
}

// Of creates an already-resolved Val.
func Of[A any](a A) Val[A] {
	return Val[A]{value: a}
}

// Defer creates a deferred Val. The thunk runs on every Force; callers that
// need memoization should resolve once and keep the result.
func Defer[A any](f func() A) Val[A] {
	return Val[A]{thunk: f}
}

// PoisonVal creates the distinguished Val whose forcing unconditionally
// raises the abort signal.
func PoisonVal[A any]() Val[A] {
	return Val[A]{thunk: raise[A]}
}

// Force evaluates the payload. Forcing a poisoned Val raises the abort
// signal; Force must therefore only be called under an enclosing [Probe]
// (the engine's traversals do this) or on values known to be resolved.
func (v Val[A]) Force() A {
	if v.thunk != nil {
		return v.thunk()
	}
	return v.value
}

// Resolve evaluates the payload inside a [Probe] boundary, returning
// (value, true) on success or (zero, false) when the payload turns out to
// represent absence.
func (v Val[A]) Resolve() (A, bool) {
	return Probe(v.Force)
}

// valCarrier lets the locator synthesize and feed Val-typed function-slot
// arguments of any instantiation through reflection.
type valCarrier interface {
	poisoned() Erased
	resolved(Erased) Erased
}

func (Val[A]) poisoned() Erased { return PoisonVal[A]() }

// resolved boxes a runtime value as a resolved Val[A]. A nil value stands
// for "completed with the zero value", matching kont's nil completion
// convention.
func (Val[A]) resolved(v Erased) Erased {
	if v == nil {
		var zero A
		return Of(zero)
	}
	return Of(v.(A))
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"fmt"
	"reflect"
)

// Runtime slot operations. Derivation (shape.go) fixed the field index path
// and kind per constructor; everything here follows that path on concrete
// descriptor values.

// lookup returns the slot entry for op's constructor.
// Unregistered descriptor types are a caller-contract violation.
func (sh *Shape) lookup(op Operation) slot {
	rt := reflect.TypeOf(op)
	s, ok := sh.slots[rt]
	if !ok {
		panic(fmt.Sprintf("pry: unregistered effect type %v in shape #%d", rt, sh.serial))
	}
	return s
}

// fieldByPath follows a derived field index path into nested products.
func fieldByPath(v reflect.Value, path []int) reflect.Value {
	for _, i := range path {
		v = v.Field(i)
	}
	return v
}

// argSynth produces the argument for a function-shaped slot.
type argSynth func(in reflect.Type) reflect.Value

// Locate extracts the single embedded continuation from op.
//
// Function-shaped slots are applied to a synthesized poisoned argument: if
// evaluating the result forces the argument, the abort signal is raised and
// handled by the enclosing [Probe], not here. Locate must only be invoked
// from inside the engine's own guarded traversal (or an equivalent Probe
// boundary owned by the caller).
func (sh *Shape) Locate(op Operation) Node {
	return sh.apply(op, poisonArg)
}

// Feed is Locate with a known value: a function-shaped slot receives v
// (resolved, not poisoned) instead of the poisoned probe argument. Direct
// slots ignore v. The elimination layer uses Feed to sequence real values
// through continuations.
func (sh *Shape) Feed(op Operation, v Erased) Node {
	return sh.apply(op, func(in reflect.Type) reflect.Value {
		return resolvedArg(in, v)
	})
}

// apply extracts the continuation from op, synthesizing function-slot
// arguments with synth.
func (sh *Shape) apply(op Operation, synth argSynth) Node {
	s := sh.lookup(op)
	fv := fieldByPath(reflect.ValueOf(op), s.path)
	if s.kind == directSlot {
		n, ok := fv.Interface().(Node)
		if !ok || n == nil {
			panic("pry: nil continuation slot in " + s.name)
		}
		return n
	}
	if fv.IsNil() {
		panic("pry: nil continuation slot in " + s.name)
	}
	out := fv.Call([]reflect.Value{synth(fv.Type().In(0))})[0]
	n, ok := out.Interface().(Node)
	if !ok || n == nil {
		panic("pry: continuation of " + s.name + " produced no node")
	}
	return n
}

// poisonArg synthesizes the poisoned probe argument for a function slot:
//
//   - [Val]-typed inputs get a poisoned Val — forcing it aborts;
//   - interface inputs that a poisoned tree satisfies get one;
//   - remaining inputs get their zero value; the heuristic cannot observe
//     inspection of such arguments (documented limit, see package docs).
func poisonArg(in reflect.Type) reflect.Value {
	zero := reflect.Zero(in)
	if vc, ok := zero.Interface().(valCarrier); ok {
		return reflect.ValueOf(vc.poisoned())
	}
	if in.Kind() == reflect.Interface {
		pv := reflect.ValueOf(Poison[Erased]())
		if pv.Type().Implements(in) {
			boxed := reflect.New(in).Elem()
			boxed.Set(pv)
			return boxed
		}
	}
	return zero
}

// resolvedArg boxes a known value as a function slot's input type.
// Val-typed inputs wrap v as a resolved Val; other inputs receive v
// directly when assignable.
func resolvedArg(in reflect.Type, v Erased) reflect.Value {
	zero := reflect.Zero(in)
	if vc, ok := zero.Interface().(valCarrier); ok {
		return reflect.ValueOf(vc.resolved(v))
	}
	if v == nil {
		return zero
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(in) {
		panic(fmt.Sprintf("pry: cannot feed %T into continuation input %v", v, in))
	}
	if in.Kind() == reflect.Interface {
		boxed := reflect.New(in).Elem()
		boxed.Set(rv)
		return boxed
	}
	return rv
}

// Erase returns a copy of op with its continuation slot zeroed — the same
// effect, shape and payload preserved, with the downstream computation
// replaced by the unit placeholder. Erased descriptors are the trace
// entries of an analysis.
func (sh *Shape) Erase(op Operation) TraceEntry {
	s := sh.lookup(op)
	cp := reflect.New(reflect.TypeOf(op)).Elem()
	cp.Set(reflect.ValueOf(op))
	fv := fieldByPath(cp, s.path)
	fv.Set(reflect.Zero(fv.Type()))
	return cp.Interface()
}

// graft returns a copy of op whose continuation slot is rewritten by f.
// This is the effect type's structure-preserving map, derived from the
// shape rather than hand-written: direct slots are rewritten in place,
// function slots compose f after the original function.
func (sh *Shape) graft(op Operation, f func(Node) Node) Operation {
	s := sh.lookup(op)
	cp := reflect.New(reflect.TypeOf(op)).Elem()
	cp.Set(reflect.ValueOf(op))
	fv := fieldByPath(cp, s.path)
	if s.kind == directSlot {
		old, ok := fv.Interface().(Node)
		if !ok || old == nil {
			panic("pry: nil continuation slot in " + s.name)
		}
		setNode(fv, f(old), s.name)
		return cp.Interface()
	}
	if fv.IsNil() {
		panic("pry: nil continuation slot in " + s.name)
	}
	fnType := fv.Type()
	outType := fnType.Out(0)
	orig := reflect.ValueOf(fv.Interface())
	name := s.name
	wrapped := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		out := orig.Call(args)[0]
		n, ok := out.Interface().(Node)
		if !ok || n == nil {
			panic("pry: continuation of " + name + " produced no node")
		}
		res := reflect.New(outType).Elem()
		setNode(res, f(n), name)
		return []reflect.Value{res}
	})
	fv.Set(wrapped)
	return cp.Interface()
}

// plant returns a copy of op with its direct continuation slot set to n.
// The builder fills slots this way; function-shaped slots already carry
// their continuation and cannot be planted.
func (sh *Shape) plant(op Operation, n Node) Operation {
	s := sh.lookup(op)
	if s.kind != directSlot {
		panic("pry: builder step requires a direct continuation slot, " + s.name + " is function-shaped")
	}
	cp := reflect.New(reflect.TypeOf(op)).Elem()
	cp.Set(reflect.ValueOf(op))
	setNode(fieldByPath(cp, s.path), n, s.name)
	return cp.Interface()
}

// setNode assigns a continuation into a slot field or function result.
func setNode(dst reflect.Value, n Node, name string) {
	rv := reflect.ValueOf(n)
	if !rv.Type().AssignableTo(dst.Type()) {
		panic(fmt.Sprintf("pry: continuation %v not assignable to slot %s of type %v", rv.Type(), name, dst.Type()))
	}
	dst.Set(rv)
}

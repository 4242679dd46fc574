// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"code.hybscloud.com/kont"
)

// Operation is the interface for effect descriptors.
// Every value stored in a [Tree]'s suspension is an Operation; the concrete
// type is one constructor of an effect type validated by [Derive].
type Operation = kont.Operation

// Erased marks type-erased intermediate values, following kont's
// type-erasure discipline: erased in the traversal core, recovered via
// type assertions at the boundaries.
type Erased = kont.Erased

// Tree states. The zero value of a Tree is Failed, so an absent result
// never masquerades as a success.
const (
	stateFailed uint8 = iota
	stateDone
	stateSuspended
)

// Node is the type-erased view of a tree held in a descriptor's
// continuation slot. Every [Tree] instantiation implements Node; the
// analysis engine walks Nodes and recovers the typed value only at the
// Done boundary.
type Node interface {
	nodeState() uint8
	nodeOp() Operation
	forceValue() Erased
}

// Tree is a suspended computation with three states, immutable once
// constructed:
//
//   - Done: terminal success carrying a possibly-deferred payload ([Val]);
//   - Suspended: one pending effect descriptor embedding exactly one
//     reachable continuation;
//   - Failed: terminal absence of a result ("no value", not an error).
//
// Trees are persistent: combinators produce new trees, and a tree is
// consumed by exactly one top-down traversal.
type Tree[A any] struct {
	state uint8
	value Val[A]
	op    Operation
}

// Done creates a terminal tree holding a resolved value.
func Done[A any](a A) Tree[A] {
	return Tree[A]{state: stateDone, value: Of(a)}
}

// Delay creates a terminal tree holding a deferred payload.
// The payload is forced only inside a [Probe] boundary; a thunk that raises
// the abort signal stands for "no value".
func Delay[A any](f func() A) Tree[A] {
	return Tree[A]{state: stateDone, value: Defer(f)}
}

// Fail creates a terminal tree representing definite absence of a result.
func Fail[A any]() Tree[A] {
	return Tree[A]{}
}

// Suspend creates a tree suspended on one effect descriptor.
// The descriptor must belong to an effect type whose shape satisfies the
// single-continuation invariant checked by [Derive].
func Suspend[A any](op Operation) Tree[A] {
	return Tree[A]{state: stateSuspended, op: op}
}

// Poison creates the distinguished terminal tree whose payload
// unconditionally raises the abort signal when forced. It stands for "the
// rest of the computation is unknown" during shape derivation and analysis.
func Poison[A any]() Tree[A] {
	return Tree[A]{state: stateDone, value: PoisonVal[A]()}
}

// IsDone reports whether the tree is a terminal success.
// The payload may still turn out to be absent when forced; use [Analyze]
// or [Val.Resolve] to find out.
func (t Tree[A]) IsDone() bool { return t.state == stateDone }

// IsFailed reports whether the tree is a terminal absence.
func (t Tree[A]) IsFailed() bool { return t.state == stateFailed }

// IsSuspended reports whether the tree is suspended on an effect.
func (t Tree[A]) IsSuspended() bool { return t.state == stateSuspended }

// Result returns the Done payload and true, or a zero Val and false.
func (t Tree[A]) Result() (Val[A], bool) {
	if t.state != stateDone {
		return Val[A]{}, false
	}
	return t.value, true
}

// Descriptor returns the suspended effect descriptor and true, or nil and
// false.
func (t Tree[A]) Descriptor() (Operation, bool) {
	if t.state != stateSuspended {
		return nil, false
	}
	return t.op, true
}

func (t Tree[A]) nodeState() uint8 { return t.state }

func (t Tree[A]) nodeOp() Operation { return t.op }

func (t Tree[A]) forceValue() Erased { return Erased(t.value.Force()) }

// failNode is the shared erased Failed node.
var failNode Node = Fail[Erased]()

// doneNode boxes an already-erased value as a terminal node.
func doneNode(v Erased) Node { return Done(v) }

// suspendNode boxes a descriptor as an erased suspended node.
func suspendNode(op Operation) Node { return Suspend[Erased](op) }

// treeOf recovers a typed tree from an erased node.
// Done payloads are rewrapped lazily so that a poisoned payload keeps
// raising the abort signal when forced, not when rewrapped.
func treeOf[A any](n Node) Tree[A] {
	if t, ok := n.(Tree[A]); ok {
		return t
	}
	switch n.nodeState() {
	case stateFailed:
		return Fail[A]()
	case stateSuspended:
		return Suspend[A](n.nodeOp())
	default:
		return Delay(func() A { return n.forceValue().(A) })
	}
}

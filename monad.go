// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

// Tree combinators with free-monad semantics on Suspend/Fail nodes.
//
// Done payloads are speculatively probed before any function is applied: a
// payload standing in for "no value" must be detected before a combinator
// commits to success, so a poisoned Done collapses to Fail. Failed is
// absorbing under sequencing.
//
// Combinators thread through suspended descriptors via the shape's derived
// slot mapping, so descriptors must have Node-typed (or erased-compatible)
// continuation slots.

// Map applies a pure function to the final value of m.
func Map[A, B any](sh *Shape, m Tree[A], f func(A) B) Tree[B] {
	return treeOf[B](mapNode(sh, m, func(v Erased) Erased {
		return f(v.(A))
	}))
}

func mapNode(sh *Shape, n Node, f func(Erased) Erased) Node {
	switch n.nodeState() {
	case stateFailed:
		return failNode
	case stateDone:
		v, ok := Probe(n.forceValue)
		if !ok {
			return failNode
		}
		return doneNode(f(v))
	default:
		return suspendNode(sh.graft(n.nodeOp(), func(k Node) Node {
			return mapNode(sh, k, f)
		}))
	}
}

// Bind sequences m before f (monadic bind): the probed result of m picks
// the next tree.
func Bind[A, B any](sh *Shape, m Tree[A], f func(A) Tree[B]) Tree[B] {
	return treeOf[B](bindNode(sh, m, func(v Erased) Node {
		return f(v.(A))
	}))
}

func bindNode(sh *Shape, n Node, f func(Erased) Node) Node {
	switch n.nodeState() {
	case stateFailed:
		return failNode
	case stateDone:
		v, ok := Probe(n.forceValue)
		if !ok {
			return failNode
		}
		return f(v)
	default:
		return suspendNode(sh.graft(n.nodeOp(), func(k Node) Node {
			return bindNode(sh, k, f)
		}))
	}
}

// Then sequences m before n, discarding m's result. m's Done payload is
// still probed: an absent first result fails the whole sequence.
func Then[A, B any](sh *Shape, m Tree[A], n Tree[B]) Tree[B] {
	return treeOf[B](bindNode(sh, m, func(Erased) Node { return n }))
}

// Ap combines a tree of functions with a tree of arguments (applicative
// combination), sequencing mf before ma.
func Ap[A, B any](sh *Shape, mf Tree[func(A) B], ma Tree[A]) Tree[B] {
	return Bind(sh, mf, func(f func(A) B) Tree[B] {
		return Map(sh, ma, f)
	})
}

// Alt is left-biased choice with failure absorption: a Failed left operand
// yields other; any other left operand yields itself unchanged, independent
// of other's state.
func Alt[A any](m, other Tree[A]) Tree[A] {
	if m.state == stateFailed {
		return other
	}
	return m
}

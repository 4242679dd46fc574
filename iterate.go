// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"code.hybscloud.com/kont"
)

// Generic folds over trees. The algebra consumes one erased descriptor
// together with its already-eliminated continuation; the target type's own
// "no value" (empty) absorbs Failed nodes and aborted probes.

// Algebra reduces one effect descriptor, continuation already eliminated,
// to a result value.
type Algebra[R any] func(op TraceEntry, next R) R

// Iterate eliminates a tree bottom-up: Done resolves to the produced
// value, Suspended applies the algebra to the erased descriptor and the
// eliminated continuation, Failed becomes empty(). Locating a continuation
// that aborts also degrades to empty().
func Iterate[R any](sh *Shape, alg Algebra[R], empty func() R, t Tree[R]) R {
	switch t.state {
	case stateFailed:
		return empty()
	case stateDone:
		v, ok := t.value.Resolve()
		if !ok {
			return empty()
		}
		return v
	default:
		op := t.op
		next, ok := Probe(func() Node { return sh.Locate(op) })
		if !ok {
			return empty()
		}
		return alg(sh.Erase(op), Iterate(sh, alg, empty, treeOf[R](next)))
	}
}

// IterateE is the monadic fold into Go's error monad: the first error
// short-circuits the elimination.
func IterateE[R any](sh *Shape, alg func(op TraceEntry, next R) (R, error), empty func() (R, error), t Tree[R]) (R, error) {
	switch t.state {
	case stateFailed:
		return empty()
	case stateDone:
		v, ok := t.value.Resolve()
		if !ok {
			return empty()
		}
		return v, nil
	default:
		op := t.op
		next, ok := Probe(func() Node { return sh.Locate(op) })
		if !ok {
			return empty()
		}
		r, err := IterateE(sh, alg, empty, treeOf[R](next))
		if err != nil {
			var zero R
			return zero, err
		}
		return alg(sh.Erase(op), r)
	}
}

// IterateEff is the monadic fold into kont's effect world: the algebra may
// perform kont effects while eliminating, and the resulting computation is
// run with an ordinary kont handler.
func IterateEff[R any](sh *Shape, alg func(op TraceEntry, next R) kont.Eff[R], empty kont.Eff[R], t Tree[R]) kont.Eff[R] {
	switch t.state {
	case stateFailed:
		return empty
	case stateDone:
		v, ok := t.value.Resolve()
		if !ok {
			return empty
		}
		return kont.Pure(v)
	default:
		op := t.op
		next, ok := Probe(func() Node { return sh.Locate(op) })
		if !ok {
			return empty
		}
		entry := sh.Erase(op)
		return kont.Bind(IterateEff(sh, alg, empty, treeOf[R](next)), func(r R) kont.Eff[R] {
			return alg(entry, r)
		})
	}
}

// Hoist rewrites every descriptor's shape via nt, a natural transformation
// oblivious to the payload type, leaving Done and Failed nodes untouched.
// Continuations are rewritten first, then nt is applied to the rebuilt
// descriptor; nt must preserve the continuation slot's content.
func Hoist[A any](sh *Shape, nt func(Operation) Operation, t Tree[A]) Tree[A] {
	return treeOf[A](hoistNode(sh, nt, t))
}

func hoistNode(sh *Shape, nt func(Operation) Operation, n Node) Node {
	if n.nodeState() != stateSuspended {
		return n
	}
	mapped := sh.graft(n.nodeOp(), func(k Node) Node {
		return hoistNode(sh, nt, k)
	})
	return suspendNode(nt(mapped))
}

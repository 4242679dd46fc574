// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"code.hybscloud.com/kont"
)

// Bridge between kont's plain two-state suspended computations and pry's
// three-state trees.

// Lifted is the bridge descriptor wrapping one suspended kont operation:
// Op is the pending operation (payload, carried into trace entries);
// Resume feeds the operation's result to the rest of the computation.
//
// Resume handles are affine: a lifted tree is consumed by one traversal.
type Lifted struct {
	Op     kont.Operation
	Resume func(Val[kont.Resumed]) Node
}

// liftedShape is the derived shape of the bridge descriptor: a
// payload-then-continuation product with a function slot.
var liftedShape = MustDerive(Lifted{})

// LiftedShape returns the shape of the bridge descriptor, for analyzing or
// folding trees produced by [FromExpr].
func LiftedShape() *Shape {
	return liftedShape
}

// FromExpr losslessly embeds a plain two-state kont computation into a
// three-state tree; no Failed nodes are produced. Conversion is lazy: each
// effect suspension is converted on demand as the tree is traversed.
//
// Analyzing a lifted tree stops at the first effect with (None, trace):
// the result of a real operation cannot be known without performing it,
// and forcing the poisoned stand-in aborts the probe. Use [Retract] to
// interpret the tree back into the effect world instead.
func FromExpr[A any](m kont.Expr[A]) Tree[A] {
	v, susp := kont.StepExpr(m)
	if susp == nil {
		return Done(v)
	}
	return fromSuspension(susp)
}

func fromSuspension[A any](susp *kont.Suspension[A]) Tree[A] {
	return Suspend[A](Lifted{
		Op: susp.Op(),
		Resume: func(v Val[kont.Resumed]) Node {
			value, next := susp.Resume(v.Force())
			if next == nil {
				return Done(value)
			}
			return fromSuspension(next)
		},
	})
}

// Retract interprets a lifted tree back into the effect world it came
// from, re-performing each pending operation; Failed retracts to [None],
// the target's own no-value. Retract specializes [FoldExpr] to the bridge
// shape:
//
//	expr := pry.Retract(pry.FromExpr(program))
//	result := kont.HandleExpr(expr, handler)
func Retract[A any](t Tree[A]) kont.Expr[Option[A]] {
	return FoldExpr(liftedShape, func(entry TraceEntry) kont.Expr[kont.Resumed] {
		return performErased(entry.(Lifted).Op)
	}, t)
}

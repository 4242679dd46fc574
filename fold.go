// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"code.hybscloud.com/kont"
)

// Fold homomorphisms: structure-preserving transforms from an effect
// type's shape directly into kont's monadic worlds, sequencing through
// continuations. Dual-world API: FoldExpr targets the defunctionalized
// frame representation, FoldEff the closure-based one.

// performErased re-performs a runtime kont operation as an effect frame.
// Constructs the EffectFrame directly because the operation's result type
// is only known at run time (the ExprThrowError construction).
func performErased(op kont.Operation) kont.Expr[kont.Resumed] {
	return kont.Expr[kont.Resumed]{
		Frame: &kont.EffectFrame[kont.Erased]{
			Operation: op,
			Resume:    func(v kont.Erased) kont.Erased { return v },
			Next:      kont.ReturnFrame{},
		},
	}
}

// FoldExpr interprets a tree into kont's defunctionalized world. Each
// descriptor is interpreted as a computation whose produced value feeds
// the continuation slot (direct slots ignore it); Failed and aborted
// probes fold to [None].
//
// The resulting Expr is evaluated with any ordinary kont handler, e.g.
// [kont.HandleExpr].
func FoldExpr[A any](sh *Shape, interpret func(op TraceEntry) kont.Expr[kont.Resumed], t Tree[A]) kont.Expr[Option[A]] {
	switch t.state {
	case stateFailed:
		return kont.ExprReturn(None[A]())
	case stateDone:
		v, ok := t.value.Resolve()
		if !ok {
			return kont.ExprReturn(None[A]())
		}
		return kont.ExprReturn(Some(v))
	default:
		op := t.op
		return kont.ExprBind(interpret(sh.Erase(op)), func(v kont.Resumed) kont.Expr[Option[A]] {
			next, ok := Probe(func() Node { return sh.Feed(op, v) })
			if !ok {
				return kont.ExprReturn(None[A]())
			}
			return FoldExpr(sh, interpret, treeOf[A](next))
		})
	}
}

// FoldEff is the Cont-world fold homomorphism: like [FoldExpr], with the
// interpreter and result in kont's closure-based representation.
func FoldEff[A any](sh *Shape, interpret func(op TraceEntry) kont.Eff[kont.Resumed], t Tree[A]) kont.Eff[Option[A]] {
	switch t.state {
	case stateFailed:
		return kont.Pure(None[A]())
	case stateDone:
		v, ok := t.value.Resolve()
		if !ok {
			return kont.Pure(None[A]())
		}
		return kont.Pure(Some(v))
	default:
		op := t.op
		return kont.Bind(interpret(sh.Erase(op)), func(v kont.Resumed) kont.Eff[Option[A]] {
			next, ok := Probe(func() Node { return sh.Feed(op, v) })
			if !ok {
				return kont.Pure(None[A]())
			}
			return FoldEff(sh, interpret, treeOf[A](next))
		})
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pry provides best-effort static analysis of suspended computations
// represented as data, built on [code.hybscloud.com/kont].
//
// A program is encoded as a [Tree]: each node is either a final value
// ([Done]), a pending effect descriptor ([Suspend]), or a definite absence
// of a result ([Fail]). The tree is built without executing anything, then
// inspected or partially evaluated before any real effect runs.
//
// # Architecture
//
//   - Data model: [Tree] is an immutable three-state structure. Done payloads
//     are explicit possibly-deferred values ([Val]) that may turn out to
//     represent absence only when forced.
//   - Speculative probe: [Probe] evaluates a thunk inside a scoped boundary
//     that intercepts exactly one designated abort signal, converting it into
//     an explicit "no value" outcome. [Poison] and [PoisonVal] are the
//     distinguished values guaranteed to raise that signal when forced.
//   - Continuation locator: [Derive] validates an effect type's declared
//     field shape once, at setup time, and yields a [Shape] that can extract
//     the single embedded continuation from a descriptor of otherwise
//     unknown shape. Function-shaped slots are applied to a poisoned
//     argument, so the engine observes whether a continuation depends on a
//     value it cannot know.
//   - Analysis engine: [Analyze] walks a tree with a Shape, producing an
//     optional result plus an ordered trace of the effects it passed
//     through. [AnalyzeWith] accepts a custom [Stepper].
//
// # Effect Descriptors
//
// An effect type is a plain struct, one constructor per operation, whose
// single continuation slot is either a direct [Node] field or a function of
// one argument returning a [Node]. Payload fields are carried through into
// trace entries unchanged. The slot must be the structurally last field of a
// multi-field constructor:
//
//	type Say struct {
//	    Msg  string
//	    Next pry.Node
//	}
//
//	type Ask struct {
//	    Respond func(pry.Val[int]) pry.Node
//	}
//
//	shape := pry.MustDerive(Say{}, Ask{})
//	result, trace := pry.Analyze(shape, tree)
//
// Shapes with zero or multiple continuation-slot candidates are rejected at
// derivation time with [ErrNoContinuationSlot] or
// [ErrAmbiguousContinuationSlot]; a type that fails validation cannot be
// analyzed.
//
// # Combinators
//
// [Map], [Bind], [Then], [Ap], and [Alt] follow free-monad semantics on
// Suspend/Fail nodes, but Done payloads are speculatively probed before any
// function is applied: a payload that turns out to be absent collapses to
// Fail before the combinator commits to success.
//
// # Elimination
//
//   - [Iterate], [IterateE], [IterateEff]: plain, error-monad, and
//     kont-monad folds over descriptors whose continuations have already
//     been eliminated.
//   - [FoldExpr], [FoldEff]: interpret each descriptor into kont's
//     defunctionalized or closure world, sequencing through continuations.
//   - [Hoist]: natural transformation of descriptor shapes, Done and Fail
//     untouched.
//   - [Retract]: interpret a bridged tree back into the effect world it came
//     from; Fail retracts to [None].
//
// # Bridge
//
// [FromExpr] losslessly embeds a plain two-state [kont.Expr] computation
// into a three-state tree; each suspension becomes a [Lifted] descriptor.
// Conversion is lazy and the resume handles are affine, matching the
// single-traversal ownership of trees.
//
// # Builder
//
// Repeated [Bind] on explicit trees re-grafts the accumulated structure on
// every step. [Build] is a continuation-passing intermediate form whose
// composition is function composition; [Build.Tree] materializes the
// explicit tree once, at the end, in linear time.
//
// # Heuristic Limits
//
// pry is an instrument, not an interpreter: it performs no real effects, and
// where the heuristic cannot safely proceed it degrades to [None] plus a
// partial trace, never to a silently wrong result. Invoking a located
// continuation outside the engine's own guarded traversal, or supplying a
// continuation function that inspects a non-[Val] argument, is outside the
// supported contract and can produce incorrect results or non-termination.
package pry

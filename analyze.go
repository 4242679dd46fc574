// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

// TraceEntry is an effect descriptor with its continuation slot zeroed:
// the same effect, shape and payload preserved, downstream computation
// erased. A sequence of trace entries, in visit order, is the trace of an
// analysis.
type TraceEntry = Operation

// Stepper advances one suspended descriptor to its continuation.
// [Shape.Locate] is the usual stepper; a hand-written extractor works too.
type Stepper func(op Operation) Node

// Analyze walks a tree with a derived shape, producing a best-effort
// optional result plus the ordered trace of effects it passed through.
// Trace entries are outer-to-inner: the effect encountered first is first
// in the sequence, deterministic for a given tree.
//
// Analysis never crashes for correctly-derived effect types: wherever the
// heuristic cannot safely proceed it degrades to [None] plus the partial
// trace collected so far.
func Analyze[A any](sh *Shape, t Tree[A]) (Option[A], []TraceEntry) {
	return AnalyzeWith[A](sh.Locate, sh.Erase, t)
}

// AnalyzeWith is the analysis engine over an arbitrary stepper and trace
// eraser. One depth-first pass, iterative (no stack growth):
//
//   - Failed: (None, trace);
//   - Done: probe-force the payload; success is (Some, trace), abort is
//     (None, trace);
//   - Suspended: record the erased descriptor, probe the step; on success
//     descend into the produced tree, on abort stop with (None, trace).
func AnalyzeWith[A any](step Stepper, erase func(Operation) TraceEntry, t Tree[A]) (Option[A], []TraceEntry) {
	var trace []TraceEntry
	var cur Node = t
	for {
		switch cur.nodeState() {
		case stateFailed:
			return None[A](), trace
		case stateDone:
			v, ok := Probe(cur.forceValue)
			if !ok {
				return None[A](), trace
			}
			if v == nil {
				// Nil completion convention: treat as the zero value.
				var zero A
				return Some(zero), trace
			}
			return Some(v.(A)), trace
		default:
			op := cur.nodeOp()
			trace = append(trace, erase(op))
			next, ok := Probe(func() Node { return step(op) })
			if !ok {
				return None[A](), trace
			}
			cur = next
		}
	}
}

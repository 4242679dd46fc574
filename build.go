// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

// Build is a continuation-passing tree builder.
//
// Repeated Bind on explicit trees re-grafts the accumulated structure on
// every step, which costs quadratic work for long chains. Build composes
// pending work as function composition instead — O(1) per combinator — and
// materializes the explicit three-state tree exactly once, in [Build.Tree].
type Build[A any] func(k func(A) Node) Node

// BuildPure lifts a value into the builder.
func BuildPure[A any](a A) Build[A] {
	return func(k func(A) Node) Node {
		return k(a)
	}
}

// BuildFail is the absorbing failure: the continuation is never invoked.
func BuildFail[A any]() Build[A] {
	return func(func(A) Node) Node {
		return failNode
	}
}

// BuildBind sequences two builds; composition is function composition.
func BuildBind[A, B any](m Build[A], f func(A) Build[B]) Build[B] {
	return func(k func(B) Node) Node {
		return m(func(a A) Node {
			return f(a)(k)
		})
	}
}

// BuildMap applies a pure function to the result of a build.
func BuildMap[A, B any](m Build[A], f func(A) B) Build[B] {
	return func(k func(B) Node) Node {
		return m(func(a A) Node {
			return k(f(a))
		})
	}
}

// BuildThen sequences two builds, discarding the first result.
func BuildThen[A, B any](m Build[A], n Build[B]) Build[B] {
	return func(k func(B) Node) Node {
		return m(func(A) Node {
			return n(k)
		})
	}
}

// BuildStep emits one suspended effect whose continuation slot is filled
// with the rest of the build. The slot value in op is ignored and may be
// zero; builder steps require a direct continuation slot.
func BuildStep(sh *Shape, op Operation) Build[struct{}] {
	return func(k func(struct{}) Node) Node {
		return suspendNode(sh.plant(op, k(struct{}{})))
	}
}

// Tree materializes the explicit three-state tree, in time linear in the
// number of suspended steps.
func (m Build[A]) Tree() Tree[A] {
	return treeOf[A](m(func(a A) Node {
		return Done(a)
	}))
}

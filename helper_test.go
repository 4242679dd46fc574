// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry_test

import (
	"reflect"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/pry"
)

// Say is the direct-slot fixture effect: a message payload, then the
// continuation.
type Say struct {
	Msg  string
	Next pry.Node
}

// Ask is the function-slot fixture effect: the continuation depends on a
// value the analysis cannot know.
type Ask struct {
	Respond func(pry.Val[int]) pry.Node
}

// Shout is the hoist target for Say.
type Shout struct {
	Msg  string
	Next pry.Node
}

var sayShape = pry.MustDerive(Say{}, Ask{})

var shoutShape = pry.MustDerive(Shout{})

// AskInt is a kont effect operation producing an int, used by the bridge
// tests.
type AskInt struct{ kont.Phantom[int] }

// Note is a kont effect operation recording a string, used by the
// elimination tests.
type Note struct {
	kont.Phantom[struct{}]
	Text string
}

// sayChain builds Suspended(Say(msgs[0], ... Done(final))) right-nested.
func sayChain(final int, msgs ...string) pry.Tree[int] {
	t := pry.Done(final)
	for i := len(msgs) - 1; i >= 0; i-- {
		t = pry.Suspend[int](Say{Msg: msgs[i], Next: t})
	}
	return t
}

// manualStep is a hand-written continuation extractor for Say and Ask,
// the reference the derived locator must agree with.
func manualStep(op pry.Operation) pry.Node {
	switch o := op.(type) {
	case Say:
		return o.Next
	case Ask:
		return o.Respond(pry.PoisonVal[int]())
	default:
		panic("helper_test: unhandled effect type")
	}
}

// manualErase is the hand-written trace eraser for Say and Ask.
func manualErase(op pry.Operation) pry.TraceEntry {
	switch o := op.(type) {
	case Say:
		return Say{Msg: o.Msg}
	case Ask:
		return Ask{}
	default:
		panic("helper_test: unhandled effect type")
	}
}

// sameTrace compares erased traces structurally. Erased function slots are
// nil, so DeepEqual is exact here.
func sameTrace(a, b []pry.TraceEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/pry"
)

func sayStringChain(final string, msgs ...string) pry.Tree[string] {
	t := pry.Done(final)
	for i := len(msgs) - 1; i >= 0; i-- {
		t = pry.Suspend[string](Say{Msg: msgs[i], Next: t})
	}
	return t
}

func concatAlg(op pry.TraceEntry, next string) string {
	return op.(Say).Msg + next
}

func emptyString() string { return "" }

func TestIterateConcat(t *testing.T) {
	tree := sayStringChain("!", "a", "b", "c")
	got := pry.Iterate(sayShape, concatAlg, emptyString, tree)
	if got != "abc!" {
		t.Fatalf("got %q, want %q", got, "abc!")
	}
}

func TestIterateDone(t *testing.T) {
	got := pry.Iterate(sayShape, concatAlg, emptyString, pry.Done("v"))
	if got != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}

func TestIterateFailed(t *testing.T) {
	got := pry.Iterate(sayShape, concatAlg, emptyString, pry.Fail[string]())
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestIteratePoisonedDone(t *testing.T) {
	tree := pry.Suspend[string](Say{Msg: "a", Next: pry.Poison[string]()})
	got := pry.Iterate(sayShape, concatAlg, emptyString, tree)
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

// A continuation that forces its argument aborts the locate step; the
// whole elimination degrades to empty.
func TestIterateForcingContinuation(t *testing.T) {
	tree := pry.Suspend[string](Ask{
		Respond: func(v pry.Val[int]) pry.Node {
			_ = v.Force()
			return pry.Done("unreachable")
		},
	})
	got := pry.Iterate(sayShape, concatAlg, emptyString, tree)
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestIterateE(t *testing.T) {
	tree := sayStringChain("!", "x", "y")
	got, err := pry.IterateE(sayShape, func(op pry.TraceEntry, next string) (string, error) {
		return op.(Say).Msg + next, nil
	}, func() (string, error) { return "", nil }, tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "xy!" {
		t.Fatalf("got %q, want %q", got, "xy!")
	}
}

func TestIterateEShortCircuits(t *testing.T) {
	errBad := errors.New("bad entry")
	tree := sayStringChain("!", "ok", "bad", "ok")
	seen := 0
	_, err := pry.IterateE(sayShape, func(op pry.TraceEntry, next string) (string, error) {
		seen++
		if op.(Say).Msg == "bad" {
			return "", errBad
		}
		return op.(Say).Msg + next, nil
	}, func() (string, error) { return "", nil }, tree)
	if !errors.Is(err, errBad) {
		t.Fatalf("got error %v, want %v", err, errBad)
	}
	// Elimination is bottom-up: the innermost "ok" is consumed first,
	// then "bad" stops the fold before the outermost entry.
	if seen != 2 {
		t.Fatalf("algebra ran %d times, want 2", seen)
	}
}

func TestIterateEEmptyOnFailed(t *testing.T) {
	errEmpty := errors.New("no value")
	_, err := pry.IterateE(sayShape, func(op pry.TraceEntry, next string) (string, error) {
		return next, nil
	}, func() (string, error) { return "", errEmpty }, pry.Fail[string]())
	if !errors.Is(err, errEmpty) {
		t.Fatalf("got error %v, want %v", err, errEmpty)
	}
}

// IterateEff performs a kont effect per eliminated entry; a plain kont
// handler observes the entries innermost-first.
func TestIterateEff(t *testing.T) {
	tree := sayStringChain("!", "a", "b")
	eff := pry.IterateEff(sayShape, func(op pry.TraceEntry, next string) kont.Eff[string] {
		return kont.Bind(kont.Perform(Note{Text: op.(Say).Msg}), func(struct{}) kont.Eff[string] {
			return kont.Pure(op.(Say).Msg + next)
		})
	}, kont.Pure(""), tree)

	var notes []string
	got := kont.Handle(eff, kont.HandleFunc[string](func(op kont.Operation) (kont.Resumed, bool) {
		notes = append(notes, op.(Note).Text)
		return struct{}{}, true
	}))
	if got != "ab!" {
		t.Fatalf("got %q, want %q", got, "ab!")
	}
	wantNotes := []string{"b", "a"}
	if len(notes) != 2 || notes[0] != wantNotes[0] || notes[1] != wantNotes[1] {
		t.Fatalf("notes %v, want %v", notes, wantNotes)
	}
}

func TestIterateEffFailed(t *testing.T) {
	eff := pry.IterateEff(sayShape, func(op pry.TraceEntry, next string) kont.Eff[string] {
		return kont.Pure(next)
	}, kont.Pure("empty"), pry.Fail[string]())
	got := kont.Handle(eff, kont.HandleFunc[string](func(op kont.Operation) (kont.Resumed, bool) {
		t.Fatal("no effects expected")
		return nil, false
	}))
	if got != "empty" {
		t.Fatalf("got %q, want %q", got, "empty")
	}
}

// Hoist rewrites each descriptor's shape without touching payloads: Say
// entries become Shout entries analyzable under the target shape.
func TestHoistSayToShout(t *testing.T) {
	tree := sayChain(3, "hey", "ho")
	hoisted := pry.Hoist(sayShape, func(op pry.Operation) pry.Operation {
		s := op.(Say)
		return Shout{Msg: strings.ToUpper(s.Msg), Next: s.Next}
	}, tree)

	result, trace := pry.Analyze(shoutShape, hoisted)
	if v, ok := result.Get(); !ok || v != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", v, ok)
	}
	want := []pry.TraceEntry{Shout{Msg: "HEY"}, Shout{Msg: "HO"}}
	if !sameTrace(trace, want) {
		t.Fatalf("trace %+v, want %+v", trace, want)
	}
}

func TestHoistLeavesTerminals(t *testing.T) {
	nt := func(op pry.Operation) pry.Operation {
		t.Fatal("nt must not run on terminal nodes")
		return op
	}
	if got := pry.Hoist(sayShape, nt, pry.Done(1)); !got.IsDone() {
		t.Fatal("Done must pass through unchanged")
	}
	if got := pry.Hoist(sayShape, nt, pry.Fail[int]()); !got.IsFailed() {
		t.Fatal("Failed must pass through unchanged")
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pry

import (
	"errors"
	"fmt"
	"reflect"
)

// Shape derivation errors. Derivation is one-time, setup-time validation:
// an effect type that fails it simply cannot be analyzed, and the engine
// never retries or silently degrades the check at run time.
var (
	// ErrInvalidDescriptor reports a registered sample that is not a
	// plain struct constructor.
	ErrInvalidDescriptor = errors.New("pry: effect descriptor must be a struct")

	// ErrNoContinuationSlot reports a constructor with zero
	// continuation-slot candidates anywhere in its fields.
	ErrNoContinuationSlot = errors.New("pry: no continuation slot")

	// ErrAmbiguousContinuationSlot reports a constructor with more than
	// one continuation-slot candidate.
	ErrAmbiguousContinuationSlot = errors.New("pry: ambiguous continuation slot")

	// ErrContinuationNotLast reports a multi-field constructor whose
	// continuation slot is not the structurally last field. The
	// payload-then-continuation ordering is a documented restriction on
	// supported effect-type shapes, not a general rule.
	ErrContinuationNotLast = errors.New("pry: continuation slot must be the structurally last field")
)

// Slot kinds resolved by derivation.
const (
	directSlot uint8 = iota
	funcSlot
)

// slot records where one constructor's continuation lives: the field index
// path (nested products recurse into the structurally last field), the slot
// kind, the qualified field name for diagnostics, and the field type.
type slot struct {
	path []int
	kind uint8
	name string
	typ  reflect.Type
}

// Shape is the continuation-locating capability of one effect type,
// derived from the declared structural shape of its constructors. A Shape
// bundles the capability contract effect types must satisfy to participate
// in analysis: locate, erase, feed, and slot mapping.
//
// A Shape is immutable after Derive and safe to share between traversals.
type Shape struct {
	serial Serial
	slots  map[reflect.Type]slot
}

// Serial returns the serial number assigned to this shape.
func (sh *Shape) Serial() Serial {
	return sh.serial
}

// nodeType is the reflected continuation marker interface.
var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// Derive validates the structural shape of an effect type and returns its
// Shape. Each sample registers one constructor (a sum of shapes registers
// several); sample field values are ignored, only the declared types
// matter, so zero values are fine:
//
//	shape, err := pry.Derive(Say{}, Ask{})
//
// Field rules, checked per constructor:
//
//   - an exported field implementing [Node] is a direct continuation slot;
//   - an exported field of type func(X) N, with N implementing [Node], is
//     a function-shaped slot;
//   - any other field is payload, carried through into trace entries;
//   - zero candidates is [ErrNoContinuationSlot] (after recursing into a
//     struct-typed last field, the nested-product convention);
//   - more than one candidate is [ErrAmbiguousContinuationSlot];
//   - a candidate that is not the structurally last field of a multi-field
//     constructor is [ErrContinuationNotLast].
func Derive(samples ...Operation) (*Shape, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no constructors registered", ErrInvalidDescriptor)
	}
	sh := &Shape{
		serial: nextSerial(),
		slots:  make(map[reflect.Type]slot, len(samples)),
	}
	for _, sample := range samples {
		rt := reflect.TypeOf(sample)
		if rt == nil || rt.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidDescriptor, rt)
		}
		s, err := deriveSlot(rt.Name(), rt)
		if err != nil {
			return nil, err
		}
		sh.slots[rt] = s
	}
	return sh, nil
}

// MustDerive is Derive that panics on invalid shapes.
// Intended for package-level shape variables, where a shape violation is a
// programming error caught at process start.
func MustDerive(samples ...Operation) *Shape {
	sh, err := Derive(samples...)
	if err != nil {
		panic(err)
	}
	return sh
}

// deriveSlot resolves the continuation slot of one constructor by the
// field rules. ctor is the qualified constructor name for diagnostics.
func deriveSlot(ctor string, rt reflect.Type) (slot, error) {
	var found []slot
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if k, ok := slotKind(f.Type); ok {
			found = append(found, slot{
				path: []int{i},
				kind: k,
				name: ctor + "." + f.Name,
				typ:  f.Type,
			})
		}
	}
	switch {
	case len(found) > 1:
		return slot{}, fmt.Errorf("%w: %s (%s and %s)",
			ErrAmbiguousContinuationSlot, ctor, found[0].name, found[1].name)
	case len(found) == 1:
		s := found[0]
		if rt.NumField() > 1 && s.path[0] != rt.NumField()-1 {
			return slot{}, fmt.Errorf("%w: %s", ErrContinuationNotLast, s.name)
		}
		return s, nil
	}
	// No candidate at this level. A product's sub-search is only performed
	// in the structurally last field.
	if n := rt.NumField(); n > 0 {
		last := rt.Field(n - 1)
		if last.IsExported() && last.Type.Kind() == reflect.Struct {
			s, err := deriveSlot(ctor+"."+last.Name, last.Type)
			if err == nil {
				s.path = append([]int{n - 1}, s.path...)
				return s, nil
			}
			if !errors.Is(err, ErrNoContinuationSlot) {
				return slot{}, err
			}
		}
	}
	return slot{}, fmt.Errorf("%w: %s", ErrNoContinuationSlot, ctor)
}

// slotKind classifies a field type as a continuation-slot candidate.
func slotKind(t reflect.Type) (uint8, bool) {
	if t.Implements(nodeType) {
		return directSlot, true
	}
	if t.Kind() == reflect.Func && !t.IsVariadic() &&
		t.NumIn() == 1 && t.NumOut() == 1 && t.Out(0).Implements(nodeType) {
		return funcSlot, true
	}
	return 0, false
}

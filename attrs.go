// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"maps"
	"reflect"
)

// Attrs is a set of event attributes keyed by their type, with at most one
// value per type.
//
// Vendor or custom information should use a dedicated named type to avoid
// conflicts with other producers. For interoperability the well-known types
// declared in this package should be preferred.
//
// The zero value is an empty set ready to use.
type Attrs struct {
	m map[reflect.Type]any
}

// Info is a well-known attribute carrying a free-form, human-readable note
// about the event.
type Info string

// Flags is a well-known attribute carrying the raw native flags the event was
// translated from.
type Flags uint64

// SetAttr stores v in a, replacing any value of the same type.
func SetAttr[T any](a *Attrs, v T) {
	if a.m == nil {
		a.m = make(map[reflect.Type]any)
	}
	a.m[reflect.TypeFor[T]()] = v
}

// Attr looks up the value of type T stored in a.
func Attr[T any](a Attrs) (T, bool) {
	v, ok := a.m[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// DeleteAttr removes the value of type T from a.
func DeleteAttr[T any](a *Attrs) {
	delete(a.m, reflect.TypeFor[T]())
}

// Len gives the number of attributes stored in a.
func (a Attrs) Len() int { return len(a.m) }

// Clone gives a shallow copy of a, which does not share storage with it.
func (a Attrs) Clone() Attrs {
	if a.m == nil {
		return Attrs{}
	}
	return Attrs{m: maps.Clone(a.m)}
}

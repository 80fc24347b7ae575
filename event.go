// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RelID links events which are related to each other, e.g. the two halves of
// a rename. Only backends with the TrackRelated capability set it.
type RelID struct {
	Value uint64
	Valid bool // Valid is true if Value is set
}

// Related gives a valid RelID with the given value.
func Related(v uint64) RelID { return RelID{Value: v, Valid: true} }

// String implements fmt.Stringer interface.
func (r RelID) String() string {
	if !r.Valid {
		return "None"
	}
	return strconv.FormatUint(r.Value, 10)
}

// Event describes a single filesystem change reported by a backend.
//
// The zero value is the default event: Kind is Any, there are no paths, no
// relation ID, no attributes and an empty source.
type Event struct {
	// Kind describes the event as precisely as the backend can tell.
	Kind EventKind

	// Paths the event is about. Generally that is a single path, but backends
	// which track renames by path instead of cookie may report more.
	Paths []string

	// RelID is set for events that are related to each other.
	RelID RelID

	// Attrs holds additional, caller-extensible attributes. They are not
	// considered when comparing or hashing events.
	Attrs Attrs

	// Source is the name of the backend which reported the event.
	Source string
}

// NewEvent gives a default event with room for one path.
func NewEvent() Event {
	return Event{Paths: make([]string, 0, 1)}
}

// Equal reports whether e and other describe the same event. Attrs are
// ignored.
func (e Event) Equal(other Event) bool {
	return e.Kind == other.Kind &&
		slices.Equal(e.Paths, other.Paths) &&
		e.RelID == other.RelID &&
		e.Source == other.Source
}

// Hash returns a hash of the fields compared by Equal.
func (e Event) Hash() uint64 {
	var n [8]byte
	d := xxhash.New()
	d.WriteString(e.Kind.String())
	binary.LittleEndian.PutUint64(n[:], uint64(len(e.Paths)))
	d.Write(n[:])
	for _, p := range e.Paths {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		d.Write(n[:])
		d.WriteString(p)
	}
	if e.RelID.Valid {
		d.Write([]byte{1})
		binary.LittleEndian.PutUint64(n[:], e.RelID.Value)
		d.Write(n[:])
	} else {
		d.Write([]byte{0})
	}
	d.WriteString(e.Source)
	return d.Sum64()
}

// Clone gives a deep copy of e.
func (e Event) Clone() Event {
	e.Paths = slices.Clone(e.Paths)
	e.Attrs = e.Attrs.Clone()
	return e
}

// String implements fmt.Stringer interface.
func (e Event) String() string {
	return e.Kind.String() + `: "` + strings.Join(e.Paths, `", "`) + `"`
}

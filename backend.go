// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import (
	"context"
	"strconv"
)

// ContractVersion is the version of the Backend contract implemented by
// backends built against this package.
const ContractVersion = "2.0.0"

// InvalidFd is returned by drivers which have no native descriptor.
const InvalidFd = ^uintptr(0)

// State tells the outcome of a single Poll call.
type State uint8

// Poll outcomes.
const (
	// Pending means no event is currently available. The consumer should wait
	// on the backend's Driver before polling again.
	Pending State = iota

	// Ready means an event was returned.
	Ready

	// Ended means no further events will ever be produced. Once a backend
	// returns Ended, every following Poll returns Ended as well.
	Ended

	// Failed means Poll returned a stream-level error.
	Failed
)

var statestr = [...]string{
	Pending: "Pending",
	Ready:   "Ready",
	Ended:   "Ended",
	Failed:  "Failed",
}

// String implements fmt.Stringer interface.
func (s State) String() string {
	if int(s) < len(statestr) {
		return statestr[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// StreamError is a failure of an active event stream.
type StreamError uint8

// Stream errors.
const (
	// UpstreamOverflow means the native event queue overflowed and events were
	// lost. Events queued before the overflow are still delivered, the error
	// follows them and the stream ends afterwards.
	UpstreamOverflow StreamError = iota + 1
)

// ErrUpstreamOverflow is the UpstreamOverflow stream error.
var ErrUpstreamOverflow error = UpstreamOverflow

// Error implements error interface.
func (e StreamError) Error() string {
	switch e {
	case UpstreamOverflow:
		return "notify: upstream overflow"
	default:
		return "notify: stream error " + strconv.Itoa(int(e))
	}
}

// Driver is the readiness handle of a backend, used by a host event loop to
// learn when new native events are available instead of busy polling.
//
// Backends without a native mechanism implement it in userspace with whatever
// clues they have.
type Driver interface {
	// Fd returns the native descriptor which becomes readable when events are
	// available, or InvalidFd.
	Fd() uintptr

	// Wait blocks until events may be available or ctx is done. A nil error
	// does not guarantee the next Poll returns an event.
	Wait(ctx context.Context) error
}

// Backend is the interface implemented by adapters of native filesystem
// notification facilities, which makes them interchangeable.
//
// A backend watches a fixed set of paths given at construction. When the set
// must change, the backend is closed and a new one is created in its place.
//
// A backend is owned by a single consumer. It may be handed over between
// goroutines, but it must not be polled concurrently.
type Backend interface {
	// Name returns the stable name of the backend, which is also used as
	// Event.Source.
	Name() string

	// Capabilities returns the native abilities of the backend.
	Capabilities() Capability

	// Driver returns the readiness handle of the backend.
	Driver() Driver

	// Poll pulls the next item of the event stream without blocking.
	//
	// It returns an event and Ready, Pending when nothing is available yet,
	// Ended once the stream terminated, or Failed with a non-nil error.
	Poll() (Event, State, error)

	// Close releases all native resources held by the backend. Events already
	// buffered are still delivered by Poll, after which it returns Ended.
	Close() error
}

// Descriptor describes a backend implementation.
type Descriptor struct {
	// Name is the stable, unique name of the backend.
	Name string

	// Capabilities returns what the backend can natively do. It may vary with
	// the environment; an empty set means the backend is inoperable.
	Capabilities func() Capability

	// New creates a backend watching the given unique paths, and only those.
	// It fails atomically with an *ErrorWrap: no backend is returned if any
	// path could not be set up.
	New func(paths []string) (Backend, error)

	// Version is the contract version the backend was built against.
	Version string
}

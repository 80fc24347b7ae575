// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

// Buffer is a FIFO queue of events which decouples reading native events from
// consuming them.
//
// Closing a buffer is terminal: no more events are accepted, but the queued
// ones are still delivered before the end of the stream is signalled. A buffer
// closed with an error delivers that error once, after the queued events.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	q      []Event
	head   int
	closed bool
	err    error
}

// NewBuffer gives an empty, open buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Push appends ev to the buffer. It reports false and drops ev if the buffer
// is closed.
func (b *Buffer) Push(ev Event) bool {
	if b.closed {
		return false
	}
	b.q = append(b.q, ev)
	return true
}

// Close closes the buffer.
func (b *Buffer) Close() {
	b.closed = true
}

// CloseWithError closes the buffer and sets err to be returned after the
// queued events. It is a no-op on an already closed buffer.
func (b *Buffer) CloseWithError(err error) {
	if b.closed {
		return
	}
	b.closed, b.err = true, err
}

// Closed reports whether the buffer was closed.
func (b *Buffer) Closed() bool {
	return b.closed
}

// Len gives the number of queued events.
func (b *Buffer) Len() int {
	return len(b.q) - b.head
}

// Poll pops the oldest queued event.
//
// An open, empty buffer is Pending. A closed, empty buffer returns its error,
// if any, once, and is Ended afterwards.
func (b *Buffer) Poll() (Event, State, error) {
	if b.head < len(b.q) {
		ev := b.q[b.head]
		b.q[b.head] = Event{}
		if b.head++; b.head == len(b.q) {
			b.q, b.head = b.q[:0], 0
		}
		return ev, Ready, nil
	}
	if !b.closed {
		return Event{}, Pending, nil
	}
	if err := b.err; err != nil {
		b.err = nil
		return Event{}, Failed, err
	}
	return Event{}, Ended, nil
}

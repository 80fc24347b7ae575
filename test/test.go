// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JekaMas/notify/v2"
)

// Timeout is a default timeout for Next and Drain.
var Timeout = 5 * time.Second

// Actions maps an event class onto a filesystem operation which triggers it.
type Actions map[notify.Class]func(path string) error

var defaultActions = Actions{
	notify.ClassCreate: func(p string) error {
		f, err := os.Create(p)
		if err != nil {
			return err
		}
		return f.Close()
	},
	notify.ClassModify: func(p string) error {
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return err
		}
		if _, err = f.WriteString(p); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
	notify.ClassAccess: func(p string) error {
		_, err := os.ReadFile(p)
		return err
	},
	notify.ClassRemove: os.Remove,
}

// Fixture is a backend watching a temporary folder.
type Fixture struct {
	// Dir is the watched folder.
	Dir string

	// Backend is the backend under test.
	Backend notify.Backend

	// Actions triggers events in Do. It defaults to creating, appending to,
	// reading and removing files.
	Actions Actions

	t testing.TB
}

// B creates a backend with d watching a new temporary folder. The backend is
// closed when the test finishes.
func B(t testing.TB, d notify.Descriptor) *Fixture {
	t.Helper()
	dir := t.TempDir()
	b, err := d.New([]string{dir})
	require.NoError(t, err, "creating %s backend", d.Name)
	t.Cleanup(func() { b.Close() })
	return &Fixture{Dir: dir, Backend: b, Actions: defaultActions, t: t}
}

// Path gives the full path of name within the watched folder.
func (f *Fixture) Path(name string) string {
	return filepath.Join(f.Dir, filepath.FromSlash(name))
}

// Do runs the action of class c over name.
func (f *Fixture) Do(c notify.Class, name string) {
	f.t.Helper()
	fn, ok := f.Actions[c]
	require.True(f.t, ok, "no action for %v", c)
	require.NoError(f.t, fn(f.Path(name)))
}

// Next waits for an event whose kind satisfies match.
func (f *Fixture) Next(match func(notify.EventKind) bool) notify.Event {
	f.t.Helper()
	evs := Next(f.t, f.Backend, func(ev notify.Event) bool { return match(ev.Kind) })
	return evs[len(evs)-1]
}

// Drain pulls the fixture's backend until its stream ends.
func (f *Fixture) Drain() ([]notify.Event, error) {
	f.t.Helper()
	return Drain(f.t, f.Backend)
}

// Next pulls events from b until one satisfies match and returns all pulled
// events, the matching one last. It fails the test when the stream ends or
// fails first, or when no event matches within Timeout.
func Next(t testing.TB, b notify.Backend, match func(notify.Event) bool) []notify.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	var evs []notify.Event
	for {
		ev, state, err := b.Poll()
		switch state {
		case notify.Ready:
			if evs = append(evs, ev); match(ev) {
				return evs
			}
		case notify.Pending:
			require.NoError(t, b.Driver().Wait(ctx), "waiting for event after %v", evs)
		case notify.Failed:
			require.NoError(t, err, "stream failed after %v", evs)
		case notify.Ended:
			require.FailNow(t, "stream ended", "after %v", evs)
		}
	}
}

// Drain pulls events from b until its stream ends. It returns the pulled
// events and the overflow failure, if any. Any other failure is returned
// right away. It fails the test when the stream does not end within Timeout.
func Drain(t testing.TB, b notify.Backend) ([]notify.Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	var (
		evs     []notify.Event
		failure error
	)
	for {
		ev, state, err := b.Poll()
		switch state {
		case notify.Ready:
			evs = append(evs, ev)
		case notify.Pending:
			require.NoError(t, b.Driver().Wait(ctx), "waiting for end of stream after %d events", len(evs))
		case notify.Failed:
			if !errors.Is(err, notify.ErrUpstreamOverflow) {
				return evs, err
			}
			if failure == nil {
				failure = err
			}
		case notify.Ended:
			return evs, failure
		}
	}
}

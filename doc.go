// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package notify normalizes native filesystem change notification facilities
// into a single event model.
//
// Each facility is wrapped by a backend implementing the Backend interface.
// Backends register themselves by name when their package is imported:
//
//	import (
//		"github.com/JekaMas/notify/v2"
//		_ "github.com/JekaMas/notify/v2/inotify"
//	)
//
//	b, err := notify.Open("inotify", []string{"/tmp"})
//	if err != nil {
//		var w *notify.ErrorWrap
//		errors.As(err, &w) // always succeeds
//		...
//	}
//	defer b.Close()
//
//	err = notify.Drive(ctx, b, func(ev notify.Event) error {
//		if ev.Kind.IsCreate() {
//			log.Println("created", ev.Paths)
//		}
//		return nil
//	})
//
// # Event streams
//
// Backends expose a pull-based stream. Poll never blocks: it returns either
// an event, Pending when nothing is available (wait on Driver then), Ended
// when the stream terminated for good, or Failed with a stream error.
//
// When a native queue overflows, the events received before the overflow are
// delivered first, followed by a single ErrUpstreamOverflow failure and the
// end of the stream. A backend whose native watch is removed, e.g. because
// the watched path was deleted, ends its stream without a failure.
//
// # Errors
//
// Creating a backend fails with an *ErrorWrap, which tells whether the
// failure is general or which paths it affects. Recursive watching, checking
// paths for existence and debouncing events are left to the caller.
package notify

// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package inotify implements a notify backend for Linux's inotify, available
// since kernel 2.6.13. Importing the package registers the backend under the
// name "inotify"; on other platforms the package is empty.
//
// The backend can natively:
//
//   - emit Access events
//   - follow symlinks
//   - track related changes (for renames)
//   - watch individual files
//   - watch folders, but not recursively
//
// Each Poll reads at most about 200 native events (4800 bytes on 64-bit
// platforms, 4000 on 32-bit ones) into an internal buffer, after translating
// them into notify events. New native events are only read once the buffer
// has been drained, so a slow consumer makes the kernel queue overflow rather
// than the buffer grow.
//
// Event paths are the names reported by the kernel, relative to the watched
// folder. Events about a watched path itself carry no path.
//
// Inotify emits an event when a filesystem whose mountpoint is watched is
// unmounted; it is reported as Remove(Other("unmount")). When any watch is
// removed by the kernel, e.g. because the watched path was deleted, the
// stream ends.
package inotify

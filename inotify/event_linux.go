// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package inotify

import (
	"strconv"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/JekaMas/notify/v2"
)

// recordSize is the size of a native event record the read buffer is
// dimensioned for: 24 bytes on 64-bit platforms and 20 bytes on 32-bit ones.
const recordSize = unix.SizeofInotifyEvent + strconv.IntSize/8

// bufferSize holds about 200 native event records.
const bufferSize = 200 * recordSize

// record is a single decoded native event.
type record struct {
	wd     int32
	mask   uint32
	cookie uint32
	name   string
}

// rule maps a set of native flags onto a notify event kind. The kind may
// depend on whether the record is about a directory.
type rule struct {
	mask uint32
	kind func(isdir bool) notify.EventKind
}

func always(k notify.EventKind) func(bool) notify.EventKind {
	return func(bool) notify.EventKind { return k }
}

// precedence is evaluated top to bottom and the first rule with any of its
// flags set wins, even if a record has more flags set. The order must not be
// changed.
var precedence = []rule{
	{unix.IN_ACCESS, always(notify.Access(notify.AccessAny))},
	{unix.IN_ATTRIB, always(notify.Modify(notify.ModifyMetadata(notify.MetadataAny)))},
	{unix.IN_CLOSE_WRITE, always(notify.Access(notify.AccessClose(notify.ModeWrite)))},
	{unix.IN_CLOSE_NOWRITE, always(notify.Access(notify.AccessClose(notify.ModeRead)))},
	{unix.IN_CREATE, func(isdir bool) notify.EventKind {
		if isdir {
			return notify.Create(notify.CreateFolder)
		}
		return notify.Create(notify.CreateFile)
	}},
	{unix.IN_DELETE | unix.IN_DELETE_SELF, func(isdir bool) notify.EventKind {
		if isdir {
			return notify.Remove(notify.RemoveFolder)
		}
		return notify.Remove(notify.RemoveFile)
	}},
	{unix.IN_MODIFY, always(notify.Modify(notify.ModifyData(notify.DataAny)))},
	{unix.IN_MOVE_SELF, always(notify.Modify(notify.ModifyName(notify.RenameAny)))},
	{unix.IN_MOVED_FROM, always(notify.Modify(notify.ModifyName(notify.RenameFrom)))},
	{unix.IN_MOVED_TO, always(notify.Modify(notify.ModifyName(notify.RenameTo)))},
	{unix.IN_OPEN, always(notify.Access(notify.AccessOpen(notify.ModeAny)))},
	{unix.IN_UNMOUNT, always(notify.Remove(notify.RemoveOther("unmount")))},
}

// kind translates a native event mask. Masks matching no rule give Any.
func kind(mask uint32) notify.EventKind {
	isdir := mask&unix.IN_ISDIR != 0
	for _, r := range precedence {
		if mask&r.mask != 0 {
			return r.kind(isdir)
		}
	}
	return notify.Any
}

// event translates r into a notify event.
func (r record) event() notify.Event {
	ev := notify.NewEvent()
	ev.Kind = kind(r.mask)
	if r.name != "" {
		ev.Paths = append(ev.Paths, r.name)
	}
	if r.cookie != 0 {
		ev.RelID = notify.Related(uint64(r.cookie))
	}
	ev.Source = Name
	return ev
}

// decode walks the native records read into buf, in order, until fn returns
// false. A truncated trailing record is skipped.
func decode(buf []byte, fn func(record) bool) {
	for pos := 0; pos+unix.SizeofInotifyEvent <= len(buf); {
		sys := (*unix.InotifyEvent)(unsafe.Pointer(&buf[pos]))
		pos += unix.SizeofInotifyEvent
		r := record{wd: sys.Wd, mask: sys.Mask, cookie: sys.Cookie}
		if sys.Len > 0 {
			end := pos + int(sys.Len)
			if end > len(buf) {
				return
			}
			name := buf[pos:end]
			r.name = string(name[:clen(name)])
			pos = end
		}
		if !fn(r) {
			return
		}
	}
}

// clen returns the length of a NUL-padded name.
func clen(n []byte) int {
	for i := 0; i < len(n); i++ {
		if n[i] == 0 {
			return i
		}
	}
	return len(n)
}
